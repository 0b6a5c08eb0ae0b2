package fixer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"pintidy/internal/fileutil"
)

// Backup kind folders within a session.
const (
	backupKindDeleted = "deleted"
	backupKindRenamed = "renamed"
)

// session is one timestamped backup folder. Directories are created
// lazily, so a pure dry run never leaves an empty tree behind.
type session struct {
	ID   string
	Root string
}

func newSession(backupRoot string) *session {
	return &session{
		ID:   uuid.NewString(),
		Root: filepath.Join(backupRoot, time.Now().Format("2006-01-02_15-04-05")),
	}
}

// pathFor mirrors the source file's immediate parent folder name inside
// the session so a backed-up file can be traced to its origin.
func (s *session) pathFor(kind, original string) string {
	parent := filepath.Base(filepath.Dir(original))
	return filepath.Join(s.Root, kind, parent, filepath.Base(original))
}

// preserve copies original into the session. The copy is verified; on any
// failure the caller must abandon the destructive action.
func (s *session) preserve(kind, original string) (string, error) {
	target := s.pathFor(kind, original)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create backup folder: %w", err)
	}
	if err := fileutil.CopyFileVerified(original, target); err != nil {
		return "", fmt.Errorf("backup %s: %w", filepath.Base(original), err)
	}
	return target, nil
}

// absorb moves original into the session, preferring a rename and falling
// back to verified copy plus remove across file systems.
func (s *session) absorb(kind, original string) (string, error) {
	target := s.pathFor(kind, original)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create backup folder: %w", err)
	}

	err := os.Rename(original, target)
	if err == nil {
		return target, nil
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
		if copyErr := fileutil.CopyFileVerified(original, target); copyErr != nil {
			return "", fmt.Errorf("backup %s: %w", filepath.Base(original), copyErr)
		}
		if removeErr := os.Remove(original); removeErr != nil {
			return "", fmt.Errorf("remove after backup copy: %w", removeErr)
		}
		return target, nil
	}
	return "", fmt.Errorf("backup %s: %w", filepath.Base(original), err)
}

// removeIfEmpty deletes the session tree when no files ended up inside it.
// Empty sub-directories alone do not count as content.
func (s *session) removeIfEmpty() error {
	_, err := os.Stat(s.Root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	hasFiles := false
	err = filepath.WalkDir(s.Root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			hasFiles = true
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return err
	}
	if hasFiles {
		return nil
	}
	return os.RemoveAll(s.Root)
}
