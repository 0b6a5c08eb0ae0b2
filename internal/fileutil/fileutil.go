// Package fileutil provides file copy and enumeration helpers used by the
// scanner and the reconciliation engine.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CopyFileVerified streams src to dst with SHA256 + size integrity verification.
// Removes dst on mismatch. Backup copies made before destructive operations
// use this variant so a corrupted backup never silently stands in for the
// original.
func CopyFileVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if written != srcSize {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}

	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = os.Remove(dst)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}

	return nil
}

// ListByPatterns enumerates the files directly inside dir whose base name
// matches any of the supplied glob patterns (e.g. "*.mp3"). Matching is
// case-insensitive. Results are grouped by pattern in the order supplied,
// sorted within each group; pattern order is significant because callers
// treat earlier patterns as the preferred extension.
func ListByPatterns(dir string, patterns []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var matched []string
	seen := make(map[string]struct{}, len(entries))
	for _, pattern := range patterns {
		group := make([]string, 0, len(entries))
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if _, dup := seen[entry.Name()]; dup {
				continue
			}
			ok, matchErr := filepath.Match(strings.ToLower(pattern), strings.ToLower(entry.Name()))
			if matchErr != nil {
				return nil, fmt.Errorf("pattern %q: %w", pattern, matchErr)
			}
			if ok {
				group = append(group, filepath.Join(dir, entry.Name()))
				seen[entry.Name()] = struct{}{}
			}
		}
		sort.Strings(group)
		matched = append(matched, group...)
	}
	return matched, nil
}

// ListAll enumerates every regular file directly inside dir, sorted.
func ListAll(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// BaseName returns the file name of path without its extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FileSize returns the size of path, or 0 when the file cannot be stat'd.
func FileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
