package fixer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"pintidy/internal/config"
	"pintidy/internal/fileutil"
	"pintidy/internal/logging"
	"pintidy/internal/scanner"
)

// Options configures a fix pass.
type Options struct {
	// TrainerWheels logs and counts every decision without mutating files.
	TrainerWheels bool
	// FixTypes limits which hit types the pass is allowed to act on.
	FixTypes scanner.HitTypeSet
	// BackupRoot receives one timestamped session folder per live run.
	BackupRoot string
}

// ProgressUpdate reports coarse pass progress back to the caller: the
// named phase plus percent of work units completed.
type ProgressUpdate struct {
	Phase   string
	Percent float64
}

// Fixer executes reconciliation decisions against the file system.
type Fixer struct {
	opts   Options
	logger *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) (*Fixer, error) {
	fixTypes, err := scanner.ParseHitTypes(cfg.Fix.HitTypes)
	if err != nil {
		return nil, fmt.Errorf("fix hit types: %w", err)
	}
	return NewWithOptions(Options{
		TrainerWheels: cfg.Fix.TrainerWheels,
		FixTypes:      fixTypes,
		BackupRoot:    cfg.Paths.BackupDir,
	}, logger), nil
}

func NewWithOptions(opts Options, logger *slog.Logger) *Fixer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Fixer{opts: opts, logger: logging.NewComponentLogger(logger, "fixer")}
}

// Fix reconciles every game's hits and then the files that claimed no
// game. A failure on one file is logged and recorded as ignored; the pass
// continues with the rest. Running Fix again over an already-clean library
// yields no actions. progress, when non-nil, is invoked once per game and
// once per unmatched file with the fraction of the pass completed.
func (f *Fixer) Fix(ctx context.Context, library *scanner.Library, progress func(ProgressUpdate)) ([]FileDetail, error) {
	var sess *session
	if !f.opts.TrainerWheels {
		if err := os.MkdirAll(f.opts.BackupRoot, 0o755); err != nil {
			return nil, fmt.Errorf("create backup root: %w", err)
		}
		if err := ensureCapacity(f.opts.BackupRoot, estimateBackupBytes(library)); err != nil {
			return nil, err
		}

		lock := flock.New(filepath.Join(f.opts.BackupRoot, ".pintidy.lock"))
		ok, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquire fix lock: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("another fix pass is already running")
		}
		defer func() { _ = lock.Unlock() }()

		sess = newSession(f.opts.BackupRoot)
		f.logger.Info("fix session started",
			logging.String("session_id", sess.ID),
			logging.String("backup", sess.Root))
	} else {
		sess = newSession(f.opts.BackupRoot)
		f.logger.Info("fix session started dry",
			logging.String("session_id", sess.ID))
	}

	total := len(library.Games) + len(library.Unmatched)
	done := 0

	var details []FileDetail
	for _, content := range library.Games {
		if err := ctx.Err(); err != nil {
			return details, err
		}
		for _, hits := range content.Hits {
			if hits.IsClean() {
				continue
			}
			for _, act := range decide(hits, content.Game.Derived.MediaName) {
				details = append(details, f.execute(sess, hits.ContentType, act))
			}
		}
		done++
		report(progress, "fix", done, total)
	}

	for _, hit := range library.Unmatched {
		if err := ctx.Err(); err != nil {
			return details, err
		}
		details = append(details, f.execute(sess, config.ContentType{}, action{kind: actionDelete, hit: hit}))
		done++
		report(progress, "fix", done, total)
	}

	if !f.opts.TrainerWheels {
		if err := sess.removeIfEmpty(); err != nil {
			f.logger.Warn("remove empty backup session", logging.Error(err))
		}
	}
	return details, nil
}

// execute carries out one planned action. The decision is already made;
// this only checks permission, backs up, and mutates.
func (f *Fixer) execute(sess *session, contentType config.ContentType, act action) FileDetail {
	detail := FileDetail{
		ContentType: act.hit.ContentType,
		HitType:     act.hit.Type,
		Path:        act.hit.Path,
		Size:        act.hit.Size,
	}

	if !f.opts.FixTypes.Contains(act.hit.Type) {
		return detail
	}

	switch act.kind {
	case actionRename:
		f.logger.Info(f.dryPrefix()+"renaming file",
			logging.String("hit_type", act.hit.Type.String()),
			logging.String("content_type", act.hit.ContentType),
			logging.String("from", act.hit.Path),
			logging.String("to", act.newPath))
		if !f.opts.TrainerWheels {
			if _, err := sess.preserve(backupKindRenamed, act.hit.Path); err != nil {
				return f.abandon(detail, err)
			}
			if err := os.Rename(act.hit.Path, act.newPath); err != nil {
				return f.abandon(detail, err)
			}
			f.renameKindred(sess, contentType, act)
		}
		detail.Outcome = OutcomeRenamed
		detail.NewPath = act.newPath

	case actionDelete:
		f.logger.Info(f.dryPrefix()+"deleting file",
			logging.String("hit_type", act.hit.Type.String()),
			logging.String("content_type", act.hit.ContentType),
			logging.String("file", act.hit.Path))
		if !f.opts.TrainerWheels {
			if _, err := sess.absorb(backupKindDeleted, act.hit.Path); err != nil {
				return f.abandon(detail, err)
			}
		}
		detail.Outcome = OutcomeDeleted
	}
	return detail
}

// renameKindred carries companion files (e.g. subtitles next to a video)
// along with a rename. Failures are logged but do not undo the main
// rename.
func (f *Fixer) renameKindred(sess *session, contentType config.ContentType, act action) {
	dir := filepath.Dir(act.hit.Path)
	oldBase := fileutil.BaseName(act.hit.Path)
	newBase := fileutil.BaseName(act.newPath)

	for _, pattern := range contentType.KindredList() {
		ext := strings.TrimPrefix(pattern, "*")
		companion := filepath.Join(dir, oldBase+ext)
		if _, err := os.Stat(companion); err != nil {
			continue
		}
		target := filepath.Join(dir, newBase+ext)
		if _, err := sess.preserve(backupKindRenamed, companion); err != nil {
			f.logger.Warn("kindred backup failed", logging.String("file", companion), logging.Error(err))
			continue
		}
		if err := os.Rename(companion, target); err != nil {
			f.logger.Warn("kindred rename failed", logging.String("file", companion), logging.Error(err))
			continue
		}
		f.logger.Info("renamed kindred file",
			logging.String("from", companion),
			logging.String("to", target))
	}
}

// Merge fills missing slots from an import folder: for every game whose
// content slot has no usable file, a file in sourceDir carrying the game's
// media or table-file name is copied in under the canonical sanitized
// name. The source folder is never mutated. progress, when non-nil, is
// invoked once per game.
func (f *Fixer) Merge(ctx context.Context, library *scanner.Library, sourceDir string, progress func(ProgressUpdate)) ([]FileDetail, error) {
	var details []FileDetail
	for i, content := range library.Games {
		if err := ctx.Err(); err != nil {
			return details, err
		}
		for _, hits := range content.Hits {
			if !hits.HasAny(scanner.HitMissing) || hasRealHit(hits) {
				continue
			}
			candidate, err := f.findImportable(sourceDir, hits.ContentType, content.Game.Derived.MediaName, content.Game.TableFile)
			if err != nil {
				return details, err
			}
			if candidate == "" {
				continue
			}

			target := filepath.Join(hits.ContentType.Folder, content.Game.Derived.MediaName+filepath.Ext(candidate))
			detail := FileDetail{
				ContentType: hits.ContentType.Name,
				HitType:     scanner.HitMissing,
				Path:        candidate,
				NewPath:     target,
				Size:        fileutil.FileSize(candidate),
			}

			f.logger.Info(f.dryPrefix()+"merging file",
				logging.String("content_type", hits.ContentType.Name),
				logging.String("from", candidate),
				logging.String("to", target))
			if !f.opts.TrainerWheels {
				if err := fileutil.CopyFileVerified(candidate, target); err != nil {
					details = append(details, f.abandon(detail, err))
					continue
				}
			}
			detail.Outcome = OutcomeMerged
			details = append(details, detail)
		}
		report(progress, "merge", i+1, len(library.Games))
	}
	return details, nil
}

// report emits one progress update; nil progress and empty passes are both
// no-ops.
func report(progress func(ProgressUpdate), phase string, done, total int) {
	if progress == nil || total == 0 {
		return
	}
	progress(ProgressUpdate{Phase: phase, Percent: float64(done) / float64(total) * 100})
}

// findImportable locates a file in dir matching either name, preferring
// the content type's extension listing order, then media name over table
// file name.
func (f *Fixer) findImportable(dir string, contentType config.ContentType, mediaName, tableFile string) (string, error) {
	files, err := fileutil.ListByPatterns(dir, contentType.ExtensionList())
	if err != nil {
		return "", fmt.Errorf("list import folder: %w", err)
	}
	for _, wanted := range []string{mediaName, tableFile} {
		for _, file := range files {
			if strings.EqualFold(fileutil.BaseName(file), wanted) {
				return file, nil
			}
		}
	}
	return "", nil
}

// hasRealHit reports whether any on-disk file already occupies the slot,
// even one the fix pass would rename rather than replace.
func hasRealHit(hits *scanner.ContentHits) bool {
	for _, hit := range hits.Hits {
		if hit.IsReal() {
			return true
		}
	}
	return false
}

func (f *Fixer) abandon(detail FileDetail, err error) FileDetail {
	f.logger.Warn("action abandoned",
		logging.String("file", detail.Path),
		logging.String("hit_type", detail.HitType.String()),
		logging.Error(err))
	detail.Outcome = OutcomeIgnored
	detail.NewPath = ""
	return detail
}

func (f *Fixer) dryPrefix() string {
	if f.opts.TrainerWheels {
		return "skipped (trainer wheels are on) "
	}
	return ""
}

// estimateBackupBytes sums the sizes of every real file the pass may copy
// or move into the backup session.
func estimateBackupBytes(library *scanner.Library) int64 {
	var total int64
	for _, content := range library.Games {
		for _, hits := range content.Hits {
			for _, hit := range hits.Hits {
				if hit.IsReal() {
					total += hit.Size
				}
			}
		}
	}
	for _, hit := range library.Unmatched {
		total += hit.Size
	}
	return total
}
