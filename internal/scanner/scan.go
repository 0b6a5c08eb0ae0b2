package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"pintidy/internal/config"
	"pintidy/internal/fileutil"
	"pintidy/internal/games"
	"pintidy/internal/logging"
)

// GameContent is one game plus the hits it accumulated, one collection per
// scanned content type.
type GameContent struct {
	Game *games.Game
	Hits []*ContentHits
}

// HitsFor returns the collection for the named content type.
func (g *GameContent) HitsFor(contentType string) *ContentHits {
	for _, hits := range g.Hits {
		if hits.ContentType.Name == contentType {
			return hits
		}
	}
	return nil
}

// Library is the result of a scan: every game with its hits, plus the
// files that claimed no game at all.
type Library struct {
	Games     []*GameContent
	Unmatched []*Hit
	FileCount int
}

// Scanner classifies media folders against the table database.
type Scanner struct {
	cfg    *config.Config
	logger *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) (*Scanner, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scanner{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "scanner"),
	}, nil
}

// Scan walks every selected content type folder and classifies each file.
// Classification visits games in database order, so when several games
// could claim a file the earliest wins deterministically.
func (s *Scanner) Scan(ctx context.Context, gameList []*games.Game) (*Library, error) {
	checkTypes, err := ParseHitTypes(s.cfg.Scan.HitTypes)
	if err != nil {
		return nil, fmt.Errorf("scan hit types: %w", err)
	}
	// an empty selection reports everything
	if len(checkTypes) == 0 {
		checkTypes = AllHitTypes()
	}

	contentTypes := s.cfg.SelectedContentTypes()
	if len(contentTypes) == 0 {
		return nil, fmt.Errorf("no content types selected")
	}

	library := &Library{Games: make([]*GameContent, len(gameList))}
	for i, game := range gameList {
		library.Games[i] = &GameContent{Game: game}
	}

	for _, contentType := range contentTypes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.scanContentType(library, contentType, checkTypes); err != nil {
			return nil, err
		}
	}

	checkMissing(library, checkTypes)
	s.logger.Info("scan complete",
		logging.Int("files", library.FileCount),
		logging.Int("games", len(gameList)),
		logging.Int("unmatched", len(library.Unmatched)))
	return library, nil
}

func (s *Scanner) scanContentType(library *Library, contentType config.ContentType, checkTypes HitTypeSet) error {
	for _, content := range library.Games {
		content.Hits = append(content.Hits, NewContentHits(contentType, checkTypes))
	}

	files, err := fileutil.ListByPatterns(contentType.Folder, contentType.ExtensionList())
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("content folder does not exist, skipping",
			logging.String("content_type", contentType.Name),
			logging.String("folder", contentType.Folder))
		return nil
	}
	if err != nil {
		return fmt.Errorf("list %s folder: %w", contentType.Name, err)
	}

	for _, file := range files {
		s.classify(library, contentType, file)
	}
	library.FileCount += len(files)

	if checkTypes.Contains(HitUnsupported) {
		if err := s.sweepUnsupported(library, contentType); err != nil {
			return err
		}
	}

	s.logger.Debug("content type scanned",
		logging.String("content_type", contentType.Name),
		logging.Int("files", len(files)))
	return nil
}

// classify assigns exactly one hit type to file. The cascade tests every
// game per step before moving to the next step, so a weak match against an
// early game never shadows a strong match against a later one.
func (s *Scanner) classify(library *Library, contentType config.ContentType, file string) {
	base := fileutil.BaseName(file)
	baseLower := strings.ToLower(base)
	size := fileutil.FileSize(file)

	for _, content := range library.Games {
		if content.Game.Derived.MediaName == base {
			hits := content.HitsFor(contentType.Name)
			if hits.HasAny(HitValid) {
				hits.Add(HitDuplicateExtension, file, size)
			} else {
				hits.Add(HitValid, file, size)
			}
			return
		}
	}
	for _, content := range library.Games {
		if content.Game.Derived.MediaNameLower == baseLower {
			content.HitsFor(contentType.Name).Add(HitWrongCase, file, size)
			return
		}
	}
	for _, content := range library.Games {
		if content.Game.TableFile == base {
			content.HitsFor(contentType.Name).Add(HitTableName, file, size)
			return
		}
	}
	for _, content := range library.Games {
		if prefixOverlap(base, content.Game.TableFile) || prefixOverlap(base, content.Game.Derived.MediaName) {
			content.HitsFor(contentType.Name).Add(HitFuzzy, file, size)
			return
		}
	}

	library.Unmatched = append(library.Unmatched, &Hit{
		ContentType: contentType.Name,
		Type:        HitUnknown,
		Path:        file,
		Size:        size,
	})
}

// sweepUnsupported reports every file in the folder whose extension is
// outside the content type's configured list. Checked against the whole
// listing, not per game.
func (s *Scanner) sweepUnsupported(library *Library, contentType config.ContentType) error {
	all, err := fileutil.ListAll(contentType.Folder)
	if err != nil {
		return fmt.Errorf("list %s folder: %w", contentType.Name, err)
	}

	supported := make(map[string]struct{})
	for _, pattern := range contentType.ExtensionList() {
		supported[strings.ToLower(strings.TrimPrefix(pattern, "*"))] = struct{}{}
	}

	for _, file := range all {
		ext := strings.ToLower(filepath.Ext(file))
		if _, ok := supported[ext]; ok {
			continue
		}
		library.Unmatched = append(library.Unmatched, &Hit{
			ContentType: contentType.Name,
			Type:        HitUnsupported,
			Path:        file,
			Size:        fileutil.FileSize(file),
		})
	}
	return nil
}

// checkMissing synthesizes a missing hit for every game/content-type pair
// that ended the scan without a valid or wrong-case file. Runs after every
// folder is listed so a table-name or fuzzy hit still reports the canonical
// file as missing.
func checkMissing(library *Library, checkTypes HitTypeSet) {
	if !checkTypes.Contains(HitMissing) {
		return
	}
	for _, content := range library.Games {
		for _, hits := range content.Hits {
			if !hits.HasAny(HitValid, HitWrongCase) {
				hits.Add(HitMissing, content.Game.Derived.MediaName, 0)
			}
		}
	}
}

func prefixOverlap(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}
