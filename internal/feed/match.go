package feed

import (
	"log/slog"

	"pintidy/internal/fuzzy"
	"pintidy/internal/games"
	"pintidy/internal/logging"
)

// Match statistics keys.
const (
	MatchedTotal          = "matched"
	MatchedManufactured   = "matched manufactured"
	MatchedOriginal       = "matched original"
	UnmatchedOnlineTotal  = "unmatched online"
	UnmatchedOnlineManuf  = "unmatched online manufactured"
	UnmatchedOnlineOrig   = "unmatched online original"
	UnmatchedLocalTotal   = "unmatched local"
	UnmatchedLocalManuf   = "unmatched local manufactured"
	UnmatchedLocalOrig    = "unmatched local original"
)

// MatchStatistics counts reconciliation outcomes split by matched state
// and table origin. Counts move in pairs via record/unrecord so a match
// that is later demoted never double-counts.
type MatchStatistics struct {
	counts map[string]int
}

func NewMatchStatistics() *MatchStatistics {
	return &MatchStatistics{counts: make(map[string]int)}
}

func (s *MatchStatistics) Count(key string) int { return s.counts[key] }

func (s *MatchStatistics) Increment(key string) { s.counts[key]++ }

func (s *MatchStatistics) Decrement(key string) { s.counts[key]-- }

func (s *MatchStatistics) recordMatch(original bool) {
	s.Increment(MatchedTotal)
	s.Increment(originKey(MatchedManufactured, MatchedOriginal, original))
}

func (s *MatchStatistics) unrecordMatch(original bool) {
	s.Decrement(MatchedTotal)
	s.Decrement(originKey(MatchedManufactured, MatchedOriginal, original))
}

func (s *MatchStatistics) recordUnmatchedOnline(original bool) {
	s.Increment(UnmatchedOnlineTotal)
	s.Increment(originKey(UnmatchedOnlineManuf, UnmatchedOnlineOrig, original))
}

func originKey(manufactured, original string, isOriginal bool) string {
	if isOriginal {
		return original
	}
	return manufactured
}

// ProgressUpdate reports coarse matching progress back to the caller: the
// named phase plus percent of entries processed.
type ProgressUpdate struct {
	Phase   string
	Percent float64
}

// MatchOnlineToLocal associates each online entry with its best-scoring
// local game. A local game holds at most one association: when two online
// entries score against the same local game, the higher score keeps it and
// the earlier holder is demoted on the spot, with its statistics reversed
// in the same step. Entry order therefore never changes the final winner.
// progress, when non-nil, is invoked once per online entry.
func MatchOnlineToLocal(entries []OnlineGame, local []*games.Game, matcher *fuzzy.Matcher, norm *fuzzy.Normalizer, logger *slog.Logger, progress func(ProgressUpdate)) *MatchStatistics {
	if logger == nil {
		logger = logging.NewNop()
	}
	stats := NewMatchStatistics()

	candidates := make([]fuzzy.Candidate, len(local))
	for i, game := range local {
		candidates[i] = game
	}

	holder := make(map[*games.Game]*OnlineGame)
	for i := range entries {
		entry := &entries[i]
		if progress != nil {
			progress(ProgressUpdate{Phase: "match", Percent: float64(i+1) / float64(len(entries)) * 100})
		}
		hit, score, ok := matcher.Match(entry.NameDetails(norm), candidates)
		if !ok {
			stats.recordUnmatchedOnline(entry.IsOriginal)
			continue
		}

		game := hit.(*games.Game)
		previous, contested := holder[game]
		if contested {
			if score <= previous.HitScore {
				stats.recordUnmatchedOnline(entry.IsOriginal)
				continue
			}
			// demote the earlier, weaker holder
			logger.Debug("local game reassigned to stronger match",
				logging.String("game", game.Description),
				logging.String("previous", previous.Description),
				logging.Int("previous_score", previous.HitScore),
				logging.String("winner", entry.Description),
				logging.Int("score", score))
			previous.Hit = nil
			previous.HitScore = 0
			stats.unrecordMatch(previous.IsOriginal)
			stats.recordUnmatchedOnline(previous.IsOriginal)
		}

		holder[game] = entry
		entry.Hit = game
		entry.HitScore = score
		stats.recordMatch(entry.IsOriginal)
	}

	for _, game := range local {
		if _, matched := holder[game]; matched {
			continue
		}
		stats.Increment(UnmatchedLocalTotal)
		stats.Increment(originKey(UnmatchedLocalManuf, UnmatchedLocalOrig, game.Derived.IsOriginal))
	}
	return stats
}
