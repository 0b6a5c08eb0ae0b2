package fuzzy

import (
	"strings"

	"github.com/hbollon/go-edlib"
)

// Candidate is a canonical record a parsed name can be matched against.
type Candidate interface {
	// MatchName is the table file base name.
	MatchName() string
	// MatchDescription is the display name media files should carry.
	MatchDescription() string
	MatchManufacturer() string
	MatchYear() int
}

// Cascade step scores. Each step outranks every possible score of the steps
// below it, so a later step can never displace an earlier match during
// pairwise duplicate resolution.
const (
	scoreExact       = 300
	scoreCaseless    = 280
	scoreTableName   = 260
	maxFuzzyScore    = 230
	exactNameScore   = 150
	overlapNameScore = 100
)

// minSimilarity is the Jaro-Winkler floor below which a candidate name
// contributes no fuzzy score at all.
const minSimilarity = 0.80

// Matcher runs the match cascade against candidate records.
type Matcher struct {
	norm      *Normalizer
	threshold int
}

// NewMatcher constructs a Matcher. threshold is the minimum integer score
// the fuzzy step accepts; the first three cascade steps ignore it.
func NewMatcher(norm *Normalizer, threshold int) *Matcher {
	return &Matcher{norm: norm, threshold: threshold}
}

// Match finds the best candidate for details. The cascade is, in order:
// exact display-name equality, case-insensitive equality, table-file-name
// equality, then fuzzy scoring at or above the threshold. The first
// satisfied step wins. Returns ok=false when no step succeeds; that is a
// normal outcome for tables absent from the candidate set.
//
// Candidates are processed in slice order and never mutated, so ties are
// broken by position and repeated runs produce identical results.
func (m *Matcher) Match(details NameDetails, candidates []Candidate) (Candidate, int, bool) {
	name := m.norm.CleanName(details.ActualName)
	nameLower := strings.ToLower(name)

	for _, candidate := range candidates {
		if candidate.MatchDescription() == name {
			return candidate, scoreExact, true
		}
	}
	for _, candidate := range candidates {
		if strings.ToLower(candidate.MatchDescription()) == nameLower {
			return candidate, scoreCaseless, true
		}
	}
	for _, candidate := range candidates {
		if strings.EqualFold(candidate.MatchName(), name) {
			return candidate, scoreTableName, true
		}
	}

	var best Candidate
	bestScore := 0
	for _, candidate := range candidates {
		score := m.Score(details, candidate)
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	if best == nil || bestScore < m.threshold {
		return nil, 0, false
	}
	return best, bestScore, true
}

// Score computes the integer fuzzy confidence for one candidate: the best
// name-component score across display name and table file name, plus
// manufacturer and year bonuses. Zero means no meaningful similarity.
func (m *Matcher) Score(details NameDetails, candidate Candidate) int {
	target := strings.ToLower(m.norm.CleanName(details.ActualName))
	if target == "" {
		return 0
	}

	nameComponent := 0
	for _, variant := range []string{candidate.MatchDescription(), candidate.MatchName()} {
		cleaned := strings.ToLower(m.norm.CleanName(variant))
		if cleaned == "" {
			continue
		}
		if score := nameScore(target, cleaned); score > nameComponent {
			nameComponent = score
		}
	}
	if nameComponent == 0 {
		return 0
	}

	score := nameComponent
	if details.Manufacturer != "" && strings.EqualFold(details.Manufacturer, candidate.MatchManufacturer()) {
		score += 30
	}
	score += yearBonus(details.Year, candidate.MatchYear())

	if score > maxFuzzyScore {
		score = maxFuzzyScore
	}
	return score
}

func nameScore(a, b string) int {
	if a == b {
		return exactNameScore
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return overlapNameScore
	}
	similarity := edlib.JaroWinklerSimilarity(a, b)
	if similarity < minSimilarity {
		return 0
	}
	return int(similarity * 125)
}

func yearBonus(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return 50
	case 1:
		return 40
	default:
		return 0
	}
}
