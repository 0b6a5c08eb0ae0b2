package fuzzy

import "testing"

type fakeCandidate struct {
	name         string
	description  string
	manufacturer string
	year         int
}

func (f fakeCandidate) MatchName() string         { return f.name }
func (f fakeCandidate) MatchDescription() string  { return f.description }
func (f fakeCandidate) MatchManufacturer() string { return f.manufacturer }
func (f fakeCandidate) MatchYear() int            { return f.year }

func testMatcher() *Matcher {
	return NewMatcher(testNormalizer(), 100)
}

func candidates(cs ...fakeCandidate) []Candidate {
	out := make([]Candidate, len(cs))
	for i, c := range cs {
		out[i] = c
	}
	return out
}

func TestMatchCascadeOrder(t *testing.T) {
	m := testMatcher()
	pool := candidates(
		fakeCandidate{name: "mm_106", description: "Medieval Madness", manufacturer: "Williams", year: 1997},
		fakeCandidate{name: "afm_113b", description: "Attack From Mars", manufacturer: "Bally", year: 1995},
	)

	tests := []struct {
		name      string
		input     string
		wantDesc  string
		wantScore int
	}{
		{"exact", "Medieval Madness", "Medieval Madness", scoreExact},
		{"case insensitive", "medieval madness", "Medieval Madness", scoreCaseless},
		{"table file name", "MM_106", "Medieval Madness", scoreTableName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := NameDetails{ActualName: tt.input}
			got, score, ok := m.Match(details, pool)
			if !ok {
				t.Fatal("expected a match")
			}
			if got.MatchDescription() != tt.wantDesc {
				t.Errorf("matched %q, want %q", got.MatchDescription(), tt.wantDesc)
			}
			if score != tt.wantScore {
				t.Errorf("score = %d, want %d", score, tt.wantScore)
			}
		})
	}
}

func TestMatchFuzzyStep(t *testing.T) {
	m := testMatcher()
	pool := candidates(
		fakeCandidate{name: "apache_1", description: "Apache!", manufacturer: "Taito", year: 1975},
		fakeCandidate{name: "fh_906h", description: "Funhouse", manufacturer: "Williams", year: 1990},
	)

	// "Apache" is a strict substring of "Apache!" so the overlap component
	// plus manufacturer and year bonuses clears the threshold.
	details := NameDetails{ActualName: "Apache", Manufacturer: "Taito", Year: 1975}
	got, score, ok := m.Match(details, pool)
	if !ok {
		t.Fatal("expected fuzzy match")
	}
	if got.MatchDescription() != "Apache!" {
		t.Errorf("matched %q", got.MatchDescription())
	}
	if score < 100 || score > maxFuzzyScore {
		t.Errorf("score = %d outside fuzzy range", score)
	}
	if score >= scoreTableName {
		t.Errorf("fuzzy score %d must stay below every cascade-step score", score)
	}
}

func TestMatchNoMatch(t *testing.T) {
	m := testMatcher()
	pool := candidates(
		fakeCandidate{name: "fh_906h", description: "Funhouse", manufacturer: "Williams", year: 1990},
	)

	_, _, ok := m.Match(NameDetails{ActualName: "Cirqus Voltaire"}, pool)
	if ok {
		t.Fatal("expected no match")
	}
}

func TestMatchTieBreaksByPosition(t *testing.T) {
	m := testMatcher()
	pool := candidates(
		fakeCandidate{name: "st_a", description: "Star Trek", manufacturer: "Bally", year: 1979},
		fakeCandidate{name: "st_b", description: "Star Trek", manufacturer: "Bally", year: 1979},
	)

	got, _, ok := m.Match(NameDetails{ActualName: "Star Trek"}, pool)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.MatchName() != "st_a" {
		t.Errorf("tie should keep first candidate, got %q", got.MatchName())
	}
}

func TestScoreExactOutranksApacheOverlap(t *testing.T) {
	m := testMatcher()
	local := fakeCandidate{name: "apache_1", description: "Apache!", manufacturer: "Taito", year: 1975}

	loose := m.Score(NameDetails{ActualName: "Apache", Manufacturer: "Taito", Year: 1975}, local)
	exact := m.Score(NameDetails{ActualName: "Apache!", Manufacturer: "Taito", Year: 1975}, local)
	if loose >= exact {
		t.Errorf("loose score %d must lose to exact score %d", loose, exact)
	}
}

func TestScoreRejectsUnrelatedNames(t *testing.T) {
	m := testMatcher()
	local := fakeCandidate{name: "tz_92", description: "Twilight Zone", manufacturer: "Bally", year: 1993}
	if got := m.Score(NameDetails{ActualName: "Whirlwind"}, local); got != 0 {
		t.Errorf("Score = %d, want 0", got)
	}
}
