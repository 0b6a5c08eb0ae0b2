package feed

import (
	"testing"

	"pintidy/internal/fuzzy"
	"pintidy/internal/games"
)

func localGame(tableFile, description, manufacturer, year string) *games.Game {
	g := &games.Game{
		TableFile:    tableFile,
		Description:  description,
		Manufacturer: manufacturer,
		Year:         year,
	}
	g.InitDerived(1)
	return g
}

func TestMatchOnlineToLocal(t *testing.T) {
	norm := testNormalizer()
	matcher := fuzzy.NewMatcher(norm, 100)

	local := []*games.Game{
		localGame("MedievalMadness", "Medieval Madness (Williams 1997)", "Williams", "1997"),
		localGame("CastleDefender", "Castle Defender (Original 2021)", "Original", "2021"),
	}
	entries := []OnlineGame{
		{Name: "Medieval Madness", Manufacturer: "Williams", Year: 1997},
		{Name: "Totally Absent Table", Manufacturer: "Gottlieb", Year: 1955},
	}
	for i := range entries {
		entries[i].initDerived(i + 1)
	}

	stats := MatchOnlineToLocal(entries, local, matcher, norm, nil, nil)

	if entries[0].Hit != local[0] {
		t.Error("exact entry did not match its local game")
	}
	if entries[1].Hit != nil {
		t.Error("absent table matched something")
	}
	if stats.Count(MatchedTotal) != 1 || stats.Count(MatchedManufactured) != 1 {
		t.Errorf("matched counts = %d/%d", stats.Count(MatchedTotal), stats.Count(MatchedManufactured))
	}
	if stats.Count(UnmatchedOnlineTotal) != 1 {
		t.Errorf("unmatched online = %d", stats.Count(UnmatchedOnlineTotal))
	}
	if stats.Count(UnmatchedLocalTotal) != 1 || stats.Count(UnmatchedLocalOrig) != 1 {
		t.Errorf("unmatched local = %d/%d", stats.Count(UnmatchedLocalTotal), stats.Count(UnmatchedLocalOrig))
	}
}

func TestMatchOnlineToLocalReportsProgress(t *testing.T) {
	norm := testNormalizer()
	matcher := fuzzy.NewMatcher(norm, 100)

	local := []*games.Game{
		localGame("MedievalMadness", "Medieval Madness (Williams 1997)", "Williams", "1997"),
	}
	entries := []OnlineGame{
		{Name: "Medieval Madness", Manufacturer: "Williams", Year: 1997},
		{Name: "Totally Absent Table", Manufacturer: "Gottlieb", Year: 1955},
	}
	for i := range entries {
		entries[i].initDerived(i + 1)
	}

	var updates []ProgressUpdate
	MatchOnlineToLocal(entries, local, matcher, norm, nil, func(u ProgressUpdate) {
		updates = append(updates, u)
	})

	if len(updates) != len(entries) {
		t.Fatalf("got %d progress updates, want %d", len(updates), len(entries))
	}
	last := 0.0
	for _, u := range updates {
		if u.Phase != "match" {
			t.Errorf("phase = %q", u.Phase)
		}
		if u.Percent <= last {
			t.Errorf("percent did not advance: %v", updates)
		}
		last = u.Percent
	}
	if last != 100 {
		t.Errorf("final percent = %v, want 100", last)
	}
}

// A local game contested by a near-miss and an exact entry must end up with
// the exact entry regardless of which order the two are scored in.
func TestMatchOnlineToLocalDemotesWeakerHolder(t *testing.T) {
	norm := testNormalizer()
	matcher := fuzzy.NewMatcher(norm, 100)

	orders := map[string][]OnlineGame{
		"near miss first": {
			{Name: "Apache!", Manufacturer: "Taito", Year: 1975},
			{Name: "Apache", Manufacturer: "Taito", Year: 1975},
		},
		"exact first": {
			{Name: "Apache", Manufacturer: "Taito", Year: 1975},
			{Name: "Apache!", Manufacturer: "Taito", Year: 1975},
		},
	}

	for name, entries := range orders {
		t.Run(name, func(t *testing.T) {
			local := []*games.Game{
				localGame("Apache_1975", "Apache (Taito 1975)", "Taito", "1975"),
			}
			for i := range entries {
				entries[i].initDerived(i + 1)
			}

			stats := MatchOnlineToLocal(entries, local, matcher, norm, nil, nil)

			var winner *OnlineGame
			for i := range entries {
				if entries[i].Hit == local[0] {
					if winner != nil {
						t.Fatal("local game held by two entries")
					}
					winner = &entries[i]
				}
			}
			if winner == nil || winner.Name != "Apache" {
				t.Fatalf("winner = %v, want the exact entry", winner)
			}
			if stats.Count(MatchedTotal) != 1 {
				t.Errorf("matched = %d, want 1", stats.Count(MatchedTotal))
			}
			if stats.Count(UnmatchedOnlineTotal) != 1 {
				t.Errorf("unmatched online = %d, want 1", stats.Count(UnmatchedOnlineTotal))
			}
			if stats.Count(MatchedTotal)+stats.Count(UnmatchedOnlineTotal) != len(entries) {
				t.Error("statistics do not account for every entry")
			}
		})
	}
}
