package fuzzy

import "testing"

func testNormalizer() *Normalizer {
	return NewNormalizer(
		[]string{"JP's", "JPs", "Siggi's", "VPW"},
		[]string{"FS", "DT", "B2S", "VP10", "Mod"},
	)
}

func TestGetNameDetails(t *testing.T) {
	n := testNormalizer()

	tests := []struct {
		name         string
		raw          string
		wantName     string
		wantManuf    string
		wantYear     int
		wantOriginal bool
	}{
		{
			name:      "manufacturer and year",
			raw:       "Apache! (Taito 1975)",
			wantName:  "Apache!",
			wantManuf: "Taito",
			wantYear:  1975,
		},
		{
			name:      "author credit stripped",
			raw:       "JP's Captain Fantastic (Bally 1976)",
			wantName:  "Captain Fantastic",
			wantManuf: "Bally",
			wantYear:  1976,
		},
		{
			name:         "original manufacturer",
			raw:          "Nightmare (Original 2020)",
			wantName:     "Nightmare",
			wantManuf:    "Original",
			wantYear:     2020,
			wantOriginal: true,
		},
		{
			name:         "zen studios is original",
			raw:          "Sorcerer's Lair (Zen Studios 2012)",
			wantName:     "Sorcerer's Lair",
			wantManuf:    "Zen Studios",
			wantYear:     2012,
			wantOriginal: true,
		},
		{
			name:      "decoration suffix stripped",
			raw:       "Medieval Madness FS",
			wantName:  "Medieval Madness",
			wantManuf: "",
		},
		{
			name:      "parenthetical mid-name preserved",
			raw:       "Spider-Man (Vault Edition) (Stern 2016)",
			wantName:  "Spider-Man (Vault Edition)",
			wantManuf: "Stern",
			wantYear:  2016,
		},
		{
			name:      "no year in parens",
			raw:       "Funhouse (Williams)",
			wantName:  "Funhouse",
			wantManuf: "Williams",
		},
		{
			name:     "whitespace collapsed",
			raw:      "  Attack   From  Mars ",
			wantName: "Attack From Mars",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.GetNameDetails(tt.raw)
			if got.ActualName != tt.wantName {
				t.Errorf("ActualName = %q, want %q", got.ActualName, tt.wantName)
			}
			if got.Manufacturer != tt.wantManuf {
				t.Errorf("Manufacturer = %q, want %q", got.Manufacturer, tt.wantManuf)
			}
			if got.Year != tt.wantYear {
				t.Errorf("Year = %d, want %d", got.Year, tt.wantYear)
			}
			if got.IsOriginal != tt.wantOriginal {
				t.Errorf("IsOriginal = %v, want %v", got.IsOriginal, tt.wantOriginal)
			}
		})
	}
}

func TestGetNameDetailsIdempotent(t *testing.T) {
	n := testNormalizer()
	inputs := []string{
		"JP's Captain Fantastic (Bally 1976)",
		"Medieval Madness FS",
		"Apache!",
	}
	for _, raw := range inputs {
		once := n.GetNameDetails(raw)
		twice := n.GetNameDetails(once.ActualName)
		if twice.ActualName != once.ActualName {
			t.Errorf("normalize not idempotent for %q: %q then %q", raw, once.ActualName, twice.ActualName)
		}
	}
}

func TestCleanNamePreservesCasing(t *testing.T) {
	n := testNormalizer()
	if got := n.CleanName("JPs MeDiEvAl MaDnEsS"); got != "MeDiEvAl MaDnEsS" {
		t.Errorf("CleanName = %q", got)
	}
}

func TestStripAuthors(t *testing.T) {
	n := testNormalizer()

	got, changed := n.StripAuthors("JP's Captain Fantastic", "Bally")
	if !changed || got != "Captain Fantastic" {
		t.Errorf("StripAuthors manufactured = (%q, %v)", got, changed)
	}

	// original tables keep the author credit
	got, changed = n.StripAuthors("JP's Dale Jr. Nascar", "Original")
	if changed || got != "JP's Dale Jr. Nascar" {
		t.Errorf("StripAuthors original = (%q, %v)", got, changed)
	}
}

func TestIsOriginalManufacturer(t *testing.T) {
	tests := []struct {
		manufacturer string
		want         bool
	}{
		{"Original", true},
		{"original 2021", true},
		{"Zen Studios", true},
		{"zen studios", true},
		{"Bally", false},
		{"", false},
		{"Originally Bally", true}, // prefix rule is exact, by the letter
	}
	for _, tt := range tests {
		if got := IsOriginalManufacturer(tt.manufacturer); got != tt.want {
			t.Errorf("IsOriginalManufacturer(%q) = %v, want %v", tt.manufacturer, got, tt.want)
		}
	}
}
