package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", "Medieval Madness", "Medieval Madness"},
		{"colon", "AC/DC: Let There Be Rock", "AC-DC- Let There Be Rock"},
		{"question mark", "Who Dunnit?", "Who Dunnit"},
		{"pipe and quotes", `The "Machine" | Bride`, "The Machine  Bride"},
		{"whitespace", "  Funhouse  ", "Funhouse"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Captain  Fantastic", "Captain Fantastic"},
		{"  Apache!  ", "Apache!"},
		{"a\t b", "a b"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CollapseWhitespace(tt.input); got != tt.want {
			t.Errorf("CollapseWhitespace(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
