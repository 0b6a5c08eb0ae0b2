package fuzzy

import (
	"regexp"
	"strconv"
	"strings"

	"pintidy/internal/textutil"
)

// NameDetails is a raw table name decomposed into its canonical parts.
// ActualName preserves the original casing of the remaining text.
type NameDetails struct {
	ActualName   string
	Manufacturer string
	Year         int
	IsOriginal   bool
}

// trailingParenPattern captures a trailing "(Manufacturer Year)" suffix;
// the year is optional, e.g. "Apache! (Taito 1975)" or "Nightmare (Original)".
var trailingParenPattern = regexp.MustCompile(`\(\s*([^()]*?)\s*(\d{4})?\s*\)$`)

// IsOriginalManufacturer reports whether a manufacturer string denotes an
// original (non-manufactured) table. The rule is exact: the string starts
// with "Original" or "Zen Studios", case-insensitive.
func IsOriginalManufacturer(manufacturer string) bool {
	m := strings.TrimSpace(manufacturer)
	lower := strings.ToLower(m)
	return strings.HasPrefix(lower, "original") || strings.HasPrefix(lower, "zen studios")
}

// Normalizer strips author credits and decoration suffixes from table names.
// Construct once per run; safe for concurrent use.
type Normalizer struct {
	authorTokens     map[string]struct{}
	decorationTokens map[string]struct{}
}

// NewNormalizer builds a Normalizer from configured token lists. Tokens are
// matched as whole words, case-insensitive.
func NewNormalizer(authorTokens, decorationTokens []string) *Normalizer {
	n := &Normalizer{
		authorTokens:     make(map[string]struct{}, len(authorTokens)),
		decorationTokens: make(map[string]struct{}, len(decorationTokens)),
	}
	for _, token := range authorTokens {
		if trimmed := strings.TrimSpace(token); trimmed != "" {
			n.authorTokens[strings.ToLower(trimmed)] = struct{}{}
		}
	}
	for _, token := range decorationTokens {
		if trimmed := strings.TrimSpace(token); trimmed != "" {
			n.decorationTokens[strings.ToLower(trimmed)] = struct{}{}
		}
	}
	return n
}

// GetNameDetails parses raw into canonical name details: a trailing
// "(Manufacturer Year)" suffix is split off, author credits and trailing
// decoration markers are removed, and whitespace is collapsed. The casing
// of the remaining text is untouched. Idempotent.
func (n *Normalizer) GetNameDetails(raw string) NameDetails {
	trimmed := textutil.CollapseWhitespace(raw)

	name := trimmed
	manufacturer := ""
	year := 0
	if loc := trailingParenPattern.FindStringSubmatchIndex(trimmed); loc != nil {
		groups := trailingParenPattern.FindStringSubmatch(trimmed)
		name = strings.TrimSpace(trimmed[:loc[0]])
		manufacturer = groups[1]
		if groups[2] != "" {
			year, _ = strconv.Atoi(groups[2])
		}
	}

	return NameDetails{
		ActualName:   n.CleanName(name),
		Manufacturer: manufacturer,
		Year:         year,
		IsOriginal:   IsOriginalManufacturer(manufacturer),
	}
}

// CleanName removes author credit tokens anywhere in the name and decoration
// tokens from the end, preserving the casing of what remains. Idempotent.
func (n *Normalizer) CleanName(name string) string {
	return trimDecorations(removeAuthors(name, n.authorTokens), n.decorationTokens)
}

// StripAuthors removes author tokens from name when the manufacturer denotes
// a manufactured table; original tables keep their author credits since the
// credit is part of the table's identity there.
func (n *Normalizer) StripAuthors(name, manufacturer string) (string, bool) {
	if IsOriginalManufacturer(manufacturer) {
		return name, false
	}
	cleaned := removeAuthors(name, n.authorTokens)
	return cleaned, cleaned != name
}

func removeAuthors(name string, authors map[string]struct{}) string {
	fields := strings.Fields(name)
	kept := make([]string, 0, len(fields))
	for _, field := range fields {
		if _, isAuthor := authors[strings.ToLower(field)]; isAuthor {
			continue
		}
		kept = append(kept, field)
	}
	return strings.Join(kept, " ")
}

func trimDecorations(name string, decorations map[string]struct{}) string {
	fields := strings.Fields(name)
	for len(fields) > 0 {
		last := strings.ToLower(fields[len(fields)-1])
		if _, isDecoration := decorations[last]; !isDecoration {
			break
		}
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}
