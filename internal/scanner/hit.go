package scanner

import (
	"fmt"
	"strings"
)

// HitType classifies the outcome of testing one on-disk file against the
// table database. Declaration order is priority order: when a game holds
// several hits, the lowest-valued type present decides the fix action.
type HitType int

const (
	// HitValid is an exact display-name match.
	HitValid HitType = iota
	// HitWrongCase matches the display name ignoring case.
	HitWrongCase
	// HitTableName matches the table file name instead of the display name.
	HitTableName
	// HitFuzzy is a prefix overlap with either name in either direction.
	HitFuzzy
	// HitDuplicateExtension is a second file for a name that already has a
	// valid hit; extension listing order decides which file became valid.
	HitDuplicateExtension
	// HitMissing is a synthesized hit for a game with no usable file.
	HitMissing
	// HitUnknown is a tracked extension that matches no game.
	HitUnknown
	// HitUnsupported is an extension the folder does not track at all.
	HitUnsupported
)

var hitTypeNames = map[HitType]string{
	HitValid:              "valid",
	HitWrongCase:          "wrong case",
	HitTableName:          "table name",
	HitFuzzy:              "fuzzy",
	HitDuplicateExtension: "duplicate extension",
	HitMissing:            "missing",
	HitUnknown:            "unknown",
	HitUnsupported:        "unsupported",
}

func (t HitType) String() string {
	if name, ok := hitTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("HitType(%d)", int(t))
}

// ParseHitType resolves a configuration name to its HitType. Comparison
// ignores case and separators, so "WrongCase", "wrong case", and
// "wrong_case" all name the same type.
func ParseHitType(name string) (HitType, error) {
	needle := foldHitTypeName(name)
	for hitType, known := range hitTypeNames {
		if foldHitTypeName(known) == needle {
			return hitType, nil
		}
	}
	return 0, fmt.Errorf("unknown hit type %q", name)
}

func foldHitTypeName(name string) string {
	folded := strings.ToLower(name)
	for _, sep := range []string{" ", "-", "_"} {
		folded = strings.ReplaceAll(folded, sep, "")
	}
	return folded
}

// HitTypeSet is a selection of hit types, used both for which problems a
// scan reports and which problems a fix pass is allowed to repair.
type HitTypeSet map[HitType]struct{}

// ParseHitTypes builds a set from configuration names. An empty list
// yields an empty set; callers decide what an empty selection means.
func ParseHitTypes(names []string) (HitTypeSet, error) {
	set := make(HitTypeSet, len(names))
	for _, name := range names {
		hitType, err := ParseHitType(name)
		if err != nil {
			return nil, err
		}
		set[hitType] = struct{}{}
	}
	return set, nil
}

// AllHitTypes returns a set containing every hit type.
func AllHitTypes() HitTypeSet {
	set := make(HitTypeSet, len(hitTypeNames))
	for hitType := range hitTypeNames {
		set[hitType] = struct{}{}
	}
	return set
}

func (s HitTypeSet) Contains(t HitType) bool {
	_, ok := s[t]
	return ok
}

// Hit is one classified file (or, for missing hits, the file that should
// exist). Size is zero for synthesized missing hits.
type Hit struct {
	ContentType string
	Type        HitType
	Path        string
	Size        int64
}

// IsReal reports whether the hit refers to an actual on-disk file.
func (h *Hit) IsReal() bool {
	return h.Type != HitMissing
}
