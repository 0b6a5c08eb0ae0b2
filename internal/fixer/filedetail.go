package fixer

import (
	"fmt"

	"pintidy/internal/scanner"
)

// Outcome is what the fix pass did with one file. The outcomes are
// mutually exclusive; a decision the pass was not allowed or able to carry
// out is recorded as ignored.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeDeleted
	OutcomeRenamed
	OutcomeMerged
)

var outcomeNames = map[Outcome]string{
	OutcomeIgnored: "ignored",
	OutcomeDeleted: "deleted",
	OutcomeRenamed: "renamed",
	OutcomeMerged:  "merged",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// FileDetail records the outcome of one reconciliation action. NewPath is
// set for renames and merges; it is empty otherwise. Not mutated after
// creation.
type FileDetail struct {
	ContentType string
	HitType     scanner.HitType
	Outcome     Outcome
	Path        string
	NewPath     string
	Size        int64
}

// Statistics aggregates fix outcomes for reporting.
type Statistics struct {
	Deleted      int
	Renamed      int
	Merged       int
	Ignored      int
	BytesDeleted int64
}

func Summarize(details []FileDetail) Statistics {
	var stats Statistics
	for _, detail := range details {
		switch detail.Outcome {
		case OutcomeDeleted:
			stats.Deleted++
			stats.BytesDeleted += detail.Size
		case OutcomeRenamed:
			stats.Renamed++
		case OutcomeMerged:
			stats.Merged++
		default:
			stats.Ignored++
		}
	}
	return stats
}
