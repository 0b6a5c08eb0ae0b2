package fixer

import (
	"path/filepath"

	"pintidy/internal/scanner"
)

type actionKind int

const (
	actionDelete actionKind = iota
	actionRename
)

// action is one planned file-system mutation. Decisions are computed
// without side effects so the dry run and the live run share this path
// exactly; only the executor differs.
type action struct {
	kind    actionKind
	hit     *scanner.Hit
	newPath string
}

// decide plans the actions for one game's hits within one content type:
//   - a valid hit keeps its file and every other real hit is deleted
//   - otherwise the best near-miss (wrong case, then table name, then
//     fuzzy) is renamed to the canonical name and the rest are deleted
//   - collections holding only missing, unknown, or unsupported hits
//     yield no actions; those cannot be repaired from what is on disk
//
// mediaName is the sanitized on-disk name (games.Derived.MediaName), not
// the raw display name, which may contain path separators.
func decide(hits *scanner.ContentHits, mediaName string) []action {
	if keeper := hits.First(scanner.HitValid); keeper != nil {
		return deleteAllExcept(hits, keeper)
	}

	if keeper := hits.First(scanner.HitWrongCase, scanner.HitTableName, scanner.HitFuzzy); keeper != nil {
		newPath := filepath.Join(filepath.Dir(keeper.Path), mediaName+filepath.Ext(keeper.Path))
		actions := []action{{kind: actionRename, hit: keeper, newPath: newPath}}
		return append(actions, deleteAllExcept(hits, keeper)...)
	}

	return nil
}

func deleteAllExcept(hits *scanner.ContentHits, keeper *scanner.Hit) []action {
	var actions []action
	for _, hit := range hits.Hits {
		if hit == keeper || !hit.IsReal() {
			continue
		}
		actions = append(actions, action{kind: actionDelete, hit: hit})
	}
	return actions
}
