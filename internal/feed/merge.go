package feed

import (
	"fmt"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// MergedDuplicate records one collapse for reporting.
type MergedDuplicate struct {
	IpdbURL  string
	Survivor string
	Removed  []string
}

// MergeDuplicates collapses feed entries that reference the same IPDB
// machine into a single entry. The survivor is the entry with the shortest
// trimmed name; ties keep the first encountered. File collections from the
// removed entries are appended to the survivor's. The returned slice is
// freshly built, re-sorted by name, with ordinals and derived fields
// assigned.
func MergeDuplicates(entries []OnlineGame) ([]OnlineGame, []MergedDuplicate, error) {
	groups := make(map[string][]int)
	var order []string
	for i := range entries {
		url := entries[i].IpdbURL
		if url == "" {
			continue
		}
		if _, seen := groups[url]; !seen {
			order = append(order, url)
		}
		groups[url] = append(groups[url], i)
	}

	removed := make(map[int]bool)
	var merges []MergedDuplicate
	for _, url := range order {
		indices := groups[url]
		if len(indices) < 2 {
			continue
		}

		survivor := indices[0]
		for _, index := range indices[1:] {
			if nameLength(entries[index].Name) < nameLength(entries[survivor].Name) {
				survivor = index
			}
		}

		merge := MergedDuplicate{IpdbURL: url, Survivor: entries[survivor].Name}
		for _, index := range indices {
			if index == survivor {
				continue
			}
			absorb(&entries[survivor], &entries[index])
			removed[index] = true
			merge.Removed = append(merge.Removed, entries[index].Name)
		}
		merges = append(merges, merge)
	}

	merged := make([]OnlineGame, 0, len(entries)-len(removed))
	for i := range entries {
		if !removed[i] {
			merged = append(merged, entries[i])
		}
	}

	if err := checkDistinct(merged); err != nil {
		return nil, nil, err
	}

	sortByName(merged)
	for i := range merged {
		merged[i].initDerived(i + 1)
	}
	return merged, merges, nil
}

func nameLength(name string) int {
	return len(strings.TrimSpace(name))
}

// absorb appends every file collection of src onto dst.
func absorb(dst, src *OnlineGame) {
	dstGroups := dst.fileGroups()
	srcGroups := src.fileGroups()
	for i := range dstGroups {
		*dstGroups[i].Files = append(*dstGroups[i].Files, *srcGroups[i].Files...)
	}
}

// checkDistinct verifies the merge invariant: at most one entry per IPDB
// reference. A violation means the grouping logic is broken, not the feed.
func checkDistinct(entries []OnlineGame) error {
	seen := make(map[string]string, len(entries))
	for i := range entries {
		url := entries[i].IpdbURL
		if url == "" {
			continue
		}
		if earlier, dup := seen[url]; dup {
			return fmt.Errorf("duplicate ipdb reference survived merge: %q and %q share %s",
				earlier, entries[i].Name, url)
		}
		seen[url] = entries[i].Name
	}
	return nil
}

func sortByName(entries []OnlineGame) {
	c := collate.New(language.English, collate.IgnoreCase)
	c.Sort(onlineGamesByName(entries))
}

type onlineGamesByName []OnlineGame

func (s onlineGamesByName) Len() int      { return len(s) }
func (s onlineGamesByName) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s onlineGamesByName) Bytes(i int) []byte {
	return []byte(s[i].Name)
}
