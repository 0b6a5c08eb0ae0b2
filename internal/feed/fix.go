package feed

import (
	"sort"
	"strings"

	"pintidy/internal/fuzzy"
	"pintidy/internal/textutil"
)

// Statistics counts content fixes by category, preserving the order in
// which categories were first seen so reports are stable.
type Statistics struct {
	names  []string
	counts map[string]int
}

func NewStatistics() *Statistics {
	return &Statistics{counts: make(map[string]int)}
}

func (s *Statistics) Add(name string) {
	if _, seen := s.counts[name]; !seen {
		s.names = append(s.names, name)
	}
	s.counts[name]++
}

func (s *Statistics) Count(name string) int { return s.counts[name] }

func (s *Statistics) Total() int {
	total := 0
	for _, count := range s.counts {
		total += count
	}
	return total
}

// Each calls fn for every category in first-seen order.
func (s *Statistics) Each(fn func(name string, count int)) {
	for _, name := range s.names {
		fn(name, s.counts[name])
	}
}

// Fix categories reported in Statistics.
const (
	FixNameWhitespace      = "name whitespace"
	FixManufacturerSpacing = "manufacturer whitespace"
	FixNameAuthors         = "author credit in name"
	FixIpdbURLInvalid      = "invalid ipdb url"
	FixIpdbURLInsecure     = "insecure ipdb url"
	FixIpdbURLOnOriginal   = "ipdb url on original table"
	FixNamedGame           = "named game override"
	FixMissingImage        = "missing image url"
	FixUpdatedBeforeCreate = "updated precedes created"
	FixFileOrdering        = "file ordering"
	FixBrokenURL           = "empty url marked broken"
	FixForumPath           = "forum path missing"
	FixStaleGameTimestamp  = "game older than its files"
)

// FixBeforeMerge repairs per-entry content problems that must be resolved
// before duplicates can be grouped: whitespace, author credits on
// manufactured tables, and IPDB reference URLs.
func FixBeforeMerge(entries []OnlineGame, norm *fuzzy.Normalizer, overrides []Override, stats *Statistics) {
	for i := range entries {
		game := &entries[i]

		if collapsed := textutil.CollapseWhitespace(game.Name); collapsed != game.Name {
			game.Name = collapsed
			stats.Add(FixNameWhitespace)
		}
		if collapsed := textutil.CollapseWhitespace(game.Manufacturer); collapsed != game.Manufacturer {
			game.Manufacturer = collapsed
			stats.Add(FixManufacturerSpacing)
		}

		applyOverride(game, overrides, stats)

		if stripped, changed := norm.StripAuthors(game.Name, game.Manufacturer); changed {
			game.Name = stripped
			stats.Add(FixNameAuthors)
		}

		fixIpdbURL(game, stats)
	}
}

func fixIpdbURL(game *OnlineGame, stats *Statistics) {
	url := strings.TrimSpace(game.IpdbURL)

	if fuzzy.IsOriginalManufacturer(game.Manufacturer) {
		if url != "" {
			game.IpdbURL = ""
			stats.Add(FixIpdbURLOnOriginal)
		}
		return
	}

	switch {
	case url == "":
		game.IpdbURL = ""
	case strings.HasPrefix(url, "http://www.ipdb.org/"):
		game.IpdbURL = "https://" + strings.TrimPrefix(url, "http://")
		stats.Add(FixIpdbURLInsecure)
	case strings.HasPrefix(url, "https://www.ipdb.org/"):
		game.IpdbURL = url
	default:
		// anything not pointing at ipdb.org is noise, not a reference
		game.IpdbURL = ""
		stats.Add(FixIpdbURLInvalid)
	}
}

// FixAfterMerge repairs problems that only make sense once duplicates are
// collapsed: image fallbacks, timestamp ordering, file ordering, and
// download URL hygiene.
func FixAfterMerge(entries []OnlineGame, stats *Statistics) {
	for i := range entries {
		game := &entries[i]

		if game.ImgURL == "" {
			for _, file := range game.TableFiles {
				if file.ImgURL != "" {
					game.ImgURL = file.ImgURL
					stats.Add(FixMissingImage)
					break
				}
			}
		}

		if !game.CreatedAt.IsZero() && game.UpdatedAt.Before(game.CreatedAt.Time) {
			game.UpdatedAt = game.CreatedAt
			stats.Add(FixUpdatedBeforeCreate)
		}

		for _, group := range game.fileGroups() {
			fixFiles(*group.Files, stats)
			if reorderFiles(*group.Files) {
				stats.Add(FixFileOrdering)
			}
		}

		var latest UnixTime
		for _, file := range game.AllFiles() {
			if file.UpdatedAt.After(latest.Time) {
				latest = file.UpdatedAt
			}
		}
		if !latest.IsZero() && game.UpdatedAt.Before(latest.Time) {
			game.UpdatedAt = latest
			stats.Add(FixStaleGameTimestamp)
		}
	}
}

func fixFiles(files []File, stats *Statistics) {
	for i := range files {
		file := &files[i]

		if !file.CreatedAt.IsZero() && file.UpdatedAt.Before(file.CreatedAt.Time) {
			file.UpdatedAt = file.CreatedAt
			stats.Add(FixUpdatedBeforeCreate)
		}

		for j := range file.Urls {
			detail := &file.Urls[j]
			if detail.URL == "" && !detail.Broken {
				detail.Broken = true
				stats.Add(FixBrokenURL)
				continue
			}
			if fixed, changed := fixForumPath(detail.URL); changed {
				detail.URL = fixed
				stats.Add(FixForumPath)
			}
		}
	}
}

// fixForumPath repairs vpuniverse download links published without the
// /forums path segment, which 404 as-is.
func fixForumPath(url string) (string, bool) {
	const host = "https://vpuniverse.com/"
	if !strings.HasPrefix(url, host) {
		return url, false
	}
	rest := strings.TrimPrefix(url, host)
	if strings.HasPrefix(rest, "forums/") || !strings.HasPrefix(rest, "files/") {
		return url, false
	}
	return host + "forums/" + rest, true
}

// reorderFiles sorts most-recently-updated first; reports whether the
// order changed.
func reorderFiles(files []File) bool {
	changed := !sort.SliceIsSorted(files, func(i, j int) bool {
		return files[i].UpdatedAt.After(files[j].UpdatedAt.Time)
	})
	if changed {
		sort.SliceStable(files, func(i, j int) bool {
			return files[i].UpdatedAt.After(files[j].UpdatedAt.Time)
		})
	}
	return changed
}
