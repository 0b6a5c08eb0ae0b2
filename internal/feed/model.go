package feed

import (
	"fmt"

	"pintidy/internal/fuzzy"
	"pintidy/internal/games"
)

// OnlineGame is one table entry from the online feed. The per-content file
// collections mirror the feed's schema; fileGroups gives uniform access to
// them for fixing and merging.
type OnlineGame struct {
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	Year         int    `json:"year"`
	Type         string `json:"type"`
	IpdbURL      string `json:"ipdbUrl"`
	ImgURL       string `json:"imgUrl"`

	CreatedAt UnixTime `json:"createdAt"`
	UpdatedAt UnixTime `json:"updatedAt"`

	TableFiles     []File `json:"tableFiles"`
	B2SFiles       []File `json:"b2sFiles"`
	WheelArtFiles  []File `json:"wheelArtFiles"`
	RomFiles       []File `json:"romFiles"`
	MediaPackFiles []File `json:"mediaPackFiles"`
	AltColorFiles  []File `json:"altColorFiles"`
	SoundFiles     []File `json:"soundFiles"`
	TopperFiles    []File `json:"topperFiles"`
	PupPackFiles   []File `json:"pupPackFiles"`
	AltSoundFiles  []File `json:"altSoundFiles"`
	RuleFiles      []File `json:"ruleFiles"`
	PovFiles       []File `json:"povFiles"`

	// Derived, assigned after fixing and merging.
	Index       int          `json:"-"`
	Description string       `json:"-"`
	IsOriginal  bool         `json:"-"`
	Hit         *games.Game  `json:"-"`
	HitScore    int          `json:"-"`
}

// File is one downloadable artifact attached to an online game.
type File struct {
	Version   string      `json:"version"`
	ImgURL    string      `json:"imgUrl"`
	Urls      []URLDetail `json:"urls"`
	Authors   []string    `json:"authors"`
	CreatedAt UnixTime    `json:"createdAt"`
	UpdatedAt UnixTime    `json:"updatedAt"`
}

// URLDetail is a single download location; Broken marks links known dead.
type URLDetail struct {
	URL    string `json:"url"`
	Broken bool   `json:"broken"`
}

type fileGroup struct {
	Kind  string
	Files *[]File
}

// fileGroups returns mutable references to every per-content collection so
// callers can fix and merge them uniformly.
func (g *OnlineGame) fileGroups() []fileGroup {
	return []fileGroup{
		{"tables", &g.TableFiles},
		{"backglasses", &g.B2SFiles},
		{"wheels", &g.WheelArtFiles},
		{"roms", &g.RomFiles},
		{"media packs", &g.MediaPackFiles},
		{"alt colors", &g.AltColorFiles},
		{"sounds", &g.SoundFiles},
		{"toppers", &g.TopperFiles},
		{"pup packs", &g.PupPackFiles},
		{"alt sounds", &g.AltSoundFiles},
		{"rules", &g.RuleFiles},
		{"pov", &g.PovFiles},
	}
}

// AllFiles returns every file across every content collection.
func (g *OnlineGame) AllFiles() []File {
	var all []File
	for _, group := range g.fileGroups() {
		all = append(all, *group.Files...)
	}
	return all
}

// initDerived assigns the derived fields. Description carries the same
// "Name (Manufacturer Year)" shape the local database uses so both sides
// normalize identically.
func (g *OnlineGame) initDerived(index int) {
	g.Index = index
	g.Description = fmt.Sprintf("%s (%s %d)", g.Name, g.Manufacturer, g.Year)
	g.IsOriginal = fuzzy.IsOriginalManufacturer(g.Manufacturer)
}

// NameDetails exposes the online game to the matcher in the same
// "Name (Manufacturer Year)" shape local display names use, so the exact
// cascade steps can fire on identical entries.
func (g *OnlineGame) NameDetails(norm *fuzzy.Normalizer) fuzzy.NameDetails {
	return fuzzy.NameDetails{
		ActualName:   fmt.Sprintf("%s (%s %d)", norm.CleanName(g.Name), g.Manufacturer, g.Year),
		Manufacturer: g.Manufacturer,
		Year:         g.Year,
		IsOriginal:   g.IsOriginal,
	}
}
