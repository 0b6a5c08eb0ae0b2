package feed

import (
	_ "embed"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

//go:embed overrides.toml
var embeddedOverrides []byte

// Override corrects a single feed entry whose published metadata is known
// wrong. Match is compared against the entry's raw "Name (Manufacturer
// Year)" form before other fixes run; zero-valued fields are left alone.
type Override struct {
	Match        string `toml:"match"`
	Name         string `toml:"name"`
	Manufacturer string `toml:"manufacturer"`
	Year         int    `toml:"year"`
	IpdbURL      string `toml:"ipdb_url"`
}

type overrideFile struct {
	Overrides []Override `toml:"override"`
}

// LoadOverrides returns the built-in correction table.
func LoadOverrides() ([]Override, error) {
	var parsed overrideFile
	if err := toml.Unmarshal(embeddedOverrides, &parsed); err != nil {
		return nil, fmt.Errorf("parse overrides: %w", err)
	}
	return parsed.Overrides, nil
}

func applyOverride(game *OnlineGame, overrides []Override, stats *Statistics) {
	key := fmt.Sprintf("%s (%s %d)", game.Name, game.Manufacturer, game.Year)
	for _, override := range overrides {
		if override.Match != key {
			continue
		}
		if override.Name != "" {
			game.Name = override.Name
		}
		if override.Manufacturer != "" {
			game.Manufacturer = override.Manufacturer
		}
		if override.Year != 0 {
			game.Year = override.Year
		}
		if override.IpdbURL != "" {
			game.IpdbURL = override.IpdbURL
		}
		stats.Add(FixNamedGame)
		return
	}
}
