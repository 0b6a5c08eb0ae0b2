package games

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type menu struct {
	XMLName xml.Name `xml:"menu"`
	Games   []Game   `xml:"game"`
}

// LoadDatabase reads every *.xml file in dir, decodes the front-end menu
// format, and returns the games in file order with ordinals assigned.
// Each game remembers which database file it came from so a rename fix
// can be written back to the right file.
func LoadDatabase(dir string) ([]*Game, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read database directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("no database files found in %s", dir)
	}

	var games []*Game
	for _, file := range files {
		loaded, err := loadFile(file)
		if err != nil {
			return nil, err
		}
		games = append(games, loaded...)
	}

	for i, game := range games {
		game.InitDerived(i + 1)
	}
	return games, nil
}

func loadFile(path string) ([]*Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read database file: %w", err)
	}

	var m menu
	if err := xml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	games := make([]*Game, 0, len(m.Games))
	for i := range m.Games {
		games = append(games, &m.Games[i])
	}
	return games, nil
}
