package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates path with small placeholder contents, making parent
// directories as needed.
func WriteFile(t testing.TB, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(filepath.Base(path)), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteMedia populates a content folder with the named files.
func WriteMedia(t testing.TB, folder string, names ...string) {
	t.Helper()
	for _, name := range names {
		WriteFile(t, filepath.Join(folder, name))
	}
}

// WriteDatabase writes a table database XML file listing the given
// (tableFile, description, manufacturer, year) rows.
func WriteDatabase(t testing.TB, dir, fileName string, rows [][4]string) {
	t.Helper()
	doc := "<menu>\n"
	for _, row := range rows {
		doc += fmt.Sprintf(
			"  <game name=%q>\n    <description>%s</description>\n    <manufacturer>%s</manufacturer>\n    <year>%s</year>\n  </game>\n",
			row[0], row[1], row[2], row[3],
		)
	}
	doc += "</menu>\n"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte(doc), 0o644); err != nil {
		t.Fatalf("write database %s: %v", fileName, err)
	}
}
