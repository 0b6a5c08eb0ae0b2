package games

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleMenu = `<?xml version="1.0"?>
<menu>
  <game name="MedievalMadness">
    <description>Medieval Madness (Williams 1997)</description>
    <rom>mm_109c</rom>
    <manufacturer>Williams</manufacturer>
    <year>1997</year>
    <type>SS</type>
    <ipdbid>4032</ipdbid>
  </game>
  <game name="CastleDefender">
    <description>Castle Defender (Original 2021)</description>
    <manufacturer>Original</manufacturer>
    <year>2021</year>
    <type>SS</type>
  </game>
</menu>
`

func TestLoadDatabase(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Visual Pinball.xml"), []byte(sampleMenu), 0o644); err != nil {
		t.Fatal(err)
	}

	games, err := LoadDatabase(dir)
	if err != nil {
		t.Fatalf("LoadDatabase: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}

	mm := games[0]
	if mm.TableFile != "MedievalMadness" {
		t.Errorf("table file = %q", mm.TableFile)
	}
	if mm.Derived.Number != 1 {
		t.Errorf("number = %d, want 1", mm.Derived.Number)
	}
	if mm.Derived.YearInt != 1997 {
		t.Errorf("year = %d, want 1997", mm.Derived.YearInt)
	}
	if mm.Derived.IpdbURL != "https://www.ipdb.org/machine.cgi?id=4032" {
		t.Errorf("ipdb url = %q", mm.Derived.IpdbURL)
	}
	if mm.Derived.IsOriginal {
		t.Error("Williams table flagged original")
	}

	cd := games[1]
	if !cd.Derived.IsOriginal {
		t.Error("Original table not flagged original")
	}
	if cd.Derived.IpdbURL != "" {
		t.Errorf("original table has ipdb url %q", cd.Derived.IpdbURL)
	}
	if cd.Derived.DescriptionLower != "castle defender (original 2021)" {
		t.Errorf("description lower = %q", cd.Derived.DescriptionLower)
	}
}

func TestLoadDatabaseMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	first := `<menu><game name="A"><description>A (Bally 1980)</description><manufacturer>Bally</manufacturer><year>1980</year></game></menu>`
	second := `<menu><game name="B"><description>B (Stern 1999)</description><manufacturer>Stern</manufacturer><year>1999</year></game></menu>`
	if err := os.WriteFile(filepath.Join(dir, "a.xml"), []byte(first), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.xml"), []byte(second), 0o644); err != nil {
		t.Fatal(err)
	}

	games, err := LoadDatabase(dir)
	if err != nil {
		t.Fatalf("LoadDatabase: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	if games[0].TableFile != "A" || games[1].TableFile != "B" {
		t.Errorf("unexpected order: %q, %q", games[0].TableFile, games[1].TableFile)
	}
	if games[1].Derived.Number != 2 {
		t.Errorf("second ordinal = %d", games[1].Derived.Number)
	}
}

func TestLoadDatabaseEmptyDir(t *testing.T) {
	if _, err := LoadDatabase(t.TempDir()); err == nil {
		t.Fatal("expected error for directory without databases")
	}
}

func TestInitDerivedMediaName(t *testing.T) {
	g := &Game{
		TableFile:    "ACDC_Stern_2012",
		Description:  "AC/DC (Stern 2012)",
		Manufacturer: "Stern",
		Year:         "2012",
	}
	g.InitDerived(1)
	if g.Derived.MediaName != "AC-DC (Stern 2012)" {
		t.Errorf("media name = %q, want path separators replaced", g.Derived.MediaName)
	}
	if g.Derived.MediaNameLower != "ac-dc (stern 2012)" {
		t.Errorf("media name lower = %q", g.Derived.MediaNameLower)
	}
}

func TestRenameRederives(t *testing.T) {
	g := &Game{
		TableFile:    "Apache",
		Description:  "Apache (Taito 1978)",
		Manufacturer: "Taito",
		Year:         "1978",
	}
	g.InitDerived(1)
	g.Rename("Apache! (Taito 1978)")
	if g.Derived.DescriptionLower != "apache! (taito 1978)" {
		t.Errorf("description lower not re-derived: %q", g.Derived.DescriptionLower)
	}
	if g.Derived.Number != 1 {
		t.Errorf("ordinal lost on rename: %d", g.Derived.Number)
	}
}
