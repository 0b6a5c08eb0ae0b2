package main

import (
	"os"
	"path/filepath"
	"testing"

	"pintidy/internal/testsupport"
)

func TestMergeCommandImportsMissingSlot(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteDatabase(t, env.cfg.Paths.DatabaseDir, "tables.xml", [][4]string{
		{"TOM_1995", "Theatre of Magic (Bally 1995)", "Bally", "1995"},
	})
	audio := env.cfg.ContentTypes[0]
	if err := os.MkdirAll(audio.Folder, 0o755); err != nil {
		t.Fatalf("mkdir content folder: %v", err)
	}

	source := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(source, "TOM_1995.mp3"))

	out, _, err := runCLI(t, []string{"merge", source}, env.configPath)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	requireContains(t, out, "1 merged")

	imported := filepath.Join(audio.Folder, "Theatre of Magic (Bally 1995).mp3")
	if _, err := os.Stat(imported); err != nil {
		t.Fatalf("expected imported file at %s: %v", imported, err)
	}
}

func TestMergeCommandRejectsMissingSource(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"merge", filepath.Join(t.TempDir(), "absent")}, env.configPath)
	if err == nil {
		t.Fatal("expected error for a nonexistent source directory")
	}
}
