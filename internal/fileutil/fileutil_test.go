package fileutil

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "src.mp3", "launch audio payload")
	dst := filepath.Join(dir, "dst.mp3")

	if err := CopyFileVerified(src, dst); err != nil {
		t.Fatalf("CopyFileVerified: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if string(got) != "launch audio payload" {
		t.Errorf("dst contents = %q", got)
	}
}

func TestCopyFileVerifiedMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFileVerified(filepath.Join(dir, "absent"), filepath.Join(dir, "dst")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestListByPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Medieval Madness.mp3", "a")
	writeFile(t, dir, "Funhouse.WAV", "b")
	writeFile(t, dir, "notes.txt", "c")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := ListByPatterns(dir, []string{"*.mp3", "*.wav"})
	if err != nil {
		t.Fatalf("ListByPatterns: %v", err)
	}
	// pattern order is the preferred-extension order, so mp3 files come first
	want := []string{
		filepath.Join(dir, "Medieval Madness.mp3"),
		filepath.Join(dir, "Funhouse.WAV"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListByPatterns = %v, want %v", got, want)
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/media/audio/Apache!.mp3", "Apache!"},
		{"Funhouse.f4v", "Funhouse"},
		{"noext", "noext"},
	}
	for _, tt := range tests {
		if got := BaseName(tt.path); got != tt.want {
			t.Errorf("BaseName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
