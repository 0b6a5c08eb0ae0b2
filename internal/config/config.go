package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LibraryDir  string `toml:"library_dir"`
	DatabaseDir string `toml:"database_dir"`
	BackupDir   string `toml:"backup_dir"`
	LogDir      string `toml:"log_dir"`
}

// ContentType describes one curated media folder: where its files live,
// which extensions it tracks (in preferred priority order), and which
// companion extensions travel with a renamed file.
type ContentType struct {
	Name       string `toml:"name"`
	Folder     string `toml:"folder"`
	Extensions string `toml:"extensions"`
	Kindred    string `toml:"kindred"`
}

// ExtensionList splits the comma-separated pattern list, trimmed.
// Order is significant: the first pattern names the preferred extension.
func (c ContentType) ExtensionList() []string {
	return splitList(c.Extensions)
}

// KindredList splits the comma-separated kindred extension list, trimmed.
func (c ContentType) KindredList() []string {
	return splitList(c.Kindred)
}

// PrimaryExtension returns the first configured extension including its dot,
// e.g. ".mp3" for "*.mp3, *.wav". Empty when no extensions are configured.
func (c ContentType) PrimaryExtension() string {
	exts := c.ExtensionList()
	if len(exts) == 0 {
		return ""
	}
	return strings.TrimPrefix(exts[0], "*")
}

// AlternateExtensions returns every configured extension after the first,
// each including its dot.
func (c ContentType) AlternateExtensions() []string {
	exts := c.ExtensionList()
	if len(exts) < 2 {
		return nil
	}
	alts := make([]string, 0, len(exts)-1)
	for _, ext := range exts[1:] {
		alts = append(alts, strings.TrimPrefix(ext, "*"))
	}
	return alts
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Matching contains fuzzy matcher tunables.
type Matching struct {
	// FuzzyThreshold is the minimum integer score the fuzzy cascade step
	// accepts as a match.
	FuzzyThreshold int `toml:"fuzzy_threshold"`
	// AuthorTokens are stripped from table names as whole words before
	// comparison, e.g. "JP's Captain Fantastic" -> "Captain Fantastic".
	AuthorTokens []string `toml:"author_tokens"`
	// DecorationTokens are trailing edition/format markers stripped from
	// file names before comparison.
	DecorationTokens []string `toml:"decoration_tokens"`
}

// Fix contains reconciliation behaviour.
type Fix struct {
	// TrainerWheels logs and counts every decision without mutating files.
	TrainerWheels bool `toml:"trainer_wheels"`
	// HitTypes lists the hit types the fix pass is allowed to act on.
	HitTypes []string `toml:"hit_types"`
}

// Scan selects which content and hit types the scanner inspects.
type Scan struct {
	ContentTypes []string `toml:"content_types"`
	HitTypes     []string `toml:"hit_types"`
}

// Feed contains online database feed settings.
type Feed struct {
	URL              string `toml:"url"`
	TimeoutSeconds   int    `toml:"timeout_seconds"`
	MaxResponseBytes int64  `toml:"max_response_bytes"`
	CachePath        string `toml:"cache_path"`
	CacheTTLSeconds  int    `toml:"cache_ttl_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for pintidy.
type Config struct {
	Paths        Paths         `toml:"paths"`
	ContentTypes []ContentType `toml:"content_type"`
	Matching     Matching      `toml:"matching"`
	Fix          Fix           `toml:"fix"`
	Scan         Scan          `toml:"scan"`
	Feed         Feed          `toml:"feed"`
	Logging      Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/pintidy/config.toml")
}

// SampleConfig returns the annotated sample configuration file contents.
func SampleConfig() string {
	return sampleConfig
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and content type folders resolved
// against the library directory.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// ContentTypeByName returns the content type with the given name.
func (c *Config) ContentTypeByName(name string) (ContentType, bool) {
	for _, ct := range c.ContentTypes {
		if strings.EqualFold(ct.Name, name) {
			return ct, true
		}
	}
	return ContentType{}, false
}

// SelectedContentTypes returns the content types named by scan.content_types,
// or every configured content type when the selection is empty.
func (c *Config) SelectedContentTypes() []ContentType {
	if len(c.Scan.ContentTypes) == 0 {
		return c.ContentTypes
	}
	selected := make([]ContentType, 0, len(c.Scan.ContentTypes))
	for _, name := range c.Scan.ContentTypes {
		if ct, ok := c.ContentTypeByName(name); ok {
			selected = append(selected, ct)
		}
	}
	return selected
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.LibraryDir, err = ExpandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if c.Paths.DatabaseDir, err = ExpandPath(c.Paths.DatabaseDir); err != nil {
		return fmt.Errorf("paths.database_dir: %w", err)
	}
	if c.Paths.BackupDir, err = ExpandPath(c.Paths.BackupDir); err != nil {
		return fmt.Errorf("paths.backup_dir: %w", err)
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if !filepath.IsAbs(c.Paths.DatabaseDir) {
		c.Paths.DatabaseDir = filepath.Join(c.Paths.LibraryDir, c.Paths.DatabaseDir)
	}
	if !filepath.IsAbs(c.Paths.BackupDir) {
		c.Paths.BackupDir = filepath.Join(c.Paths.LibraryDir, c.Paths.BackupDir)
	}

	for i := range c.ContentTypes {
		ct := &c.ContentTypes[i]
		ct.Name = strings.TrimSpace(ct.Name)
		if ct.Folder, err = ExpandPath(ct.Folder); err != nil {
			return fmt.Errorf("content_type %q folder: %w", ct.Name, err)
		}
		if ct.Folder != "" && !filepath.IsAbs(ct.Folder) {
			ct.Folder = filepath.Join(c.Paths.LibraryDir, ct.Folder)
		}
	}

	if c.Feed.CachePath == "" {
		c.Feed.CachePath = filepath.Join(c.Paths.LogDir, "feedcache.db")
	} else if c.Feed.CachePath, err = ExpandPath(c.Feed.CachePath); err != nil {
		return fmt.Errorf("feed.cache_path: %w", err)
	}

	c.Logging.Format = strings.TrimSpace(c.Logging.Format)
	c.Logging.Level = strings.TrimSpace(c.Logging.Level)
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("pintidy.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// ExpandPath resolves a leading ~ against the user's home directory and
// trims surrounding whitespace. Empty input stays empty.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		return filepath.Join(home, trimmed[2:]), nil
	}
	return trimmed, nil
}
