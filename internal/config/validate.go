package config

import (
	"errors"
	"fmt"
	"strings"
)

// knownHitTypes mirrors the scanner taxonomy; kept as strings here so the
// config package stays a leaf dependency. Names are compared ignoring
// case and separators, matching the scanner's parser.
var knownHitTypes = map[string]struct{}{
	"valid":              {},
	"wrongcase":          {},
	"tablename":          {},
	"fuzzy":              {},
	"duplicateextension": {},
	"missing":            {},
	"unknown":            {},
	"unsupported":        {},
}

func foldHitTypeName(name string) string {
	folded := strings.ToLower(name)
	for _, sep := range []string{" ", "-", "_"} {
		folded = strings.ReplaceAll(folded, sep, "")
	}
	return folded
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateContentTypes(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateHitTypes(); err != nil {
		return err
	}
	if err := c.validateFeed(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.LibraryDir == "" {
		return errors.New("paths.library_dir must be set")
	}
	if c.Paths.BackupDir == "" {
		return errors.New("paths.backup_dir must be set")
	}
	return nil
}

func (c *Config) validateContentTypes() error {
	if len(c.ContentTypes) == 0 {
		return errors.New("at least one [[content_type]] must be configured")
	}
	seen := make(map[string]struct{}, len(c.ContentTypes))
	for _, ct := range c.ContentTypes {
		if ct.Name == "" {
			return errors.New("content_type.name must be set")
		}
		key := strings.ToLower(ct.Name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("content_type %q configured twice", ct.Name)
		}
		seen[key] = struct{}{}
		if ct.Folder == "" {
			return fmt.Errorf("content_type %q: folder must be set", ct.Name)
		}
		if len(ct.ExtensionList()) == 0 {
			return fmt.Errorf("content_type %q: extensions must list at least one pattern", ct.Name)
		}
		for _, ext := range ct.ExtensionList() {
			if !strings.HasPrefix(ext, "*.") {
				return fmt.Errorf("content_type %q: extension pattern %q must look like *.ext", ct.Name, ext)
			}
		}
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.FuzzyThreshold <= 0 {
		return errors.New("matching.fuzzy_threshold must be positive")
	}
	return nil
}

func (c *Config) validateHitTypes() error {
	for _, name := range c.Fix.HitTypes {
		if _, ok := knownHitTypes[foldHitTypeName(name)]; !ok {
			return fmt.Errorf("fix.hit_types: unknown hit type %q", name)
		}
	}
	for _, name := range c.Scan.HitTypes {
		if _, ok := knownHitTypes[foldHitTypeName(name)]; !ok {
			return fmt.Errorf("scan.hit_types: unknown hit type %q", name)
		}
	}
	return nil
}

func (c *Config) validateFeed() error {
	if c.Feed.URL == "" {
		return errors.New("feed.url must be set")
	}
	if !strings.HasPrefix(c.Feed.URL, "http://") && !strings.HasPrefix(c.Feed.URL, "https://") {
		return fmt.Errorf("feed.url must be an http(s) url, got %q", c.Feed.URL)
	}
	if c.Feed.TimeoutSeconds <= 0 {
		return errors.New("feed.timeout_seconds must be positive")
	}
	if c.Feed.MaxResponseBytes <= 0 {
		return errors.New("feed.max_response_bytes must be positive")
	}
	return nil
}
