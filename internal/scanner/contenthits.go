package scanner

import (
	"fmt"
	"path/filepath"
	"strings"

	"pintidy/internal/config"
)

// ContentHits collects the hits one game accumulated for one content type.
// At most one hit is HitValid; later exact matches become duplicate
// extensions, so extension listing order decides which file wins.
type ContentHits struct {
	ContentType config.ContentType
	Hits        []*Hit

	checkTypes HitTypeSet
}

// NewContentHits builds an empty collection. checkTypes filters which
// non-valid hit types are recorded; valid hits are always kept.
func NewContentHits(contentType config.ContentType, checkTypes HitTypeSet) *ContentHits {
	return &ContentHits{ContentType: contentType, checkTypes: checkTypes}
}

// Add records a hit. For HitMissing, path is the game's on-disk media
// name and the stored path is synthesized from the content type's folder
// and preferred extension, with alternates listed parenthetically.
func (c *ContentHits) Add(hitType HitType, path string, size int64) {
	if hitType == HitMissing {
		path = c.missingPath(path)
		size = 0
	}

	if hitType != HitValid && !c.checkTypes.Contains(hitType) {
		return
	}
	c.Hits = append(c.Hits, &Hit{
		ContentType: c.ContentType.Name,
		Type:        hitType,
		Path:        path,
		Size:        size,
	})
}

// HasAny reports whether any hit of the given types is present.
func (c *ContentHits) HasAny(types ...HitType) bool {
	return c.First(types...) != nil
}

// First returns the first hit matching any of the given types, respecting
// insertion order within the collection.
func (c *ContentHits) First(types ...HitType) *Hit {
	for _, hitType := range types {
		for _, hit := range c.Hits {
			if hit.Type == hitType {
				return hit
			}
		}
	}
	return nil
}

// IsClean reports whether every hit is valid.
func (c *ContentHits) IsClean() bool {
	for _, hit := range c.Hits {
		if hit.Type != HitValid {
			return false
		}
	}
	return true
}

func (c *ContentHits) missingPath(mediaName string) string {
	path := filepath.Join(c.ContentType.Folder, mediaName+c.ContentType.PrimaryExtension())
	if alternates := c.ContentType.AlternateExtensions(); len(alternates) > 0 {
		path += fmt.Sprintf(" (or %s)", strings.Join(alternates, ", "))
	}
	return path
}
