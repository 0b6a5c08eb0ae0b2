// Package feedcache persists raw feed bodies in a local SQLite database so
// repeated runs within the freshness window avoid re-downloading the feed.
package feedcache
