// Package config loads, defaults, and validates the pintidy TOML
// configuration: library paths, per-content-type folders and extension
// lists, matching tunables, fix behaviour, and online feed settings.
package config
