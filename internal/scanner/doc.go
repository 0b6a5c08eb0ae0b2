// Package scanner walks the configured media folders and classifies every
// file against the local table database: each file receives exactly one
// hit-type label, each game accumulates the hits claiming it, and files
// claiming no game surface as unknown or unsupported rather than being
// dropped.
package scanner
