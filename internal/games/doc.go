// Package games loads the local front-end XML table database and derives
// the per-game fields the matcher and scanner need: lowercased names, IPDB
// reference URL, original-vs-manufactured split, and ordinal position.
package games
