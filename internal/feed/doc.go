// Package feed fetches the online table metadata feed, repairs the known
// content problems in it, collapses duplicate entries, and reconciles the
// result against the local table database.
package feed
