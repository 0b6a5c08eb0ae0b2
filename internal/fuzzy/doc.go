// Package fuzzy parses raw table names into canonical name details and
// matches them against canonical game records using a prioritized cascade:
// exact, case-insensitive, table-file-name, then scored fuzzy comparison.
//
// The package is pure: it never mutates candidates, and "no match" is a
// normal outcome, not an error. Claimed-match bookkeeping belongs to the
// caller.
package fuzzy
