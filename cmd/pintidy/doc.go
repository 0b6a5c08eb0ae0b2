// Command pintidy is the CLI for curating a pinball front-end media
// library: it scans media folders against the table database, reconciles
// mismatched files with backed-up renames and deletes, imports files into
// missing slots, and cross-references the library against the online
// table feed.
package main
