// Package fixer reconciles the scanned library with the table database:
// renaming near-miss files to their canonical names, deleting redundant
// duplicates, and merging importable files into missing slots. Every
// destructive action is preceded by a copy into a timestamped backup
// session, and a trainer-wheels mode walks the exact same decision path
// without touching the file system.
package fixer
