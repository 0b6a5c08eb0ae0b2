// Package textutil provides small text helpers shared across the scanner
// and fixer, primarily filename sanitation for rename targets.
package textutil
