// Package catalog defines the closed vocabulary of signal kinds exchanged
// between simulation components.
//
// The catalog is a sorted, deduplicated table of names fixed at build time.
// It is produced by `dosio catalog gen` (see internal/catalogen) and emitted as
// kinds_gen.go; nothing in this package reads archives or mutates the table.
//
// A Kind is an index into that table. Kinds are only meaningful for the
// catalog they were generated with: persist names, not indices, and compare
// Fingerprint values when data crosses a process boundary.
package catalog
