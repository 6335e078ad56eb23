// Package store provides SQLite-backed storage for recorded simulation runs.
//
// A run is one execution of a pipeline. Every completed tick appends one
// sample per signal each stage produced:
//
//   - runs: run header (scenario, catalog fingerprint, status, tick count)
//   - samples: (run, tick, stage, kind) -> payload
//
// Kinds are stored by catalog name, not by index, and every run records the
// fingerprint of the catalog it ran against. Reading a run recorded with a
// different catalog still works as long as its kinds resolve; a kind that no
// longer exists is reported as ErrCatalogMismatch.
//
// # Ordering
//
// All queries order samples by tick ASC, id ASC, so a trace reads back in
// the order it was produced.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
