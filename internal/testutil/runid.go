package testutil

// DefaultRunID is used by FixedRunGenerator when no ID is configured.
const DefaultRunID = "test-run-default"

// FixedRunGenerator returns the same run ID every time.
//
// Scenario files pin their run ID so that recorded traces are
// byte-identical between runs:
//
//	run_id: test-run-1
//
// Unlike engine.FixedGenerator, which hands out a sequence and panics when
// it runs dry, this generator never runs out.
//
// Thread-safety: FixedRunGenerator is stateless and safe for concurrent use.
type FixedRunGenerator struct {
	id string
}

// NewFixedRunGenerator returns a generator for id, or DefaultRunID if id is
// empty.
func NewFixedRunGenerator(id string) *FixedRunGenerator {
	if id == "" {
		id = DefaultRunID
	}
	return &FixedRunGenerator{id: id}
}

// Generate returns the fixed run ID. Implements engine.RunIDGenerator.
func (g *FixedRunGenerator) Generate() string {
	return g.id
}
