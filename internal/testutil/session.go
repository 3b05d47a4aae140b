package testutil

// FixedSessionGenerator returns the same journal session ID every time.
//
// The same ingest run with the same FixedSessionGenerator produces
// byte-identical journal rows, which keeps golden output stable.
type FixedSessionGenerator struct {
	id string
}

// NewFixedSessionGenerator creates a fixed session generator.
// If id is empty, Generate returns "test-session-default".
func NewFixedSessionGenerator(id string) *FixedSessionGenerator {
	if id == "" {
		id = "test-session-default"
	}
	return &FixedSessionGenerator{id: id}
}

// Generate returns the fixed session ID.
func (g *FixedSessionGenerator) Generate() string {
	return g.id
}
