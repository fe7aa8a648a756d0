package postgres

import "github.com/oklog/ulid/v2"

// ULIDGenerator issues ULIDs for new records. ULIDs sort by creation
// time, which keeps the replay tie-break on id stable for entries
// created in the same instant.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate returns a fresh ULID string.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
