package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered identifiers for watchlist entries.
// V7 UUIDs keep entries roughly sortable by creation time; on the unlikely
// failure of the V7 source it falls back to a random V4.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// IsWellFormedID reports whether s is a syntactically valid entry
// identifier. Malformed identifiers are rejected before any storage access.
func IsWellFormedID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
