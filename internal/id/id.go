package id

import (
	"strings"

	"github.com/google/uuid"
)

// shortLen is the number of leading hex characters shown in listings.
const shortLen = 8

// New returns a fresh random identifier like "3f2c9a1e-...".
func New() string {
	return uuid.NewString()
}

// Short returns the display prefix of an identifier.
// "3f2c9a1e-7b1d-4c1e-9f0a-2d4e5b6c7d8e" -> "3f2c9a1e"
func Short(id string) string {
	if len(id) <= shortLen {
		return id
	}
	return id[:shortLen]
}

// HasPrefix reports whether id starts with prefix, ignoring case.
// An empty prefix never matches.
func HasPrefix(id, prefix string) bool {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return false
	}
	return strings.HasPrefix(strings.ToLower(id), prefix)
}
