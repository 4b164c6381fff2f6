package scribe

import "errors"

// Sentinel errors for the scribe API.
var (
	// ErrFontNotFound is returned when the font service cannot resolve a
	// family name, or when a resolution request is malformed.
	ErrFontNotFound = errors.New("scribe: font not found")

	// ErrInvalidWidth is returned when a width constraint is negative or
	// NaN. Such values are caller errors and are rejected at the API
	// boundary instead of reaching the shaper.
	ErrInvalidWidth = errors.New("scribe: invalid width constraint")
)
