package gotext

import "errors"

// Sentinel errors for the gotext backend.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("gotext: empty font data")
)
