// Package gotext is the go-text/typesetting shaping backend for scribe.
//
// It provides HarfBuzz-level text shaping:
//   - Ligature substitution (fi, fl, ffi, etc.)
//   - Kerning pairs (AV, To, etc.)
//   - Right-to-left base direction (Arabic, Hebrew)
//   - UAX #14 line break opportunities
//
// The package implements scribe.Text (a font registry plus a layout
// builder) and the layout.Shaper port consumed by the shared layout
// engine. Each hard-break segment of a text is shaped exactly once; a
// width change only re-runs the line fill over the cached advances.
package gotext
