package gotext

import "github.com/go-text/typesetting/font"

// Font is an immutable font handle: a family name, a point size and the
// parsed font shared by every layout that references it. The parsed
// font.Font is read-only, so handles are freely shareable; a handle is
// never rebuilt by a layout's width change.
type Font struct {
	family string
	size   float64
	font   *font.Font
}

// Family implements scribe.Font.
func (f *Font) Family() string { return f.family }

// Size implements scribe.Font.
func (f *Font) Size() float64 { return f.size }
