package layout

import (
	"image/draw"

	"github.com/gogpu/scribe"
)

// Shaper binds a native shaping engine to the layout engine.
// Implementations live under backend/ and are the only code that talks
// to the underlying text stack.
type Shaper interface {
	// Paragraph shapes text with font into a reusable paragraph.
	// Shaping happens exactly once per (font, text) pair; re-wrapping a
	// layout at a new width reuses the paragraph.
	Paragraph(font scribe.Font, text string) (Paragraph, error)
}

// Paragraph is the shaped, width-independent representation of a text.
// Implementations must be immutable: a paragraph is shared between a
// layout and its clones and may be laid out repeatedly.
type Paragraph interface {
	// SuggestSize returns the tight frame size needed to lay the
	// paragraph out under the given constraints. The suggested width
	// never exceeds maxWidth; maxHeight is advisory and may be +Inf.
	// Laying out into a region of exactly the suggested size reproduces
	// the same line breaks (the engine relies on this).
	SuggestSize(maxWidth, maxHeight float64) scribe.Size

	// Layout breaks the paragraph into lines within a region of the
	// given size and returns the resulting frame.
	Layout(size scribe.Size) Frame
}

// Frame is the line-broken result of laying a paragraph into a region.
// A frame is immutable once returned.
type Frame interface {
	// Lines returns the frame's lines in text order.
	Lines() []Line

	// Origins returns one baseline origin per line, parallel to Lines,
	// in the native bottom-up coordinate system: y is the distance from
	// the bottom of the frame to the line's baseline.
	Origins() []scribe.Point

	// Draw paints the frame's glyphs onto dst with the frame's top-left
	// corner at the given position.
	Draw(dst draw.Image, at scribe.Point)
}

// Line is one laid-out line as reported by the native engine.
// Offsets are in UTF-16 code units of the source text; the layout engine
// converts them to UTF-8 byte offsets.
type Line struct {
	// Start is the offset of the line's first character.
	Start int

	// Bounds is the line's typographic bounds.
	Bounds TypographicBounds

	// Carets lists the line's character boundaries in ascending order,
	// from the line start to the line end inclusive. X positions are
	// relative to the line's left edge.
	Carets []Caret
}

// TypographicBounds is the ascent/descent/leading triple the shaper
// reports for a line. All components are non-negative.
type TypographicBounds struct {
	// Ascent is the extent above the baseline.
	Ascent float64

	// Descent is the extent below the baseline.
	Descent float64

	// Leading is the extra inter-line spacing below the descent.
	Leading float64
}

// Height returns the full line height: ascent + descent + leading.
func (b TypographicBounds) Height() float64 {
	return b.Ascent + b.Descent + b.Leading
}

// Caret marks an inter-glyph boundary on a line.
type Caret struct {
	// Offset is the boundary position in UTF-16 code units.
	Offset int

	// X is the boundary's horizontal position from the line start.
	X float64
}
