package scribe

import (
	"image/draw"
	"math"
)

// Unconstrained is the width constraint of a layout that never wraps.
// Passing it to [TextLayout.UpdateWidth] (or omitting [WithWidth]) lays
// every paragraph out on a single line per hard break.
var Unconstrained = math.Inf(1)

// Font is an opaque, immutable handle to a shaped font resource: a family
// and a point size resolved against a backend's font service. A Font is
// built once and shared by every layout that references it; it carries no
// style or weight variants at this layer.
type Font interface {
	// Family returns the resolved family name.
	Family() string

	// Size returns the point size the handle was resolved at.
	Size() float64
}

// Text is the entry point a backend exposes: a font service plus a layout
// builder. It mirrors the text side of a render context in a 2D drawing
// API; the painting side consumes the layouts this produces.
type Text interface {
	// ResolveFont resolves a family name at a point size.
	// It returns an error wrapping [ErrFontNotFound] when the backend's
	// font service cannot resolve the request.
	ResolveFont(family string, size float64) (Font, error)

	// NewLayout shapes text with font and performs the initial layout
	// pass. The width constraint defaults to [Unconstrained]; pass
	// [WithWidth] to wrap. Construction cannot fail for valid UTF-8 text
	// and a font resolved by the same backend.
	NewLayout(font Font, text string, opts ...LayoutOption) (TextLayout, error)
}

// TextLayout is a line-broken text layout. It owns the source string, the
// shaped paragraph and the per-width caches; all reads are served from
// cache and never trigger shaping.
//
// A TextLayout is not safe for concurrent mutation: UpdateWidth is the
// only mutating operation and must not be interleaved with reads. Callers
// that need shared access should Clone.
type TextLayout interface {
	// Width returns the current frame width.
	Width() float64

	// Size returns the bounding box of the laid-out frame at the current
	// width constraint.
	Size() Size

	// ImageBounds returns the bounding box of the painted text relative
	// to the frame's top-left corner.
	ImageBounds() Rect

	// UpdateWidth re-wraps the layout at a new width constraint,
	// normalizing [Unconstrained] to "no wrapping". Passing the currently
	// cached width (bit for bit) is a guaranteed no-op that skips shaping
	// entirely, so callers may forward every resize event without cost
	// concern. Negative or NaN widths return [ErrInvalidWidth].
	UpdateWidth(width float64) error

	// LineCount returns the number of lines in the current frame.
	LineCount() int

	// LineText returns the exact UTF-8 substring of line i. Lines
	// partition the source text with no gaps or overlaps; the reported
	// second value is false when i is out of range, which is a normal
	// probe and not an error.
	LineText(i int) (string, bool)

	// LineMetric returns the typographic metrics of line i, or false
	// when i is out of range.
	LineMetric(i int) (LineMetric, bool)

	// HitTestPoint maps a point to the nearest character boundary. It is
	// total over any finite point: coordinates outside the frame clamp
	// to the nearest line and boundary.
	HitTestPoint(p Point) HitTestPoint

	// HitTestTextPosition is the inverse of HitTestPoint: it locates the
	// line containing the UTF-8 byte offset and returns the position of
	// that character's leading edge. Offsets outside [0, len(text)] are
	// clamped. The second value is false only for a layout with no lines.
	HitTestTextPosition(offset int) (HitTestTextPosition, bool)

	// Draw paints the cached frame's glyphs onto dst with the frame's
	// top-left corner at the given position. Color and compositing policy
	// belong to the caller; Draw composites an opaque glyph mask.
	Draw(dst draw.Image, at Point)

	// Clone returns an independent layout over the same text and font.
	// The immutable shaped paragraph is shared; the mutable per-width
	// caches are deep-copied, so UpdateWidth on the clone leaves the
	// original untouched.
	Clone() TextLayout
}

// LineMetric describes one line of a laid-out frame. All offsets are
// UTF-8 byte offsets into the source text.
type LineMetric struct {
	// StartOffset is the line's first byte. It is 0 for line 0, always.
	StartOffset int

	// EndOffset is the byte offset one past the line's last byte,
	// including any trailing whitespace and line terminator. The last
	// line ends at len(text).
	EndOffset int

	// TrailingWhitespace counts the trailing bytes of the line that are
	// space, tab, CR or LF. The definition is deliberately ASCII-only;
	// Unicode whitespace is not considered.
	TrailingWhitespace int

	// Baseline is the distance from the top of the line to its baseline,
	// i.e. the line's ascent.
	Baseline float64

	// Height is ascent + descent + leading for the line.
	Height float64

	// CumulativeHeight is the distance from the top of the frame to the
	// bottom of this line's visual extent. By default it is rounded up
	// to the next whole unit for pixel-stable scroll and selection math;
	// see [WithSubpixelMetrics]. For the last line it equals the frame's
	// total height.
	CumulativeHeight float64
}

// HitTestPoint is the result of mapping a point to a text position.
type HitTestPoint struct {
	// Offset is the UTF-8 byte offset of the nearest character boundary.
	Offset int

	// IsInside reports whether the point fell within the laid-out text
	// extents rather than being clamped to them.
	IsInside bool
}

// HitTestTextPosition is the result of mapping a text position to a point.
type HitTestTextPosition struct {
	// Point is the position of the character's leading edge: x from the
	// line start, y at the line's baseline.
	Point Point

	// Line is the index of the line containing the offset.
	Line int

	// Height is the full height (ascent + descent + leading) of that line.
	Height float64
}
