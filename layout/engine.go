package layout

import (
	"fmt"
	"image/draw"
	"math"
	"slices"

	"github.com/gogpu/scribe"
)

// Layout is the shared layout engine. It owns the source string, the
// shaped paragraph and a per-width cache: the current frame, the
// top-down baseline positions, the UTF-8 line start offsets and the
// per-line caret tables. The cache is always replaced as one unit, so
// readers observe either the previous consistent state or the next one,
// never a partial update.
//
// Layout implements scribe.TextLayout. It is not safe for concurrent
// mutation: UpdateWidth must not be interleaved with reads. Clone for
// shared access.
type Layout struct {
	text      string
	font      scribe.Font
	paragraph Paragraph
	subpixel  bool

	// Per-width cache. Replaced atomically by relayout.
	constraint  widthConstraint
	frame       Frame
	frameSize   scribe.Size
	lineY       []float64 // distance from frame top to each baseline
	lineOffsets []int     // UTF-8 byte offset of each line start
	lineCarets  [][]caret // per line: UTF-8 boundary offsets with x positions
}

// New shapes text with font and performs the mandatory initial layout
// pass at cfg.Width. The returned layout is fully usable: every cached
// field is populated even for empty text, which lays out as a single
// empty line.
func New(shaper Shaper, font scribe.Font, text string, cfg scribe.LayoutConfig) (*Layout, error) {
	para, err := shaper.Paragraph(font, text)
	if err != nil {
		return nil, fmt.Errorf("layout: shaping paragraph: %w", err)
	}
	l := &Layout{
		text:      text,
		font:      font,
		paragraph: para,
		subpixel:  cfg.SubpixelMetrics,
	}
	// constraint is widthUninitialized here, so this first pass never
	// hits the no-op path.
	if err := l.UpdateWidth(cfg.Width); err != nil {
		return nil, err
	}
	return l, nil
}

// Text returns the source text.
func (l *Layout) Text() string { return l.text }

// Font returns the font handle the layout was built with.
func (l *Layout) Font() scribe.Font { return l.font }

// Width returns the current frame width.
func (l *Layout) Width() float64 { return l.frameSize.Width }

// Size returns the bounding box of the frame at the current width.
func (l *Layout) Size() scribe.Size { return l.frameSize }

// ImageBounds returns the painted extent relative to the frame's
// top-left corner, approximated by the frame rectangle.
func (l *Layout) ImageBounds() scribe.Rect {
	return scribe.Rect{MaxX: l.frameSize.Width, MaxY: l.frameSize.Height}
}

// UpdateWidth re-wraps the layout at the new width constraint.
//
// Passing the currently cached width (bit for bit) is a guaranteed
// no-op: the shaper is not invoked at all, so callers may forward every
// resize event without cost concern. Negative or NaN widths are caller
// errors and return scribe.ErrInvalidWidth without touching the cache.
func (l *Layout) UpdateWidth(width float64) error {
	if math.IsNaN(width) || width < 0 {
		return fmt.Errorf("layout: width %v: %w", width, scribe.ErrInvalidWidth)
	}
	next := constraintFor(width)
	if l.constraint == next {
		return nil
	}
	l.relayout(next)
	return nil
}

// relayout performs one full layout pass: suggest a frame size for the
// constraint, lay the paragraph into a region of exactly that size, flip
// the native bottom-up origins to top-down baselines, and rebuild the
// UTF-8 offset caches. Every field is computed into locals first and the
// cache is swapped only when all of them exist.
func (l *Layout) relayout(next widthConstraint) {
	size := l.paragraph.SuggestSize(next.value(), math.Inf(1))
	frame := l.paragraph.Layout(size)

	lines := frame.Lines()
	origins := frame.Origins()
	lineY := make([]float64, len(origins))
	for i, origin := range origins {
		// Native origins are bottom-up; flip to distance from frame top.
		lineY[i] = size.Height - origin.Y
	}

	offsets, carets := mapFrameOffsets(l.text, lines)

	l.constraint = next
	l.frame = frame
	l.frameSize = size
	l.lineY = lineY
	l.lineOffsets = offsets
	l.lineCarets = carets

	scribe.Logger().Debug("layout: rewrapped",
		"width", next.value(),
		"lines", len(lineY),
		"frameWidth", size.Width,
		"frameHeight", size.Height)
}

// LineCount returns the number of lines in the current frame.
func (l *Layout) LineCount() int { return len(l.lineY) }

// lineRange returns the UTF-8 byte range of line i. Lines partition the
// source text: line i ends where line i+1 starts, and the last line runs
// to len(text).
func (l *Layout) lineRange(i int) (start, end int, ok bool) {
	if i < 0 || i >= l.LineCount() {
		return 0, 0, false
	}
	start = l.lineOffsets[i]
	end = len(l.text)
	if i+1 < l.LineCount() {
		end = l.lineOffsets[i+1]
	}
	return start, end, true
}

// LineText returns the exact UTF-8 substring of line i, or false when i
// is out of range.
func (l *Layout) LineText(i int) (string, bool) {
	start, end, ok := l.lineRange(i)
	if !ok {
		return "", false
	}
	return l.text[start:end], true
}

// LineMetric returns the typographic metrics of line i, or false when i
// is out of range.
func (l *Layout) LineMetric(i int) (scribe.LineMetric, bool) {
	start, end, ok := l.lineRange(i)
	if !ok {
		return scribe.LineMetric{}, false
	}
	bounds := l.frame.Lines()[i].Bounds
	cumulative := l.lineY[i] + bounds.Descent + bounds.Leading
	if !l.subpixel {
		cumulative = math.Ceil(cumulative)
	}
	return scribe.LineMetric{
		StartOffset:        start,
		EndOffset:          end,
		TrailingWhitespace: trailingWhitespace(l.text[start:end]),
		Baseline:           bounds.Ascent,
		Height:             bounds.Height(),
		CumulativeHeight:   cumulative,
	}, true
}

// trailingWhitespace counts trailing ASCII whitespace bytes: space, tab,
// CR, LF. Unicode whitespace is deliberately out of scope here; see
// scribe.LineMetric.TrailingWhitespace.
func trailingWhitespace(line string) int {
	n := 0
	for i := len(line) - 1; i >= 0; i-- {
		switch line[i] {
		case ' ', '\t', '\n', '\r':
			n++
		default:
			return n
		}
	}
	return n
}

// Draw paints the cached frame onto dst at the given position.
func (l *Layout) Draw(dst draw.Image, at scribe.Point) {
	l.frame.Draw(dst, at)
}

// Clone returns an independent layout sharing the immutable shaped
// paragraph and frame; the mutable caches are deep-copied, so
// UpdateWidth on the clone leaves the original untouched.
func (l *Layout) Clone() scribe.TextLayout {
	c := *l
	c.lineY = slices.Clone(l.lineY)
	c.lineOffsets = slices.Clone(l.lineOffsets)
	c.lineCarets = make([][]caret, len(l.lineCarets))
	for i := range l.lineCarets {
		c.lineCarets[i] = slices.Clone(l.lineCarets[i])
	}
	return &c
}
