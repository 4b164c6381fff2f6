package layout

import "github.com/gogpu/scribe"

// HitTestPoint maps a point to the nearest character boundary. The line
// is chosen by the point's y: the line whose [top, bottom) vertical band
// contains it, clamping to the first and last lines outside the frame.
// Within the line the nearest caret wins by horizontal distance; inside
// a glyph cell the glyph's midpoint decides, breaking toward the
// boundary before the glyph when the point is left of the midpoint and
// after it otherwise.
//
// HitTestPoint is total over any finite point.
func (l *Layout) HitTestPoint(p scribe.Point) scribe.HitTestPoint {
	if l.LineCount() == 0 {
		return scribe.HitTestPoint{}
	}
	line := l.lineForY(p.Y)
	carets := l.lineCarets[line]
	if len(carets) == 0 {
		return scribe.HitTestPoint{Offset: l.lineOffsets[line]}
	}
	offset, onLine := nearestCaret(carets, p.X)
	inside := onLine && p.Y >= 0 && p.Y <= l.frameSize.Height
	return scribe.HitTestPoint{Offset: offset, IsInside: inside}
}

// HitTestTextPosition locates the line containing the UTF-8 byte offset
// and returns the position of that character's leading edge, the line
// index and the line's full height. Offsets outside [0, len(text)] are
// clamped. It returns false only for a layout with no lines, which a
// conforming shaper never produces.
func (l *Layout) HitTestTextPosition(offset int) (scribe.HitTestTextPosition, bool) {
	if l.LineCount() == 0 {
		return scribe.HitTestTextPosition{}, false
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(l.text) {
		offset = len(l.text)
	}
	line := l.lineForOffset(offset)
	bounds := l.frame.Lines()[line].Bounds
	return scribe.HitTestTextPosition{
		Point:  scribe.Point{X: l.caretX(line, offset), Y: l.lineY[line]},
		Line:   line,
		Height: bounds.Height(),
	}, true
}

// lineForY returns the index of the line whose vertical band contains y.
// Bands stack from the frame top: line i's band ends at the bottom of
// its visual extent. Out-of-frame coordinates clamp to the first or last
// line.
func (l *Layout) lineForY(y float64) int {
	if y < 0 {
		return 0
	}
	for i := range l.lineY {
		bounds := l.frame.Lines()[i].Bounds
		bottom := l.lineY[i] + bounds.Descent + bounds.Leading
		if y < bottom {
			return i
		}
	}
	return len(l.lineY) - 1
}

// lineForOffset returns the last line whose start offset is <= offset,
// so an offset on a line boundary belongs to the line it starts.
func (l *Layout) lineForOffset(offset int) int {
	line := 0
	for i, start := range l.lineOffsets {
		if start > offset {
			break
		}
		line = i
	}
	return line
}

// caretX returns the x position of the boundary at offset on the given
// line. When the offset falls between caret entries (inside a cluster
// the shaper treats as indivisible), the boundary before it is used.
func (l *Layout) caretX(line, offset int) float64 {
	carets := l.lineCarets[line]
	if len(carets) == 0 {
		return 0
	}
	x := carets[0].x
	for _, c := range carets {
		if c.offset > offset {
			break
		}
		x = c.x
	}
	return x
}

// nearestCaret picks the caret nearest to x. The second result reports
// whether x fell within the line's horizontal extent; outside it the
// first or last caret is returned as the clamped answer.
func nearestCaret(carets []caret, x float64) (offset int, onLine bool) {
	first := carets[0]
	last := carets[len(carets)-1]
	if x < first.x {
		return first.offset, false
	}
	if x > last.x {
		return last.offset, false
	}
	for j := 0; j+1 < len(carets); j++ {
		before, after := carets[j], carets[j+1]
		if x <= after.x {
			if x < (before.x+after.x)/2 {
				return before.offset, true
			}
			return after.offset, true
		}
	}
	return last.offset, true
}
