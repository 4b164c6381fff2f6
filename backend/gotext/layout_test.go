package gotext

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/gogpu/scribe"
)

func newTestLayout(t *testing.T, text string, opts ...scribe.LayoutOption) scribe.TextLayout {
	t.Helper()
	e := newTestEngine(t)
	l, err := e.NewLayout(testFont(t, e, 16), text, opts...)
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	return l
}

// measureWidth returns the unconstrained width of text at 16pt.
func measureWidth(t *testing.T, text string) float64 {
	t.Helper()
	return newTestLayout(t, text).Size().Width
}

func TestHardBreaksKeepNewlines(t *testing.T) {
	l := newTestLayout(t, "hi\ni'm\n\U0001F600 four\nlines")

	want := []string{"hi\n", "i'm\n", "\U0001F600 four\n", "lines"}
	if l.LineCount() != len(want) {
		t.Fatalf("LineCount() = %d, want %d", l.LineCount(), len(want))
	}
	for i, w := range want {
		got, ok := l.LineText(i)
		if !ok || got != w {
			t.Errorf("LineText(%d) = %q, %v, want %q", i, got, ok, w)
		}
	}
}

func TestLineMetrics(t *testing.T) {
	l := newTestLayout(t, "\U0001F921:\na string\nwith a number \n of lines")

	want := []struct {
		start, end, trailing int
	}{
		{0, 6, 1},
		{6, 15, 1},
		{15, 30, 2},
		{30, 39, 0},
	}
	if l.LineCount() != len(want) {
		t.Fatalf("LineCount() = %d, want %d", l.LineCount(), len(want))
	}

	prev := 0.0
	for i, w := range want {
		m, ok := l.LineMetric(i)
		if !ok {
			t.Fatalf("LineMetric(%d) out of range", i)
		}
		if m.StartOffset != w.start || m.EndOffset != w.end {
			t.Errorf("line %d range [%d, %d), want [%d, %d)", i, m.StartOffset, m.EndOffset, w.start, w.end)
		}
		if m.TrailingWhitespace != w.trailing {
			t.Errorf("line %d trailing whitespace = %d, want %d", i, m.TrailingWhitespace, w.trailing)
		}
		if m.Baseline <= 0 || m.Height <= m.Baseline {
			t.Errorf("line %d implausible vertical metrics: baseline %v, height %v", i, m.Baseline, m.Height)
		}
		if m.CumulativeHeight <= prev {
			t.Errorf("line %d cumulative height %v not above previous %v", i, m.CumulativeHeight, prev)
		}
		prev = m.CumulativeHeight
	}

	if _, ok := l.LineMetric(len(want)); ok {
		t.Error("LineMetric past the last line reported ok")
	}
	last, _ := l.LineMetric(len(want) - 1)
	if last.CumulativeHeight != l.Size().Height {
		t.Errorf("last cumulative height %v, frame height %v", last.CumulativeHeight, l.Size().Height)
	}
}

func TestEmptyText(t *testing.T) {
	l := newTestLayout(t, "")
	if l.LineCount() != 1 {
		t.Fatalf("LineCount() = %d, want 1", l.LineCount())
	}
	if got, ok := l.LineText(0); !ok || got != "" {
		t.Errorf("LineText(0) = %q, %v", got, ok)
	}
	if l.Size().Width != 0 {
		t.Errorf("Size().Width = %v, want 0", l.Size().Width)
	}
	m, _ := l.LineMetric(0)
	if m.CumulativeHeight != l.Size().Height {
		t.Errorf("cumulative height %v, frame height %v", m.CumulativeHeight, l.Size().Height)
	}
}

func TestTrailingNewlineAddsEmptyLine(t *testing.T) {
	l := newTestLayout(t, "a\n")
	if l.LineCount() != 2 {
		t.Fatalf("LineCount() = %d, want 2", l.LineCount())
	}
	first, _ := l.LineText(0)
	second, _ := l.LineText(1)
	if first != "a\n" || second != "" {
		t.Errorf("lines = %q, %q, want \"a\\n\", \"\"", first, second)
	}
}

func TestWrapPartitionsText(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	l := newTestLayout(t, text, scribe.WithWidth(80))

	if l.LineCount() < 2 {
		t.Fatalf("LineCount() = %d, expected wrapping at width 80", l.LineCount())
	}
	if l.Size().Width > 80 {
		t.Errorf("Size().Width = %v exceeds the constraint", l.Size().Width)
	}

	var joined strings.Builder
	for i := 0; i < l.LineCount(); i++ {
		line, ok := l.LineText(i)
		if !ok {
			t.Fatalf("LineText(%d) out of range", i)
		}
		joined.WriteString(line)
	}
	if joined.String() != text {
		t.Errorf("lines concatenate to %q", joined.String())
	}

	for i := 0; i+1 < l.LineCount(); i++ {
		m, _ := l.LineMetric(i)
		next, _ := l.LineMetric(i + 1)
		if m.EndOffset != next.StartOffset {
			t.Errorf("line %d ends at %d but line %d starts at %d", i, m.EndOffset, i+1, next.StartOffset)
		}
	}
}

func TestWrapBreaksAfterTrailingSpace(t *testing.T) {
	// Wide enough for "aa" plus its trailing space (which does not count
	// against the margin), but not for both words.
	width := measureWidth(t, "aa") + 2
	l := newTestLayout(t, "aa bb", scribe.WithWidth(width))

	if l.LineCount() != 2 {
		t.Fatalf("LineCount() = %d, want 2", l.LineCount())
	}
	first, _ := l.LineText(0)
	if first != "aa " {
		t.Errorf("LineText(0) = %q, want \"aa \"", first)
	}
	m, _ := l.LineMetric(0)
	if m.TrailingWhitespace != 1 {
		t.Errorf("TrailingWhitespace = %d, want 1", m.TrailingWhitespace)
	}
}

func TestLongWordOverflows(t *testing.T) {
	// No break opportunity fits, so the word takes one overflowing line
	// and the frame stays clamped to the constraint.
	l := newTestLayout(t, "abcdefghij", scribe.WithWidth(10))
	if l.LineCount() != 1 {
		t.Errorf("LineCount() = %d, want 1", l.LineCount())
	}
	if l.Size().Width != 10 {
		t.Errorf("Size().Width = %v, want 10", l.Size().Width)
	}
}

func TestUpdateWidthRoundTrip(t *testing.T) {
	l := newTestLayout(t, "the quick brown fox jumps over the lazy dog", scribe.WithWidth(100))
	size := l.Size()
	count := l.LineCount()

	if err := l.UpdateWidth(scribe.Unconstrained); err != nil {
		t.Fatalf("UpdateWidth(Unconstrained): %v", err)
	}
	if l.LineCount() != 1 {
		t.Fatalf("unconstrained LineCount() = %d, want 1", l.LineCount())
	}
	if err := l.UpdateWidth(100); err != nil {
		t.Fatalf("UpdateWidth(100): %v", err)
	}

	if l.Size() != size || l.LineCount() != count {
		t.Errorf("round trip changed the layout: %v/%d lines, want %v/%d",
			l.Size(), l.LineCount(), size, count)
	}
}

func TestUpdateWidthInvalid(t *testing.T) {
	l := newTestLayout(t, "hello")
	if err := l.UpdateWidth(-1); !errors.Is(err, scribe.ErrInvalidWidth) {
		t.Errorf("UpdateWidth(-1) = %v, want ErrInvalidWidth", err)
	}
}

func TestCloneWrapsIndependently(t *testing.T) {
	l := newTestLayout(t, "the quick brown fox")
	size := l.Size()

	clone := l.Clone()
	if err := clone.UpdateWidth(50); err != nil {
		t.Fatalf("clone.UpdateWidth: %v", err)
	}

	if clone.LineCount() <= l.LineCount() {
		t.Errorf("clone did not wrap: %d lines vs %d", clone.LineCount(), l.LineCount())
	}
	if l.Size() != size {
		t.Errorf("original Size() changed to %v", l.Size())
	}
}

func TestHitTestRoundTrip(t *testing.T) {
	l := newTestLayout(t, "hello world")
	for _, offset := range []int{0, 1, 5, 6, 11} {
		pos, ok := l.HitTestTextPosition(offset)
		if !ok {
			t.Fatalf("HitTestTextPosition(%d) not ok", offset)
		}
		hit := l.HitTestPoint(pos.Point)
		if hit.Offset != offset {
			t.Errorf("round trip at offset %d returned %d", offset, hit.Offset)
		}
		if !hit.IsInside {
			t.Errorf("offset %d position reported outside the text", offset)
		}
	}
}

func TestHitTestPointOutside(t *testing.T) {
	l := newTestLayout(t, "hello")

	left := l.HitTestPoint(scribe.Point{X: -10, Y: 5})
	if left.Offset != 0 || left.IsInside {
		t.Errorf("left of text = {%d, %v}, want {0, false}", left.Offset, left.IsInside)
	}

	right := l.HitTestPoint(scribe.Point{X: 1e6, Y: 5})
	if right.Offset != len("hello") || right.IsInside {
		t.Errorf("right of text = {%d, %v}, want {5, false}", right.Offset, right.IsInside)
	}

	below := l.HitTestPoint(scribe.Point{X: 0, Y: 1e6})
	if below.IsInside {
		t.Error("point far below the frame reported inside")
	}
}

func TestDrawPaintsGlyphs(t *testing.T) {
	l := newTestLayout(t, "Hi")
	dst := image.NewRGBA(image.Rect(0, 0, 100, 40))
	l.Draw(dst, scribe.Point{X: 2, Y: 2})

	painted := 0
	for i := 3; i < len(dst.Pix); i += 4 {
		if dst.Pix[i] != 0 {
			painted++
		}
	}
	if painted == 0 {
		t.Error("Draw left the image untouched")
	}
}

func TestDrawPaintsCurvedOutlines(t *testing.T) {
	// "Oo" is built from curve segments, so this walks the quadratic and
	// cubic outline ops, not just lines.
	l := newTestLayout(t, "Oo")
	dst := image.NewRGBA(image.Rect(0, 0, 100, 40))
	l.Draw(dst, scribe.Point{X: 2, Y: 2})

	painted := 0
	for i := 3; i < len(dst.Pix); i += 4 {
		if dst.Pix[i] != 0 {
			painted++
		}
	}
	if painted == 0 {
		t.Error("Draw left the image untouched")
	}
}

func TestDrawEmptyTextIsNoop(t *testing.T) {
	l := newTestLayout(t, "")
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	l.Draw(dst, scribe.Point{})
	for i := 3; i < len(dst.Pix); i += 4 {
		if dst.Pix[i] != 0 {
			t.Fatal("empty layout painted pixels")
		}
	}
}
