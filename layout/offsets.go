package layout

import (
	"fmt"
	"unicode/utf8"
)

// offsetMapper translates UTF-16 code-unit offsets, the granularity
// native shaping engines break lines at, into UTF-8 byte offsets into
// the source text.
//
// Targets must be non-decreasing between calls: the mapper shares one
// forward scan across all of them, consuming only the characters needed
// to reach each target, so a full frame rebuild is O(len(text))
// regardless of how many lines or carets it maps.
type offsetMapper struct {
	text string
	pos  int // UTF-8 bytes consumed so far
	u16  int // UTF-16 code units consumed so far
}

func newOffsetMapper(text string) *offsetMapper {
	return &offsetMapper{text: text}
}

// utf8Offset returns the UTF-8 byte offset at which the running UTF-16
// count first equals target. A target of exactly 0 maps to byte 0
// without scanning, keeping "the first line starts at byte 0" independent
// of the scan.
//
// A target that never matches an accumulated boundary would mean the
// shaping adapter reported an offset inside a surrogate pair, which
// cannot come from a valid line break. That is an internal-consistency
// defect: continuing would silently corrupt line indexing for every
// downstream consumer, so utf8Offset panics instead.
func (m *offsetMapper) utf8Offset(target int) int {
	if target == 0 {
		return 0
	}
	for m.u16 < target {
		r, size := utf8.DecodeRuneInString(m.text[m.pos:])
		if size == 0 {
			panic(fmt.Sprintf("layout: UTF-16 offset %d is beyond the end of the text", target))
		}
		m.u16 += utf16Len(r)
		m.pos += size
	}
	if m.u16 != target {
		panic(fmt.Sprintf("layout: UTF-16 offset %d splits a surrogate pair", target))
	}
	return m.pos
}

// utf16Len returns the number of UTF-16 code units encoding r.
// Invalid runes decode as utf8.RuneError, which is a BMP code point.
func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}

// caret is a layout.Caret with its offset mapped to UTF-8 bytes.
type caret struct {
	offset int
	x      float64
}

// mapFrameOffsets converts the frame's UTF-16 line starts and caret
// tables to UTF-8 byte offsets in one shared forward scan. The shaper
// contract guarantees line starts ascend and carets ascend within each
// line, so the combined target sequence is non-decreasing.
func mapFrameOffsets(text string, lines []Line) (offsets []int, carets [][]caret) {
	m := newOffsetMapper(text)
	offsets = make([]int, len(lines))
	carets = make([][]caret, len(lines))
	for i, line := range lines {
		offsets[i] = m.utf8Offset(line.Start)
		cs := make([]caret, len(line.Carets))
		for j, c := range line.Carets {
			cs[j] = caret{offset: m.utf8Offset(c.Offset), x: c.X}
		}
		carets[i] = cs
	}
	return offsets, carets
}
