package gotext

import (
	"math"
	"strings"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/segmenter"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/scribe"
	"github.com/gogpu/scribe/layout"
)

// glyphPos is one shaped glyph positioned within its unit, in device
// units relative to the unit's start and its baseline.
type glyphPos struct {
	gid     font.GID
	cluster int // rune index within the unit
	x, y    float64
}

// unit is one hard-break segment of the source text, shaped once. Its
// tables are indexed by rune: u16 and xAfter have len(runes)+1 entries
// covering every boundary, breaks lists the soft wrap opportunities.
type unit struct {
	runes   []rune // without the trailing newline
	start8  int    // UTF-8 byte offset of the unit start in the text
	start16 int    // UTF-16 code unit offset of the unit start
	newline bool   // the unit is terminated by '\n' in the source

	u16    []int     // UTF-16 length of runes[:i]
	xAfter []float64 // advance width of runes[:i]
	breaks []int     // ascending break rune indices, last == len(runes)
	glyphs []glyphPos
}

// paragraph is the width-independent shaped form of a text. It
// implements layout.Paragraph: SuggestSize and Layout re-run only the
// line fill over the cached advances. paragraph is immutable after
// shaping and safe to share between a layout and its clones.
type paragraph struct {
	font   *Font
	text   string
	units  []unit
	bounds layout.TypographicBounds
	scale  float64 // device units per font unit, for outlines
}

// shapeParagraph splits text at hard breaks and shapes every segment.
func (e *Engine) shapeParagraph(f *Font, text string) *paragraph {
	hb := e.shaperPool.Get().(*shaping.HarfbuzzShaper)
	defer e.shaperPool.Put(hb)

	face := font.NewFace(f.font)
	p := &paragraph{
		font:   f,
		text:   text,
		bounds: lineBounds(hb, face, f.size),
		scale:  f.size / float64(face.Upem()),
	}

	segments := strings.Split(text, "\n")
	p.units = make([]unit, len(segments))
	start8, start16 := 0, 0
	for i, seg := range segments {
		u := &p.units[i]
		u.runes = []rune(seg)
		u.start8 = start8
		u.start16 = start16
		u.newline = i < len(segments)-1
		u.u16 = utf16Prefix(u.runes)
		u.breaks = breakOpportunities(u.runes)
		shapeUnit(hb, face, f.size, u, baseDirection(seg))

		start8 += len(seg)
		start16 += u.u16[len(u.runes)]
		if u.newline {
			start8++  // '\n' is one byte
			start16++ // and one UTF-16 code unit
		}
	}
	return p
}

// shapeUnit shapes one hard-break segment and fills in its boundary
// positions and glyph placements. A glyph's advance is attributed to
// the first rune of its cluster; the other runes of a ligature get
// zero width, so their boundaries collapse onto the cluster start.
func shapeUnit(hb *shaping.HarfbuzzShaper, face *font.Face, size float64, u *unit, dir di.Direction) {
	n := len(u.runes)
	u.xAfter = make([]float64, n+1)
	if n == 0 {
		return
	}

	output := hb.Shape(shaping.Input{
		Text:      u.runes,
		RunStart:  0,
		RunEnd:    n,
		Direction: dir,
		Face:      face,
		Size:      floatToFixed(size),
		Script:    detectScript(u.runes),
		Language:  language.NewLanguage("en"),
	})

	advances := make([]float64, n)
	u.glyphs = make([]glyphPos, 0, len(output.Glyphs))
	var x float64
	for _, g := range output.Glyphs {
		adv := fixedToFloat(g.Advance)
		cluster := g.TextIndex()
		if cluster >= 0 && cluster < n {
			advances[cluster] += adv
		}
		u.glyphs = append(u.glyphs, glyphPos{
			gid:     g.GlyphID,
			cluster: cluster,
			x:       x + fixedToFloat(g.XOffset),
			y:       -fixedToFloat(g.YOffset),
		})
		x += adv
	}
	for i, adv := range advances {
		u.xAfter[i+1] = u.xAfter[i] + adv
	}
}

// lineBounds derives the uniform per-line vertical bounds. Shaping a
// single space is enough: LineBounds comes from the face's metrics,
// not from the glyph content.
func lineBounds(hb *shaping.HarfbuzzShaper, face *font.Face, size float64) layout.TypographicBounds {
	out := hb.Shape(shaping.Input{
		Text:      []rune{' '},
		RunStart:  0,
		RunEnd:    1,
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      floatToFixed(size),
		Script:    language.Latin,
		Language:  language.NewLanguage("en"),
	})
	return layout.TypographicBounds{
		Ascent:  fixedToFloat(out.LineBounds.Ascent),
		Descent: math.Abs(fixedToFloat(out.LineBounds.Descent)),
		Leading: fixedToFloat(out.LineBounds.Gap),
	}
}

// utf16Prefix returns the UTF-16 length of runes[:i] for every i.
func utf16Prefix(runes []rune) []int {
	prefix := make([]int, len(runes)+1)
	for i, r := range runes {
		n := 1
		if r >= 0x10000 {
			n = 2
		}
		prefix[i+1] = prefix[i] + n
	}
	return prefix
}

// breakOpportunities returns the ascending rune indices at which a
// line may soft-break per UAX #14. The final index is always
// len(runes), so a wrap can always close the unit.
func breakOpportunities(runes []rune) []int {
	if len(runes) == 0 {
		return nil
	}
	var seg segmenter.Segmenter
	seg.Init(runes)
	var breaks []int
	iter := seg.LineIterator()
	for iter.Next() {
		line := iter.Line()
		breaks = append(breaks, line.Offset+len(line.Text))
	}
	if len(breaks) == 0 || breaks[len(breaks)-1] != len(runes) {
		breaks = append(breaks, len(runes))
	}
	return breaks
}

// baseDirection resolves the paragraph-level direction of a segment
// with the Unicode bidi algorithm. Reordering of mixed runs stays with
// the shaper; only the base direction is decided here.
func baseDirection(text string) di.Direction {
	var p bidi.Paragraph
	if _, err := p.SetString(text, bidi.DefaultDirection(bidi.LeftToRight)); err != nil {
		return di.DirectionLTR
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return di.DirectionLTR
	}
	run := ordering.Run(0)
	if run.Direction() == bidi.RightToLeft {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript finds the script of the first non-space character.
// Defaults to Latin for whitespace-only text.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// floatToFixed converts a float64 to 26.6 fixed point.
func floatToFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(f * 64)
}

// fixedToFloat converts 26.6 fixed point to float64.
func fixedToFloat(f fixed.Int26_6) float64 {
	return float64(f) / 64
}

// lineSpan is one frame line before offset mapping: a rune range within
// a unit, plus whether the line carries the unit's hard break.
type lineSpan struct {
	unit       int
	start, end int // rune indices within the unit, end exclusive
	hardBreak  bool
}

// trimmedWidth measures runes [start, end) with trailing spaces and
// tabs excluded. Fitting ignores whitespace overhanging the margin, so
// a run of trailing spaces never forces a break on its own.
func (u *unit) trimmedWidth(start, end int) float64 {
	for end > start {
		r := u.runes[end-1]
		if r != ' ' && r != '\t' {
			break
		}
		end--
	}
	return u.xAfter[end] - u.xAfter[start]
}

// wrap greedily fills lines within maxWidth. Hard breaks are always
// honored; soft breaks fall on UAX #14 opportunities. A segment with no
// fitting opportunity overflows its own line rather than splitting
// inside a word.
func (p *paragraph) wrap(maxWidth float64) []lineSpan {
	spans := make([]lineSpan, 0, len(p.units))
	for ui := range p.units {
		u := &p.units[ui]
		n := len(u.runes)
		if n == 0 || math.IsInf(maxWidth, 1) || u.trimmedWidth(0, n) <= maxWidth {
			spans = append(spans, lineSpan{unit: ui, start: 0, end: n, hardBreak: u.newline})
			continue
		}

		start := 0
		lastFit := -1
		for i := 0; i < len(u.breaks); {
			b := u.breaks[i]
			if b <= start {
				i++
				continue
			}
			if u.trimmedWidth(start, b) <= maxWidth {
				lastFit = b
				i++
				continue
			}
			end := b
			if lastFit > start {
				// Close the line at the last opportunity that fit and
				// retry the current one on the next line.
				end = lastFit
			} else {
				i++ // no earlier opportunity: overflow through b
			}
			spans = append(spans, lineSpan{unit: ui, start: start, end: end})
			start = end
			lastFit = -1
		}
		if start < n {
			spans = append(spans, lineSpan{unit: ui, start: start, end: n, hardBreak: u.newline})
		} else {
			spans[len(spans)-1].hardBreak = u.newline
		}
	}
	return spans
}

// SuggestSize implements layout.Paragraph. The suggested width is the
// widest wrapped line with trailing whitespace trimmed, clamped to
// maxWidth so an overflowing word never widens the frame past its
// constraint; the height is the stacked line heights rounded up to a
// whole number of device units. Laying out at the suggested size
// reproduces exactly the same line breaks.
func (p *paragraph) SuggestSize(maxWidth, _ float64) scribe.Size {
	spans := p.wrap(maxWidth)
	var width float64
	for _, s := range spans {
		u := &p.units[s.unit]
		if w := u.trimmedWidth(s.start, s.end); w > width {
			width = w
		}
	}
	if !math.IsInf(maxWidth, 1) && width > maxWidth {
		width = maxWidth
	}
	height := math.Ceil(p.bounds.Height() * float64(len(spans)))
	return scribe.Size{Width: width, Height: height}
}

// Layout implements layout.Paragraph.
func (p *paragraph) Layout(size scribe.Size) layout.Frame {
	return newFrame(p, p.wrap(size.Width), size)
}

var _ layout.Paragraph = (*paragraph)(nil)
