package gotext

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/vector"

	"github.com/gogpu/scribe"
	"github.com/gogpu/scribe/layout"
)

// frame is one laid-out arrangement of a paragraph at a fixed size. It
// implements layout.Frame. The paragraph it references is shared and
// immutable; the frame owns only its line and origin tables.
type frame struct {
	para    *paragraph
	spans   []lineSpan
	size    scribe.Size
	lines   []layout.Line
	origins []scribe.Point
}

func newFrame(p *paragraph, spans []lineSpan, size scribe.Size) *frame {
	f := &frame{para: p, spans: spans, size: size}
	lineHeight := p.bounds.Height()
	f.lines = make([]layout.Line, len(spans))
	f.origins = make([]scribe.Point, len(spans))
	for i, s := range spans {
		u := &p.units[s.unit]
		carets := make([]layout.Caret, 0, s.end-s.start+2)
		for j := s.start; j <= s.end; j++ {
			carets = append(carets, layout.Caret{
				Offset: u.start16 + u.u16[j],
				X:      u.xAfter[j] - u.xAfter[s.start],
			})
		}
		if s.hardBreak {
			// The newline belongs to the line but adds no width.
			carets = append(carets, layout.Caret{
				Offset: u.start16 + u.u16[s.end] + 1,
				X:      u.xAfter[s.end] - u.xAfter[s.start],
			})
		}
		f.lines[i] = layout.Line{
			Start:  u.start16 + u.u16[s.start],
			Bounds: p.bounds,
			Carets: carets,
		}
		// Origins are bottom-up: the distance from the frame bottom to
		// the line's baseline.
		baseline := float64(i)*lineHeight + p.bounds.Ascent
		f.origins[i] = scribe.Point{X: 0, Y: size.Height - baseline}
	}
	return f
}

// Lines implements layout.Frame.
func (f *frame) Lines() []layout.Line { return f.lines }

// Origins implements layout.Frame.
func (f *frame) Origins() []scribe.Point { return f.origins }

// Draw implements layout.Frame. The frame's glyph outlines are
// rasterized into a coverage mask and composited onto dst as opaque
// black, with at as the top-left corner of the frame in dst's
// coordinate space.
func (f *frame) Draw(dst draw.Image, at scribe.Point) {
	bounds := dst.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 || len(f.spans) == 0 {
		return
	}

	face := font.NewFace(f.para.font.font)
	r := vector.NewRasterizer(w, h)
	lineHeight := f.para.bounds.Height()

	for i, s := range f.spans {
		u := &f.para.units[s.unit]
		baseline := at.Y + float64(i)*lineHeight + f.para.bounds.Ascent
		startX := at.X - u.xAfter[s.start]
		for _, g := range u.glyphs {
			if g.cluster < s.start || g.cluster >= s.end {
				continue
			}
			appendOutline(r, face, g.gid, f.para.scale, startX+g.x, baseline+g.y)
		}
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(dst, bounds, image.NewUniform(color.Black), image.Point{}, mask, image.Point{}, draw.Over)
}

// appendOutline adds one glyph's outline to the rasterizer with its
// origin at (x, y) in device space. Font outlines are y-up; device
// space is y-down, so outline y coordinates are negated.
func appendOutline(r *vector.Rasterizer, face *font.Face, gid font.GID, scale, x, y float64) {
	outline, ok := face.GlyphData(gid).(font.GlyphOutline)
	if !ok {
		// Bitmap-only glyphs (color emoji) have no outline to fill.
		return
	}
	px := func(p font.SegmentPoint) (float32, float32) {
		return float32(x + float64(p.X)*scale), float32(y - float64(p.Y)*scale)
	}
	open := false
	for _, seg := range outline.Segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			if open {
				r.ClosePath()
			}
			ax, ay := px(seg.Args[0])
			r.MoveTo(ax, ay)
			open = true
		case ot.SegmentOpLineTo:
			ax, ay := px(seg.Args[0])
			r.LineTo(ax, ay)
		case ot.SegmentOpQuadTo:
			bx, by := px(seg.Args[0])
			cx, cy := px(seg.Args[1])
			r.QuadTo(bx, by, cx, cy)
		case ot.SegmentOpCubeTo:
			bx, by := px(seg.Args[0])
			cx, cy := px(seg.Args[1])
			dx, dy := px(seg.Args[2])
			r.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if open {
		r.ClosePath()
	}
}

var _ layout.Frame = (*frame)(nil)
