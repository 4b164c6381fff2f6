// Package scribe provides backend-agnostic text layout for 2D drawing APIs.
//
// # Overview
//
// scribe separates the text layout contract from the shaping engine that
// fulfills it. The root package defines the public API: a font service
// ([Text]), an opaque font handle ([Font]) and a line-broken layout object
// ([TextLayout]) that exposes per-line metrics, per-line text and hit
// testing. The subsystem is split into one shared engine (package layout)
// and thin per-backend shaping adapters (package backend/gotext binds
// go-text/typesetting).
//
// # Quick Start
//
//	eng := gotext.NewEngine()
//	if err := eng.RegisterFont("Go", goregular.TTF); err != nil {
//	    log.Fatal(err)
//	}
//
//	font, err := eng.ResolveFont("Go", 16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tl, err := eng.NewLayout(font, "hello\nworld", scribe.WithWidth(200))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for i := 0; i < tl.LineCount(); i++ {
//	    m, _ := tl.LineMetric(i)
//	    fmt.Println(m.StartOffset, m.EndOffset, m.Baseline)
//	}
//
// # Offsets and encodings
//
// Native shaping engines commonly index text in UTF-16 code units; the
// public API indexes by UTF-8 byte offset. The layout engine keeps an
// exact, invertible mapping between the two models, so every offset
// surfaced by [LineMetric], [HitTestPoint] and [HitTestTextPosition] is a
// valid byte offset into the source string, never inside a multi-byte
// sequence.
//
// # Rendering
//
// scribe does not paint. A finished layout is read-only input for the
// painting side of a drawing API; the only paint-adjacent capability is
// [TextLayout.Draw], which composites the cached frame's glyphs onto a
// caller-supplied image at an offset. Brushes, gradients and pixel-format
// concerns stay with the consumer.
package scribe
