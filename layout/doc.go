// Package layout implements the shared line-layout engine behind
// scribe.TextLayout.
//
// The engine is backend-agnostic: a [Shaper] adapter turns a font and a
// string into an immutable [Paragraph], and the engine drives it to
// produce line breaks, per-line typographic bounds and baseline
// positions. The engine owns all per-width caches (line start offsets,
// baseline positions, caret tables) and replaces them as one unit on
// every relayout.
//
// Native shaping engines report line positions in UTF-16 code units;
// the engine translates them to UTF-8 byte offsets with a single forward
// scan per rebuild (see offsets.go), so a rebuild is O(len(text))
// regardless of line count.
package layout
