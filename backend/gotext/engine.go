package gotext

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"

	"github.com/gogpu/scribe"
	"github.com/gogpu/scribe/layout"
)

// Engine implements scribe.Text on go-text/typesetting. It is a font
// service (a registry of parsed fonts resolvable by family name) and a
// layout builder bound to the shared layout engine.
//
// Engine is safe for concurrent use. Parsed font.Font values are
// read-only and cached per family; shaping.HarfbuzzShaper instances
// carry mutable buffers and are pooled.
type Engine struct {
	// mu protects the font registry.
	mu    sync.RWMutex
	fonts map[string]*font.Font

	// shaperPool pools HarfbuzzShaper instances. HarfbuzzShaper is NOT
	// safe for concurrent use, but reusing one across sequential shaping
	// calls is efficient.
	shaperPool sync.Pool
}

// NewEngine creates an empty engine. Register fonts before resolving.
func NewEngine() *Engine {
	return &Engine{
		fonts: make(map[string]*font.Font),
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
	}
}

// RegisterFont parses TTF/OTF data and registers it under the given
// family name, replacing any previous registration. The data slice is
// not retained beyond parsing.
func (e *Engine) RegisterFont(family string, data []byte) error {
	if len(data) == 0 {
		return ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("gotext: parsing font %q: %w", family, err)
	}
	e.mu.Lock()
	e.fonts[family] = face.Font
	e.mu.Unlock()
	return nil
}

// RegisterFontFile loads a font file and registers it under family.
func (e *Engine) RegisterFontFile(family, path string) error {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("gotext: reading font file: %w", err)
	}
	return e.RegisterFont(family, data)
}

// Families returns the registered family names.
func (e *Engine) Families() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.fonts))
	for name := range e.fonts {
		names = append(names, name)
	}
	return names
}

// ResolveFont implements scribe.Text. It fails with an error wrapping
// scribe.ErrFontNotFound for unknown families and malformed requests
// (non-positive, NaN or infinite sizes).
func (e *Engine) ResolveFont(family string, size float64) (scribe.Font, error) {
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return nil, fmt.Errorf("gotext: size %v for family %q: %w", size, family, scribe.ErrFontNotFound)
	}
	e.mu.RLock()
	f, ok := e.fonts[family]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("gotext: family %q: %w", family, scribe.ErrFontNotFound)
	}
	return &Font{family: family, size: size, font: f}, nil
}

// NewLayout implements scribe.Text: it shapes text with font and
// performs the initial layout pass in the shared engine.
func (e *Engine) NewLayout(fnt scribe.Font, text string, opts ...scribe.LayoutOption) (scribe.TextLayout, error) {
	cfg := scribe.DefaultLayoutConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	l, err := layout.New(e, fnt, text, cfg)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Paragraph implements layout.Shaper.
func (e *Engine) Paragraph(fnt scribe.Font, text string) (layout.Paragraph, error) {
	f, ok := fnt.(*Font)
	if !ok {
		return nil, fmt.Errorf("gotext: font %T was not resolved by this engine", fnt)
	}
	return e.shapeParagraph(f, text), nil
}

var _ scribe.Text = (*Engine)(nil)
var _ layout.Shaper = (*Engine)(nil)
