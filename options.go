package scribe

// LayoutOption configures layout construction.
type LayoutOption func(*LayoutConfig)

// LayoutConfig holds the resolved configuration for a layout build.
// Backends pass it to the shared layout engine.
type LayoutConfig struct {
	// Width is the initial wrap width. Defaults to Unconstrained.
	Width float64

	// SubpixelMetrics disables pixel snapping of cumulative line heights.
	SubpixelMetrics bool
}

// DefaultLayoutConfig returns the default layout configuration.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Width: Unconstrained,
	}
}

// WithWidth sets the initial wrap width constraint.
// Pass Unconstrained (the default) to disable wrapping.
func WithWidth(w float64) LayoutOption {
	return func(c *LayoutConfig) {
		c.Width = w
	}
}

// WithSubpixelMetrics preserves sub-pixel precision in
// [LineMetric.CumulativeHeight] instead of rounding it up to whole units.
// Layouts feeding high-DPI rendering may prefer this; note that with
// sub-pixel metrics the last line's cumulative height can fall short of
// the frame height by less than one unit, since the frame height itself
// stays snapped.
func WithSubpixelMetrics() LayoutOption {
	return func(c *LayoutConfig) {
		c.SubpixelMetrics = true
	}
}
