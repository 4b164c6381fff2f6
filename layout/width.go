package layout

import "math"

// widthState identifies which variant a widthConstraint holds.
type widthState uint8

const (
	// widthUninitialized is the state before the first layout pass.
	// It compares unequal to every normalized constraint, forcing the
	// mandatory initial pass without relying on a NaN sentinel.
	widthUninitialized widthState = iota

	// widthConstrained holds a finite wrap width.
	widthConstrained

	// widthUnconstrained means no wrapping (+Inf width).
	widthUnconstrained
)

// widthConstraint is the cached wrap width as an explicit state.
// Finite widths are stored as their bit pattern so that the no-op
// deduplication in UpdateWidth is exactly bit-for-bit.
type widthConstraint struct {
	state widthState
	bits  uint64 // math.Float64bits of the width; valid when constrained
}

// constraintFor normalizes a validated width into a constraint.
func constraintFor(width float64) widthConstraint {
	if math.IsInf(width, 1) {
		return widthConstraint{state: widthUnconstrained}
	}
	return widthConstraint{state: widthConstrained, bits: math.Float64bits(width)}
}

// value returns the width the constraint represents.
// Uninitialized and unconstrained both lay out without wrapping.
func (c widthConstraint) value() float64 {
	if c.state == widthConstrained {
		return math.Float64frombits(c.bits)
	}
	return math.Inf(1)
}
