package weierstrass

import (
	"context"
	"math"

	"github.com/pkg/errors"
)

// ScalarMult returns k*p by double-and-add. Negative k multiplies -p.
//
// Unlike the iterated doubling in package trace, this is a full scalar
// multiplication. Off-curve inputs can reach a non-invertible secant and
// panic.
func ScalarMult(p Point, k int64) Point {
	if k < 0 {
		p = Neg(p)
		if k == math.MinInt64 {
			// -k overflows; split off one addition.
			return Add(ScalarMult(p, math.MaxInt64), p)
		}
		k = -k
	}
	result := Infinity(p.params)
	addend := p
	for k > 0 {
		if k&1 == 1 {
			result = Add(result, addend)
		}
		addend = Double(addend)
		k >>= 1
	}
	return result
}

// hasseBound returns an upper bound on #E(F_p): p + 1 + 2*sqrt(p), rounded
// up.
func hasseBound(p int64) int64 {
	return p + 1 + 2*int64(math.Ceil(math.Sqrt(float64(p))))
}

// PointOrder returns the smallest n >= 1 with n*p = O. p must lie on the
// curve.
func PointOrder(p Point) (int64, error) {
	return PointOrderContext(context.Background(), p)
}

// PointOrderContext is PointOrder with cancellation. It adds p to itself up
// to the Hasse bound, so the cost is O(p) group operations.
func PointOrderContext(ctx context.Context, p Point) (int64, error) {
	if p.IsInfinity() {
		return 1, nil
	}
	if !p.IsOnCurve() {
		return 0, errors.Wrapf(ErrNotOnCurve, "%s on %s", p, p.params)
	}
	bound := hasseBound(p.params.P)
	acc := p
	for n := int64(1); n <= bound; n++ {
		if (n-1)&ctxCheckMask == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		if acc.IsInfinity() {
			return n, nil
		}
		acc = Add(acc, p)
	}
	return 0, errors.Wrapf(ErrNoOrder, "%s on %s", p, p.params)
}
