package weierstrass

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ecviz/internal/crypto/field"
)

// Kind discriminates the two variants of a Point.
type Kind uint8

const (
	// KindInfinity is the group identity. It is the zero Kind so that the
	// zero Point is an identity element.
	KindInfinity Kind = iota
	// KindAffine is a finite point with (x, y) coordinates.
	KindAffine
)

func (k Kind) String() string {
	switch k {
	case KindInfinity:
		return "infinity"
	case KindAffine:
		return "affine"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Point is either an affine point (x, y) with both coordinates in [0, p), or
// the point at infinity. Both variants carry the curve parameters so that
// the group law needs no extra arguments.
//
// Points compare with ==: same kind, same coordinates, same curve.
type Point struct {
	kind   Kind
	x, y   int64
	params Params
}

// NewPoint returns the affine point (x mod p, y mod p). Negative or
// out-of-range inputs are normalized, so NewPoint(-1, 0, c) has x = p-1.
// The point is not checked against the curve equation; see IsOnCurve.
func NewPoint(x, y int64, c Params) Point {
	return Point{
		kind:   KindAffine,
		x:      field.Reduce(x, c.P),
		y:      field.Reduce(y, c.P),
		params: c,
	}
}

// Infinity returns the identity element of the curve.
func Infinity(c Params) Point {
	return Point{kind: KindInfinity, params: c}
}

func (p Point) Kind() Kind { return p.kind }

func (p Point) IsInfinity() bool { return p.kind == KindInfinity }

func (p Point) Params() Params { return p.params }

// Coords returns the affine coordinates. ok is false for the point at
// infinity, in which case x and y are zero.
func (p Point) Coords() (x, y int64, ok bool) {
	if p.kind != KindAffine {
		return 0, 0, false
	}
	return p.x, p.y, true
}

// X returns the x coordinate, or 0 for the point at infinity.
func (p Point) X() int64 { return p.x }

// Y returns the y coordinate, or 0 for the point at infinity.
func (p Point) Y() int64 { return p.y }

// Equal reports whether p and q are the same point on the same curve.
func (p Point) Equal(q Point) bool {
	return p == q
}

// IsOnCurve reports whether p satisfies the curve equation. The point at
// infinity is always on the curve.
func (p Point) IsOnCurve() bool {
	if p.kind == KindInfinity {
		return true
	}
	return p.params.Satisfies(p.x, p.y)
}

// Add returns p + q. See the package-level Add.
func (p Point) Add(q Point) Point { return Add(p, q) }

// Double returns p + p.
func (p Point) Double() Point { return Add(p, p) }

// Neg returns -p.
func (p Point) Neg() Point { return Neg(p) }

// ScalarMult returns k*p.
func (p Point) ScalarMult(k int64) Point { return ScalarMult(p, k) }

func (p Point) String() string {
	if p.kind == KindInfinity {
		return "O"
	}
	return fmt.Sprintf("(%d, %d)", p.x, p.y)
}

// mustBeNormalized panics if an affine coordinate escaped [0, p). Reaching
// it means the reduction logic itself is broken.
func (p Point) mustBeNormalized() Point {
	if p.kind != KindAffine {
		return p
	}
	m := p.params.P
	if p.x < 0 || p.x >= m || p.y < 0 || p.y >= m {
		panic(errors.Wrapf(ErrCoordinateRange, "%s not in [0, %d)", p, m))
	}
	return p
}
