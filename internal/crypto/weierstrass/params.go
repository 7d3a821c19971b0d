// Package weierstrass implements the group of points on a short-Weierstrass
// curve y^2 = x^3 + a*x + b over a small prime field F_p.
//
// Points are small immutable values. The group law, enumeration and scalar
// helpers never mutate their inputs and always return freshly built points
// with coordinates normalized into [0, p).
package weierstrass

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ecviz/internal/crypto/field"
	"github.com/smallyu/go-ecviz/internal/crypto/polynomial"
)

var (
	// ErrSingularCurve is returned by NewParams when 4a^3 + 27b^2 ≡ 0.
	ErrSingularCurve = errors.New("weierstrass: singular curve")
	// ErrCurveMismatch is the panic value when points of two curves meet.
	ErrCurveMismatch = errors.New("weierstrass: points belong to different curves")
	// ErrCoordinateRange is the panic value for a coordinate outside [0, p).
	ErrCoordinateRange = errors.New("weierstrass: coordinate out of range")
	// ErrNotOnCurve is returned when an operation needs a point of the group.
	ErrNotOnCurve = errors.New("weierstrass: point is not on the curve")
	// ErrNoOrder means no multiple up to the Hasse bound reached infinity.
	ErrNoOrder = errors.New("weierstrass: point order not found within Hasse bound")
)

// Params holds the curve coefficients and the field modulus. It is a plain
// comparable value shared by every point on the curve.
type Params struct {
	A int64
	B int64
	P int64
}

// NewParams validates (a, b, p) and returns curve parameters with a and b
// reduced into [0, p). p must be a prime no larger than field.MaxModulus and
// the curve must be non-singular.
func NewParams(a, b, p int64) (Params, error) {
	if err := field.ValidateModulus(p); err != nil {
		return Params{}, err
	}
	c := Params{
		A: field.Reduce(a, p),
		B: field.Reduce(b, p),
		P: p,
	}
	if c.IsSingular() {
		return Params{}, errors.Wrapf(ErrSingularCurve, "%s (discriminant 0)", c)
	}
	return c, nil
}

// MustParams is like NewParams but panics on invalid input. Intended for
// package-level constants and tests.
func MustParams(a, b, p int64) Params {
	c, err := NewParams(a, b, p)
	if err != nil {
		panic(err)
	}
	return c
}

// Discriminant returns -16(4a^3 + 27b^2) mod p.
func (c Params) Discriminant() int64 {
	p := c.P
	a3 := field.Mul(field.Mul(c.A, c.A, p), c.A, p)
	b2 := field.Mul(c.B, c.B, p)
	sum := field.Add(field.Mul(4, a3, p), field.Mul(27, b2, p), p)
	return field.Mul(-16, sum, p)
}

// IsSingular reports whether the curve has a cusp or node over F_p.
func (c Params) IsSingular() bool {
	return c.Discriminant() == 0
}

// RHS returns the right-hand side polynomial x^3 + a*x + b.
func (c Params) RHS() *polynomial.Polynomial {
	return polynomial.WeierstrassRHS(c.A, c.B, c.P)
}

// Satisfies reports whether y^2 ≡ x^3 + a*x + b (mod p).
func (c Params) Satisfies(x, y int64) bool {
	return field.Mul(y, y, c.P) == c.RHS().Evaluate(x)
}

func (c Params) String() string {
	return fmt.Sprintf("y^2 = x^3 + %dx + %d mod %d", c.A, c.B, c.P)
}
