package weierstrass

import (
	"github.com/pkg/errors"

	"github.com/smallyu/go-ecviz/internal/crypto/field"
)

// Add implements the group law. The cases are evaluated strictly in order:
//
//  1. p is infinity: return q.
//  2. q is infinity: return p.
//  3. x1 == x2 and y1 + y2 ≡ 0: the vertical line, return infinity. This
//     covers inverse pairs and doubling a point with y = 0.
//  4. slope λ: the tangent (3x1² + a) / 2y1 when p == q, otherwise the
//     secant (y2 - y1) / (x2 - x1).
//  5. x3 = λ² - x1 - x2, y3 = λ(x1 - x3) - y1.
//
// Case 3 must run before case 4, it is what keeps both divisors non-zero.
// Adding points from different curves panics with ErrCurveMismatch.
func Add(p, q Point) Point {
	if p.kind == KindInfinity {
		return q
	}
	if q.kind == KindInfinity {
		return p
	}
	if p.params != q.params {
		panic(errors.Wrapf(ErrCurveMismatch, "%s and %s", p.params, q.params))
	}

	c := p.params
	m := c.P
	x1, y1 := p.x, p.y
	x2, y2 := q.x, q.y

	if x1 == x2 && field.Add(y1, y2, m) == 0 {
		return Infinity(c)
	}

	var lambda int64
	if x1 == x2 && y1 == y2 {
		num := field.Add(field.Mul(3, field.Mul(x1, x1, m), m), c.A, m)
		lambda = field.Div(num, field.Mul(2, y1, m), m)
	} else {
		lambda = field.Div(field.Sub(y2, y1, m), field.Sub(x2, x1, m), m)
	}

	x3 := field.Sub(field.Sub(field.Mul(lambda, lambda, m), x1, m), x2, m)
	y3 := field.Sub(field.Mul(lambda, field.Sub(x1, x3, m), m), y1, m)
	return NewPoint(x3, y3, c).mustBeNormalized()
}

// Double returns p + p.
func Double(p Point) Point {
	return Add(p, p)
}

// Neg returns the reflection (x, -y). The point at infinity is its own
// negation.
func Neg(p Point) Point {
	if p.kind == KindInfinity {
		return p
	}
	return NewPoint(p.x, field.Neg(p.y, p.params.P), p.params)
}

// Sub returns p - q.
func Sub(p, q Point) Point {
	return Add(p, Neg(q))
}
