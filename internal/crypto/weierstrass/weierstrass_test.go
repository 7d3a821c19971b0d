package weierstrass

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	curve599 = MustParams(1, 1, 599)
	curve97  = MustParams(2, 3, 97)

	// far too large to enumerate or count
	curveHuge = MustParams(1, 1, 1<<61-1)
	curveBig  = MustParams(1, 1, 1_000_000_007)
)

func TestNewParams(t *testing.T) {
	c, err := NewParams(-1, 600, 599)
	require.NoError(t, err)
	assert.Equal(t, Params{A: 598, B: 1, P: 599}, c)

	t.Run("rejects composite modulus", func(t *testing.T) {
		_, err := NewParams(1, 1, 600)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not prime")
	})

	t.Run("rejects singular curve", func(t *testing.T) {
		_, err := NewParams(0, 0, 599)
		require.ErrorIs(t, err, ErrSingularCurve)
		// 4*(-3)^3 + 27*2^2 = -108 + 108 = 0
		_, err = NewParams(-3, 2, 599)
		require.ErrorIs(t, err, ErrSingularCurve)
	})

	t.Run("every curve over F_2 is singular", func(t *testing.T) {
		for _, ab := range [][2]int64{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
			_, err := NewParams(ab[0], ab[1], 2)
			require.ErrorIs(t, err, ErrSingularCurve, "a=%d b=%d", ab[0], ab[1])
		}
	})

	t.Run("must params panics", func(t *testing.T) {
		assert.Panics(t, func() { MustParams(1, 1, 1) })
	})
}

func TestNewPointNormalizes(t *testing.T) {
	p := NewPoint(-1, 1, curve599)
	assert.Equal(t, int64(598), p.X())
	assert.Equal(t, int64(1), p.Y())

	p = NewPoint(600, -600, curve599)
	x, y, ok := p.Coords()
	require.True(t, ok)
	assert.Equal(t, int64(1), x)
	assert.Equal(t, int64(598), y)
	assert.Equal(t, KindAffine, p.Kind())
}

func TestInfinity(t *testing.T) {
	o := Infinity(curve599)
	assert.True(t, o.IsInfinity())
	assert.Equal(t, KindInfinity, o.Kind())
	_, _, ok := o.Coords()
	assert.False(t, ok)
	assert.True(t, o.IsOnCurve())
	assert.Equal(t, "O", o.String())
	assert.Equal(t, o, Neg(o))
	// same kind on another curve is a different value
	assert.False(t, o.Equal(Infinity(curve97)))
}

func TestIdentityLaw(t *testing.T) {
	o := Infinity(curve599)
	for _, p := range FindPoints(curve599) {
		require.Equal(t, p, Add(p, o))
		require.Equal(t, p, Add(o, p))
	}
	assert.Equal(t, o, Add(o, o))
}

func TestCommutativity(t *testing.T) {
	points := FindPoints(curve97)
	for _, p := range points {
		for _, q := range points {
			require.Equal(t, Add(p, q), Add(q, p), "%s + %s", p, q)
		}
	}
}

func TestInverseLaw(t *testing.T) {
	for _, p := range FindPoints(curve599) {
		if p.Y() == 0 {
			continue
		}
		q := NewPoint(p.X(), curve599.P-p.Y(), curve599)
		require.True(t, Add(p, q).IsInfinity(), "%s + %s", p, q)
		require.Equal(t, q, Neg(p))
		require.True(t, Sub(p, p).IsInfinity())
	}
}

func TestDoublingVerticalTangent(t *testing.T) {
	// (30, 0) lies on y^2 = x^3 + 2x + 3 mod 97 and has order two.
	p := NewPoint(30, 0, curve97)
	require.True(t, p.IsOnCurve())
	assert.True(t, Double(p).IsInfinity())
	assert.Equal(t, p, Neg(p))
}

func TestClosure(t *testing.T) {
	points := FindPoints(curve97)
	for _, p := range points {
		for _, q := range points {
			r := Add(p, q)
			if r.IsInfinity() {
				continue
			}
			require.True(t, r.IsOnCurve(), "%s + %s = %s", p, q, r)
			require.True(t, r.X() >= 0 && r.X() < curve97.P)
			require.True(t, r.Y() >= 0 && r.Y() < curve97.P)
		}
	}

	t.Run("sampled on p=599", func(t *testing.T) {
		points := FindPoints(curve599)
		for i := 0; i < len(points); i += 7 {
			for j := 0; j < len(points); j += 11 {
				r := Add(points[i], points[j])
				require.True(t, r.IsOnCurve(), "%s + %s = %s", points[i], points[j], r)
			}
		}
	})
}

func TestAssociativity(t *testing.T) {
	points := FindPoints(curve97)
	for i := 0; i < len(points); i += 5 {
		for j := 0; j < len(points); j += 7 {
			for k := 0; k < len(points); k += 9 {
				p, q, r := points[i], points[j], points[k]
				require.Equal(t, Add(Add(p, q), r), Add(p, Add(q, r)))
			}
		}
	}
}

func TestKnownValues(t *testing.T) {
	g := NewPoint(0, 1, curve599)
	assert.Equal(t, NewPoint(150, 523, curve599), g.Double())
	assert.Equal(t, NewPoint(226, 266, curve599), g.Add(NewPoint(1, 188, curve599)))

	// (5, 1) is not on y^2 = x^3 + x + 1 mod 599, but doubling it is still
	// well defined and cycles with period nine.
	base := NewPoint(5, 1, curve599)
	assert.False(t, base.IsOnCurve())
	assert.Equal(t, NewPoint(236, 206, curve599), base.Double())
}

func TestCurveMismatchPanics(t *testing.T) {
	p := NewPoint(0, 1, curve599)
	q := NewPoint(30, 0, curve97)
	assert.Panics(t, func() { Add(p, q) })
	// identity short-circuits before the curve comparison
	assert.Equal(t, p, Add(p, Infinity(curve97)))
}

func TestFindPoints(t *testing.T) {
	points := FindPoints(curve599)
	require.Len(t, points, 596)
	assert.Equal(t, NewPoint(0, 1, curve599), points[0])
	assert.Equal(t, NewPoint(0, 598, curve599), points[1])
	assert.Equal(t, NewPoint(1, 188, curve599), points[2])

	seen := make(map[Point]bool, len(points))
	for i, p := range points {
		require.False(t, p.IsInfinity())
		require.True(t, p.X() >= 0 && p.X() < 599 && p.Y() >= 0 && p.Y() < 599)
		require.True(t, p.IsOnCurve(), "%s", p)
		require.False(t, seen[p], "duplicate %s", p)
		seen[p] = true
		if i > 0 {
			prev := points[i-1]
			require.True(t, prev.X() < p.X() || (prev.X() == p.X() && prev.Y() < p.Y()),
				"%s before %s", prev, p)
		}
	}

	t.Run("complete", func(t *testing.T) {
		count := 0
		for x := int64(0); x < curve97.P; x++ {
			for y := int64(0); y < curve97.P; y++ {
				if (y*y-(x*x*x+2*x+3))%97 == 0 {
					count++
				}
			}
		}
		assert.Len(t, FindPoints(curve97), count)
	})

	t.Run("early stop", func(t *testing.T) {
		n := 0
		for range All(curve599) {
			n++
			if n == 3 {
				break
			}
		}
		assert.Equal(t, 3, n)
	})
}

func TestFindPointsParallel(t *testing.T) {
	want := FindPoints(curve599)
	for _, workers := range []int{0, 1, 3, 8, 1000} {
		got, err := FindPointsParallel(context.Background(), curve599, workers)
		require.NoError(t, err)
		require.Equal(t, want, got, "workers=%d", workers)
	}

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := FindPointsParallel(ctx, curve599, 4)
		require.ErrorIs(t, err, context.Canceled)
		_, err = FindPointsParallel(ctx, curveHuge, 4)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("deadline on a huge modulus", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		start := time.Now()
		_, err := FindPointsParallel(ctx, curveHuge, 4)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), 5*time.Second)
	})
}

func TestCountPoints(t *testing.T) {
	assert.Equal(t, int64(597), CountPoints(curve599))
	assert.Equal(t, int64(100), CountPoints(curve97))
	for _, c := range []Params{curve599, curve97, MustParams(10, 0, 11), MustParams(1, 1, 3)} {
		assert.Equal(t, int64(len(FindPoints(c))+1), CountPoints(c), "%s", c)
	}
}

func TestCountPointsContext(t *testing.T) {
	n, err := CountPointsContext(context.Background(), curve97)
	require.NoError(t, err)
	assert.Equal(t, int64(100), n)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = CountPointsContext(ctx, curveBig)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestScalarMult(t *testing.T) {
	g := NewPoint(0, 1, curve599)
	assert.True(t, ScalarMult(g, 0).IsInfinity())
	assert.Equal(t, g, ScalarMult(g, 1))
	assert.Equal(t, g.Double(), ScalarMult(g, 2))
	assert.Equal(t, Add(g.Double(), g), g.ScalarMult(3))
	assert.Equal(t, Neg(ScalarMult(g, 3)), ScalarMult(g, -3))

	acc := Infinity(curve599)
	for k := int64(1); k <= 50; k++ {
		acc = Add(acc, g)
		require.Equal(t, acc, ScalarMult(g, k), "k=%d", k)
	}
}

func TestPointOrder(t *testing.T) {
	g := NewPoint(0, 1, curve599)
	n, err := PointOrder(g)
	require.NoError(t, err)
	// 597 = 3 * 199 is the group order and (0, 1) generates the group.
	assert.Equal(t, int64(597), n)
	assert.True(t, ScalarMult(g, n).IsInfinity())

	n, err = PointOrder(NewPoint(30, 0, curve97))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = PointOrder(Infinity(curve599))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = PointOrder(NewPoint(5, 1, curve599))
	assert.ErrorIs(t, err, ErrNotOnCurve)

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		g := NewPoint(0, 1, curveBig)
		require.True(t, g.IsOnCurve())
		_, err := PointOrderContext(ctx, g)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestCoordinateRangePanics(t *testing.T) {
	bad := Point{kind: KindAffine, x: 600, y: 1, params: curve599}
	assert.Panics(t, func() { bad.mustBeNormalized() })
	assert.NotPanics(t, func() { Infinity(curve599).mustBeNormalized() })
}
