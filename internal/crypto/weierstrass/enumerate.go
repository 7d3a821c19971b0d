package weierstrass

import (
	"context"
	"iter"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/smallyu/go-ecviz/internal/crypto/field"
)

// ctxCheckMask sets how often the long loops poll their context: once every
// 4096 iterations.
const ctxCheckMask = 1<<12 - 1

// All yields every affine point of the curve by brute force, x ascending
// and, for each x, y ascending. The cost is O(p²) field multiplications, so
// it is only meant for small moduli.
func All(c Params) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		rhs := c.RHS()
		for x := int64(0); x < c.P; x++ {
			r := rhs.Evaluate(x)
			for y := int64(0); y < c.P; y++ {
				if field.Mul(y, y, c.P) != r {
					continue
				}
				if !yield(NewPoint(x, y, c)) {
					return
				}
			}
		}
	}
}

// FindPoints returns all affine points of the curve in increasing x, then
// increasing y order. The point at infinity is not included.
func FindPoints(c Params) []Point {
	return slices.Collect(All(c))
}

// FindPointsParallel returns the same slice as FindPoints, scanning
// contiguous ranges of x concurrently on up to workers goroutines. A workers
// value below one means one. Cancellation of ctx is observed inside every
// row, so it returns promptly even for moduli far too large to enumerate.
func FindPointsParallel(ctx context.Context, c Params, workers int) ([]Point, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}
	chunk := max(c.P/int64(workers*4), 1)
	chunks := make([][]Point, (c.P+chunk-1)/chunk)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	rhs := c.RHS()
	for i := range chunks {
		if gctx.Err() != nil {
			break
		}
		lo := int64(i) * chunk
		hi := min(lo+chunk, c.P)
		g.Go(func() error {
			var pts []Point
			for x := lo; x < hi; x++ {
				row, err := findRow(gctx, c, rhs.Evaluate(x), x)
				if err != nil {
					return err
				}
				pts = append(pts, row...)
			}
			chunks[i] = pts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// the loop above may stop early without any goroutine failing
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Concat(chunks...), nil
}

// findRow returns the points with the given x whose y^2 equals r.
func findRow(ctx context.Context, c Params, r, x int64) ([]Point, error) {
	var row []Point
	for y := int64(0); y < c.P; y++ {
		if y&ctxCheckMask == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if field.Mul(y, y, c.P) == r {
			row = append(row, NewPoint(x, y, c))
		}
	}
	return row, nil
}

// CountPoints returns #E(F_p), the number of affine points plus the point
// at infinity, using Euler's criterion per x instead of scanning y.
func CountPoints(c Params) int64 {
	n, _ := CountPointsContext(context.Background(), c)
	return n
}

// CountPointsContext is CountPoints with cancellation. The cost is O(p log p)
// field multiplications.
//
// c must come from NewParams, which only admits odd primes: every curve over
// F_2 is singular.
func CountPointsContext(ctx context.Context, c Params) (int64, error) {
	rhs := c.RHS()
	count := int64(1)
	for x := int64(0); x < c.P; x++ {
		if x&ctxCheckMask == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		count += int64(1 + field.Legendre(rhs.Evaluate(x), c.P))
	}
	return count, nil
}
