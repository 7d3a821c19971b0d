package curves

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ecviz/internal/crypto/weierstrass"
)

const (
	tagInfinity = 0x00
	tagAffine   = 0x04
)

// WeierstrassCurve adapts a small-prime curve to the Curve interface. The
// base point is chosen by the caller and need not generate the group.
type WeierstrassCurve struct {
	params weierstrass.Params
	base   weierstrass.Point
	order  *big.Int
}

// NewWeierstrass wraps params with the given base point. base must carry the
// same params. Counting the group takes O(p log p) time, so ctx bounds it.
func NewWeierstrass(ctx context.Context, params weierstrass.Params, base weierstrass.Point) (*WeierstrassCurve, error) {
	if base.Params() != params {
		return nil, errors.Wrapf(ErrPointMismatch, "base %s is not on %s", base, params)
	}
	n, err := weierstrass.CountPointsContext(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "count curve points")
	}
	return &WeierstrassCurve{
		params: params,
		base:   base,
		order:  big.NewInt(n),
	}, nil
}

func (c *WeierstrassCurve) Name() string {
	return fmt.Sprintf("weierstrass(a=%d,b=%d,p=%d)", c.params.A, c.params.B, c.params.P)
}

// Order returns #E(F_p), which every point order divides.
func (c *WeierstrassCurve) Order() *big.Int {
	return new(big.Int).Set(c.order)
}

func (c *WeierstrassCurve) BasePoint() Point {
	return &WeierstrassPoint{p: c.base, order: c.order}
}

func (c *WeierstrassCurve) Identity() Point {
	return &WeierstrassPoint{p: weierstrass.Infinity(c.params), order: c.order}
}

// NewPointFromBytes decodes a point produced by WeierstrassPoint.Bytes. The
// decoded point must satisfy the curve equation.
func (c *WeierstrassCurve) NewPointFromBytes(b []byte) (Point, error) {
	switch {
	case len(b) == 1 && b[0] == tagInfinity:
		return c.Identity(), nil
	case len(b) == 17 && b[0] == tagAffine:
		x := binary.BigEndian.Uint64(b[1:9])
		y := binary.BigEndian.Uint64(b[9:17])
		m := uint64(c.params.P)
		if x >= m || y >= m {
			return nil, errors.Wrapf(ErrInvalidPoint, "coordinate not below %d", m)
		}
		p := weierstrass.NewPoint(int64(x), int64(y), c.params)
		if !p.IsOnCurve() {
			return nil, errors.Wrapf(ErrInvalidPoint, "%s not on %s", p, c.params)
		}
		return &WeierstrassPoint{p: p, order: c.order}, nil
	default:
		return nil, errors.Wrapf(ErrInvalidPoint, "unexpected length %d", len(b))
	}
}

// WeierstrassPoint implements Point for the small curve.
type WeierstrassPoint struct {
	p     weierstrass.Point
	order *big.Int
}

// Unwrap returns the underlying small-curve point.
func (p *WeierstrassPoint) Unwrap() weierstrass.Point {
	return p.p
}

func (p *WeierstrassPoint) other(q Point) *WeierstrassPoint {
	o, ok := q.(*WeierstrassPoint)
	if !ok {
		panic(mismatch("weierstrass", q))
	}
	return o
}

// Bytes encodes the identity as 0x00 and an affine point as 0x04 followed by
// x and y as big-endian uint64.
func (p *WeierstrassPoint) Bytes() []byte {
	x, y, ok := p.p.Coords()
	if !ok {
		return []byte{tagInfinity}
	}
	out := make([]byte, 17)
	out[0] = tagAffine
	binary.BigEndian.PutUint64(out[1:9], uint64(x))
	binary.BigEndian.PutUint64(out[9:17], uint64(y))
	return out
}

func (p *WeierstrassPoint) Add(q Point) Point {
	return &WeierstrassPoint{p: p.p.Add(p.other(q).p), order: p.order}
}

func (p *WeierstrassPoint) Double() Point {
	return &WeierstrassPoint{p: p.p.Double(), order: p.order}
}

// ScalarMult multiplies by k directly when it fits in an int64 and by
// k mod #E(F_p) otherwise. The reduction is only sound for points on the
// curve.
func (p *WeierstrassPoint) ScalarMult(k *big.Int) Point {
	if !k.IsInt64() {
		k = new(big.Int).Mod(k, p.order)
	}
	return &WeierstrassPoint{p: p.p.ScalarMult(k.Int64()), order: p.order}
}

func (p *WeierstrassPoint) IsIdentity() bool {
	return p.p.IsInfinity()
}

func (p *WeierstrassPoint) Equal(q Point) bool {
	o, ok := q.(*WeierstrassPoint)
	return ok && p.p == o.p
}

func (p *WeierstrassPoint) String() string {
	return p.p.String()
}
