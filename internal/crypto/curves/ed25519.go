package curves

import (
	"encoding/hex"
	"math/big"

	"filippo.io/edwards25519"
	"github.com/pkg/errors"
)

// l = 2^252 + 27742317777372353535851937790883648493
var ed25519Order, _ = new(big.Int).SetString("72370055773322622139731865630429942408571163593799076060019509382854542509893", 10)

type Ed25519Curve struct{}

func NewEd25519() *Ed25519Curve {
	return &Ed25519Curve{}
}

func (c *Ed25519Curve) Name() string {
	return "ed25519"
}

func (c *Ed25519Curve) Order() *big.Int {
	return new(big.Int).Set(ed25519Order)
}

func (c *Ed25519Curve) BasePoint() Point {
	return &Ed25519Point{p: edwards25519.NewGeneratorPoint()}
}

func (c *Ed25519Curve) Identity() Point {
	return &Ed25519Point{p: edwards25519.NewIdentityPoint()}
}

func (c *Ed25519Curve) NewPointFromBytes(b []byte) (Point, error) {
	p, err := edwards25519.NewIdentityPoint().SetBytes(b)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPoint, err.Error())
	}
	return &Ed25519Point{p: p}, nil
}

// ed25519Scalar converts k mod l to an edwards25519 scalar.
func ed25519Scalar(k *big.Int) *edwards25519.Scalar {
	// edwards25519 uses little-endian, big.Int.Bytes() is big-endian.
	n := new(big.Int).Mod(k, ed25519Order)
	bytes := n.Bytes()

	var buf [32]byte
	for i := 0; i < len(bytes); i++ {
		buf[len(bytes)-1-i] = bytes[i]
	}

	s, err := edwards25519.NewScalar().SetCanonicalBytes(buf[:])
	if err != nil {
		// n < l, so the encoding is always canonical
		panic(err)
	}
	return s
}

// Ed25519Point implements Point
type Ed25519Point struct {
	p *edwards25519.Point
}

func (p *Ed25519Point) other(q Point) *Ed25519Point {
	o, ok := q.(*Ed25519Point)
	if !ok {
		panic(mismatch("ed25519", q))
	}
	return o
}

func (p *Ed25519Point) Bytes() []byte {
	return p.p.Bytes()
}

func (p *Ed25519Point) Add(other Point) Point {
	o := p.other(other)
	res := edwards25519.NewIdentityPoint().Add(p.p, o.p)
	return &Ed25519Point{p: res}
}

func (p *Ed25519Point) Double() Point {
	return p.Add(p)
}

func (p *Ed25519Point) ScalarMult(k *big.Int) Point {
	res := edwards25519.NewIdentityPoint().ScalarMult(ed25519Scalar(k), p.p)
	return &Ed25519Point{p: res}
}

func (p *Ed25519Point) IsIdentity() bool {
	return p.p.Equal(edwards25519.NewIdentityPoint()) == 1
}

func (p *Ed25519Point) Equal(q Point) bool {
	o, ok := q.(*Ed25519Point)
	if !ok {
		return false
	}
	return p.p.Equal(o.p) == 1
}

func (p *Ed25519Point) String() string {
	return hex.EncodeToString(p.Bytes())
}
