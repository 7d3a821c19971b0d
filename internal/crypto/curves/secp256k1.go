package curves

import (
	"encoding/hex"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
)

// Secp256k1Curve wraps the decred secp256k1 implementation.
type Secp256k1Curve struct{}

// NewSecp256k1 returns a new instance of the Secp256k1 curve wrapper
func NewSecp256k1() *Secp256k1Curve {
	return &Secp256k1Curve{}
}

func (c *Secp256k1Curve) Name() string { return "secp256k1" }

func (c *Secp256k1Curve) Order() *big.Int {
	return new(big.Int).Set(secp256k1.S256().Params().N)
}

func (c *Secp256k1Curve) BasePoint() Point {
	var one secp256k1.ModNScalar
	one.SetInt(1)
	var g secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&one, &g)
	return newSecp256k1Point(&g)
}

func (c *Secp256k1Curve) Identity() Point {
	return &Secp256k1Point{}
}

// NewPointFromBytes parses a SEC1 compressed or uncompressed encoding, or
// the single zero byte used for the identity.
func (c *Secp256k1Curve) NewPointFromBytes(b []byte) (Point, error) {
	if len(b) == 1 && b[0] == 0 {
		return c.Identity(), nil
	}
	pk, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPoint, err.Error())
	}
	var j secp256k1.JacobianPoint
	pk.AsJacobian(&j)
	return newSecp256k1Point(&j), nil
}

// Secp256k1Point keeps its Jacobian point in affine form (Z = 1), or all
// zero for the identity.
type Secp256k1Point struct {
	p secp256k1.JacobianPoint
}

func newSecp256k1Point(j *secp256k1.JacobianPoint) *Secp256k1Point {
	r := &Secp256k1Point{p: *j}
	if isJacobianInfinity(&r.p) {
		r.p = secp256k1.JacobianPoint{}
		return r
	}
	r.p.ToAffine()
	return r
}

func isJacobianInfinity(j *secp256k1.JacobianPoint) bool {
	return (j.X.IsZero() && j.Y.IsZero()) || j.Z.IsZero()
}

func (p *Secp256k1Point) other(q Point) *Secp256k1Point {
	o, ok := q.(*Secp256k1Point)
	if !ok {
		panic(mismatch("secp256k1", q))
	}
	return o
}

func (p *Secp256k1Point) Bytes() []byte {
	if p.IsIdentity() {
		return []byte{0}
	}
	return secp256k1.NewPublicKey(&p.p.X, &p.p.Y).SerializeCompressed()
}

func (p *Secp256k1Point) Add(q Point) Point {
	o := p.other(q)
	var r secp256k1.JacobianPoint
	secp256k1.AddNonConst(&p.p, &o.p, &r)
	return newSecp256k1Point(&r)
}

func (p *Secp256k1Point) Double() Point {
	if p.IsIdentity() {
		return p
	}
	var r secp256k1.JacobianPoint
	secp256k1.DoubleNonConst(&p.p, &r)
	return newSecp256k1Point(&r)
}

// ScalarMult reduces k modulo the group order before multiplying.
func (p *Secp256k1Point) ScalarMult(k *big.Int) Point {
	n := secp256k1.S256().Params().N
	kk := new(big.Int).Mod(k, n)
	var s secp256k1.ModNScalar
	s.SetByteSlice(kk.Bytes())
	var r secp256k1.JacobianPoint
	if s.IsZero() || p.IsIdentity() {
		return &Secp256k1Point{}
	}
	secp256k1.ScalarMultNonConst(&s, &p.p, &r)
	return newSecp256k1Point(&r)
}

func (p *Secp256k1Point) IsIdentity() bool {
	return isJacobianInfinity(&p.p)
}

func (p *Secp256k1Point) Equal(q Point) bool {
	o, ok := q.(*Secp256k1Point)
	if !ok {
		return false
	}
	if p.IsIdentity() || o.IsIdentity() {
		return p.IsIdentity() == o.IsIdentity()
	}
	return p.p.X.Equals(&o.p.X) && p.p.Y.Equals(&o.p.Y)
}

func (p *Secp256k1Point) String() string {
	if p.IsIdentity() {
		return "O"
	}
	return hex.EncodeToString(p.Bytes())
}
