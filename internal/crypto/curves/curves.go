package curves

import (
	"math/big"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownCurve is returned by ByName for an unregistered name.
	ErrUnknownCurve = errors.New("curves: unknown curve")
	// ErrInvalidPoint is returned when bytes do not decode to a curve point.
	ErrInvalidPoint = errors.New("curves: invalid point encoding")
	// ErrPointMismatch is returned, or used as the panic value, when a point
	// from one backend meets another.
	ErrPointMismatch = errors.New("curves: point belongs to a different curve")
)

// Point represents a point on an elliptic curve.
// It abstracts away the underlying coordinate system (Affine, Jacobian, Edwards).
type Point interface {
	// Bytes returns the serialization of the point. The identity encodes as
	// a single zero byte on every backend that has no native encoding for it.
	Bytes() []byte

	// Add adds this point to another point of the same curve.
	Add(p Point) Point

	// Double returns p + p.
	Double() Point

	// ScalarMult multiplies this point by an integer.
	ScalarMult(k *big.Int) Point

	// IsIdentity reports whether the point is the group identity.
	IsIdentity() bool

	// Equal reports whether both points are the same element.
	Equal(p Point) bool

	String() string
}

// Curve is a prime-order (or small cofactor) group of curve points with a
// distinguished generator.
type Curve interface {
	// Name returns the name of the curve.
	Name() string

	// BasePoint returns the generator point G.
	BasePoint() Point

	// Identity returns the neutral element.
	Identity() Point

	// NewPointFromBytes deserializes a point.
	NewPointFromBytes(b []byte) (Point, error)

	// Order returns the order of the base point (group order).
	Order() *big.Int
}

var registry = map[string]func() Curve{
	"secp256k1": func() Curve { return NewSecp256k1() },
	"ed25519":   func() Curve { return NewEd25519() },
}

// ByName returns one of the named production curves. Names are matched case
// insensitively.
func ByName(name string) (Curve, error) {
	ctor, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCurve, "%q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return ctor(), nil
}

// Names lists the curves accepted by ByName.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func mismatch(want string, got Point) error {
	return errors.Wrapf(ErrPointMismatch, "want %s, got %T", want, got)
}
