// Package field implements arithmetic in the prime field F_p for moduli that
// fit in a machine word.
//
// Every function returns values normalized into [0, p). Callers are expected
// to pass a prime modulus in [2, MaxModulus]; see ValidateModulus.
package field

import (
	"math/big"
	"math/bits"

	"github.com/pkg/errors"
)

// MaxModulus is the largest modulus supported. Sums of two reduced elements
// must not overflow int64.
const MaxModulus int64 = 1<<62 - 1

var (
	// ErrNotInvertible is returned by TryInverse when gcd(a, p) != 1.
	ErrNotInvertible = errors.New("field: element is not invertible")
	// ErrInvalidModulus is returned by ValidateModulus.
	ErrInvalidModulus = errors.New("field: invalid modulus")
)

// Reduce maps a into [0, p). Go's % keeps the sign of the dividend, so a
// negative remainder is shifted up by p.
func Reduce(a, p int64) int64 {
	r := a % p
	if r < 0 {
		r += p
	}
	return r
}

// Add returns a + b mod p.
func Add(a, b, p int64) int64 {
	return Reduce(Reduce(a, p)+Reduce(b, p), p)
}

// Sub returns a - b mod p.
func Sub(a, b, p int64) int64 {
	return Reduce(Reduce(a, p)-Reduce(b, p), p)
}

// Neg returns -a mod p.
func Neg(a, p int64) int64 {
	return Reduce(-Reduce(a, p), p)
}

// Mul returns a * b mod p using a 128-bit intermediate product.
func Mul(a, b, p int64) int64 {
	x, y := uint64(Reduce(a, p)), uint64(Reduce(b, p))
	hi, lo := bits.Mul64(x, y)
	// hi < p because x, y < p
	_, rem := bits.Div64(hi, lo, uint64(p))
	return int64(rem)
}

// Exp returns base^e mod p by square-and-multiply. Negative exponents are
// computed through the inverse of base.
func Exp(base, e, p int64) int64 {
	if e < 0 {
		base = Inverse(base, p)
		e = -e
	}
	result := Reduce(1, p)
	b := Reduce(base, p)
	for e > 0 {
		if e&1 == 1 {
			result = Mul(result, b, p)
		}
		b = Mul(b, b, p)
		e >>= 1
	}
	return result
}

// ExtendedGCD returns g = gcd(a, b) together with Bézout coefficients x, y
// such that a*x + b*y = g.
func ExtendedGCD(a, b int64) (g, x, y int64) {
	if a == 0 {
		return b, 0, 1
	}
	g, x1, y1 := ExtendedGCD(b%a, a)
	return g, y1 - (b/a)*x1, x1
}

// TryInverse returns r in [0, p) with a*r ≡ 1 (mod p), or ErrNotInvertible
// when gcd(a, p) != 1.
func TryInverse(a, p int64) (int64, error) {
	g, x, _ := ExtendedGCD(Reduce(a, p), p)
	if g != 1 {
		return 0, errors.Wrapf(ErrNotInvertible, "%d mod %d (gcd %d)", a, p, g)
	}
	return Reduce(x, p), nil
}

// Inverse returns the multiplicative inverse of a modulo p.
//
// A non-invertible argument means the caller broke an arithmetic invariant
// (for a prime p, a ≡ 0), so Inverse panics instead of returning garbage.
func Inverse(a, p int64) int64 {
	r, err := TryInverse(a, p)
	if err != nil {
		panic(err)
	}
	return r
}

// Div returns a / b mod p.
func Div(a, b, p int64) int64 {
	return Mul(a, Inverse(b, p), p)
}

// IsPrime reports whether p is prime. ProbablyPrime(0) runs Baillie-PSW,
// which is exact for every int64.
func IsPrime(p int64) bool {
	if p < 2 {
		return false
	}
	return big.NewInt(p).ProbablyPrime(0)
}

// ValidateModulus checks that p is a prime in [2, MaxModulus].
func ValidateModulus(p int64) error {
	if p < 2 || p > MaxModulus {
		return errors.Wrapf(ErrInvalidModulus, "%d out of range [2, %d]", p, MaxModulus)
	}
	if !IsPrime(p) {
		return errors.Wrapf(ErrInvalidModulus, "%d is not prime", p)
	}
	return nil
}

// IsQuadraticResidue reports whether a is a non-zero square mod the odd
// prime p (Euler's criterion). Zero is reported separately by the caller.
func IsQuadraticResidue(a, p int64) bool {
	a = Reduce(a, p)
	if a == 0 {
		return false
	}
	if p == 2 {
		return true
	}
	return Exp(a, (p-1)/2, p) == 1
}

// Legendre returns the Legendre symbol (a|p) as -1, 0 or 1.
func Legendre(a, p int64) int {
	if Reduce(a, p) == 0 {
		return 0
	}
	if IsQuadraticResidue(a, p) {
		return 1
	}
	return -1
}
