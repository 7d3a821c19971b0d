package polynomial

import (
	"github.com/smallyu/go-ecviz/internal/crypto/field"
)

// Polynomial represents a polynomial f(x) = a_0 + a_1*x + ... + a_t*x^t
// over the prime field F_p.
type Polynomial struct {
	Coefficients []int64
	Modulus      int64
}

// New builds a polynomial from its coefficients in ascending degree order.
// Coefficients are reduced into [0, p). Trailing zero coefficients are kept
// so that Degree reflects what the caller asked for.
func New(p int64, coeffs ...int64) *Polynomial {
	reduced := make([]int64, len(coeffs))
	for i, c := range coeffs {
		reduced[i] = field.Reduce(c, p)
	}
	if len(reduced) == 0 {
		reduced = []int64{0}
	}
	return &Polynomial{
		Coefficients: reduced,
		Modulus:      p,
	}
}

// WeierstrassRHS returns x^3 + a*x + b over F_p.
func WeierstrassRHS(a, b, p int64) *Polynomial {
	return New(p, b, a, 0, 1)
}

// Degree returns the nominal degree (len(Coefficients) - 1).
func (p *Polynomial) Degree() int {
	return len(p.Coefficients) - 1
}

// Evaluate calculates f(x) mod p
func (p *Polynomial) Evaluate(x int64) int64 {
	// Horner's method
	// result = a_t
	// for i = t-1 down to 0:
	//   result = result * x + a_i

	q := p.Modulus
	x = field.Reduce(x, q)
	degree := len(p.Coefficients) - 1
	result := p.Coefficients[degree]

	for i := degree - 1; i >= 0; i-- {
		result = field.Add(field.Mul(result, x, q), p.Coefficients[i], q)
	}

	return result
}
