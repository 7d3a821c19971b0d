// Package trace builds step sequences from a base point for a renderer to
// draw. It works with any point type that has an Add method returning the
// same type, so the small Weierstrass points and the curves.Point backends
// share one implementation.
package trace

// Adder is a group element that can be added to another element of the same
// type.
type Adder[P any] interface {
	Add(P) P
}

// Doublings returns the n points obtained by repeatedly doubling base:
// 2*base, 4*base, ..., 2^n*base. The base itself is not included.
//
// This is iterated doubling, not scalar multiplication: step k holds 2^k*P,
// never k*P.
func Doublings[P Adder[P]](base P, n int) []P {
	if n <= 0 {
		return nil
	}
	steps := make([]P, 0, n)
	cur := base
	for i := 0; i < n; i++ {
		cur = cur.Add(cur)
		steps = append(steps, cur)
	}
	return steps
}

// Multiples returns base, 2*base, ..., n*base by repeated addition.
func Multiples[P Adder[P]](base P, n int) []P {
	if n <= 0 {
		return nil
	}
	steps := make([]P, 0, n)
	cur := base
	steps = append(steps, cur)
	for i := 1; i < n; i++ {
		cur = cur.Add(base)
		steps = append(steps, cur)
	}
	return steps
}

// Walk calls visit for each doubling of base until visit returns false or
// n steps have been produced. It is the streaming form of Doublings.
func Walk[P Adder[P]](base P, n int, visit func(step int, p P) bool) {
	cur := base
	for i := 0; i < n; i++ {
		cur = cur.Add(cur)
		if !visit(i, cur) {
			return
		}
	}
}
