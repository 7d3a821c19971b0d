package benchmark

import (
	"context"
	"fmt"
	"math/big"
	"runtime"
	"testing"

	"github.com/smallyu/go-ecviz/internal/crypto/curves"
	"github.com/smallyu/go-ecviz/internal/crypto/field"
	"github.com/smallyu/go-ecviz/internal/crypto/weierstrass"
	"github.com/smallyu/go-ecviz/internal/trace"
	"github.com/smallyu/go-ecviz/pkg/ecviz"
)

var moduli = []int64{97, 599, 2003}

func BenchmarkInverse(b *testing.B) {
	for i := 0; i < b.N; i++ {
		field.Inverse(int64(i%598)+1, 599)
	}
}

func BenchmarkAdd(b *testing.B) {
	params := weierstrass.MustParams(1, 1, 599)
	g := weierstrass.NewPoint(0, 1, params)
	h := g.Double()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		weierstrass.Add(g, h)
	}
}

func BenchmarkFindPoints(b *testing.B) {
	for _, p := range moduli {
		params := weierstrass.MustParams(1, 1, p)
		b.Run(fmt.Sprintf("p=%d", p), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				weierstrass.FindPoints(params)
			}
		})
	}
}

func BenchmarkFindPointsParallel(b *testing.B) {
	workers := runtime.GOMAXPROCS(0)
	for _, p := range moduli {
		params := weierstrass.MustParams(1, 1, p)
		b.Run(fmt.Sprintf("p=%d/workers=%d", p, workers), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := weierstrass.FindPointsParallel(context.Background(), params, workers); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCountPoints(b *testing.B) {
	params := weierstrass.MustParams(1, 1, 2003)
	for i := 0; i < b.N; i++ {
		weierstrass.CountPoints(params)
	}
}

func BenchmarkDoublings(b *testing.B) {
	params := weierstrass.MustParams(1, 1, 599)
	base := weierstrass.NewPoint(5, 1, params)

	b.Run("weierstrass", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			trace.Doublings(base, 21)
		}
	})

	for _, name := range curves.Names() {
		curve, err := curves.ByName(name)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(name, func(b *testing.B) {
			g := curve.BasePoint()
			for i := 0; i < b.N; i++ {
				trace.Doublings(g, 21)
			}
		})
	}
}

func BenchmarkScalarMult(b *testing.B) {
	k := new(big.Int).Lsh(big.NewInt(1), 21)
	for _, name := range curves.Names() {
		curve, err := curves.ByName(name)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(name, func(b *testing.B) {
			g := curve.BasePoint()
			for i := 0; i < b.N; i++ {
				g.ScalarMult(k)
			}
		})
	}
}

func BenchmarkCompute(b *testing.B) {
	cfg := ecviz.DefaultConfig()
	for i := 0; i < b.N; i++ {
		if _, err := ecviz.Compute(context.Background(), cfg); err != nil {
			b.Fatal(err)
		}
	}
}
