// Package ecviz computes the data behind an elliptic curve visualization:
// every point of a small curve and a sequence of steps from a base point.
// It has no drawing logic; a renderer consumes Result.
package ecviz

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/smallyu/go-ecviz/internal/crypto/weierstrass"
	"github.com/smallyu/go-ecviz/internal/trace"
)

// largeModulus is where enumeration starts to take noticeable time.
const largeModulus = 1 << 14

// PointView is the renderer-facing form of a point. For the point at
// infinity X and Y are zero; otherwise both lie in [0, p).
type PointView struct {
	Infinity bool  `json:"infinity" yaml:"infinity"`
	X        int64 `json:"x" yaml:"x"`
	Y        int64 `json:"y" yaml:"y"`
}

// View converts a curve point to its PointView.
func View(p weierstrass.Point) PointView {
	x, y, ok := p.Coords()
	if !ok {
		return PointView{Infinity: true}
	}
	return PointView{X: x, Y: y}
}

// Views converts a slice of points.
func Views(points []weierstrass.Point) []PointView {
	out := make([]PointView, len(points))
	for i, p := range points {
		out[i] = View(p)
	}
	return out
}

// CurveView describes the curve of a result.
type CurveView struct {
	A        int64  `json:"a" yaml:"a"`
	B        int64  `json:"b" yaml:"b"`
	P        int64  `json:"p" yaml:"p"`
	Equation string `json:"equation" yaml:"equation"`
}

// Result is everything a renderer needs to draw one run.
type Result struct {
	Curve       CurveView `json:"curve" yaml:"curve"`
	Mode        StepMode  `json:"mode" yaml:"mode"`
	Base        PointView `json:"base" yaml:"base"`
	BaseOnCurve bool      `json:"base_on_curve" yaml:"base_on_curve"`
	// BaseOrder is the order of the base point, zero when it is off the
	// curve.
	BaseOrder int64 `json:"base_order,omitempty" yaml:"base_order,omitempty"`
	// Count is #E(F_p), including the point at infinity.
	Count  int64       `json:"count" yaml:"count"`
	Points []PointView `json:"points" yaml:"points"`
	Steps  []PointView `json:"steps" yaml:"steps"`
}

// Last returns the final step, or false if there are none.
func (r *Result) Last() (PointView, bool) {
	if len(r.Steps) == 0 {
		return PointView{}, false
	}
	return r.Steps[len(r.Steps)-1], true
}

type options struct {
	logger *zap.Logger
}

// Option configures Compute.
type Option func(*options)

// WithLogger sets the logger used for progress and warnings.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Compute validates cfg, enumerates the curve and builds the step sequence.
// Counting the group and finding the base order cost O(p) and run even with
// SkipPoints; all three long loops stop when ctx is done.
func Compute(ctx context.Context, cfg Config, opts ...Option) (*Result, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	params, _ := cfg.Params()
	if cfg.Mode == "" {
		cfg.Mode = ModeDoubling
	}
	log = log.With(zap.Stringer("curve", params))

	base := weierstrass.NewPoint(cfg.BaseX, cfg.BaseY, params)
	res := &Result{
		Curve: CurveView{
			A:        params.A,
			B:        params.B,
			P:        params.P,
			Equation: params.String(),
		},
		Mode:        cfg.Mode,
		Base:        View(base),
		BaseOnCurve: base.IsOnCurve(),
	}

	count, err := weierstrass.CountPointsContext(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "count points")
	}
	res.Count = count

	if res.BaseOnCurve {
		order, err := weierstrass.PointOrderContext(ctx, base)
		if err != nil {
			return nil, errors.Wrap(err, "base point order")
		}
		res.BaseOrder = order
	} else {
		log.Warn("base point does not satisfy the curve equation", zap.Stringer("base", base))
	}

	if !cfg.SkipPoints {
		if params.P > largeModulus {
			log.Warn("enumerating a large field, this is O(p^2)", zap.Int64("p", params.P))
		}
		points, err := weierstrass.FindPointsParallel(ctx, params, cfg.Workers)
		if err != nil {
			return nil, errors.Wrap(err, "enumerate points")
		}
		res.Points = Views(points)
		log.Debug("enumerated curve points", zap.Int("points", len(points)))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var steps []weierstrass.Point
	switch cfg.Mode {
	case ModeMultiples:
		steps = trace.Multiples(base, cfg.Iterations)
	default:
		steps = trace.Doublings(base, cfg.Iterations)
	}
	res.Steps = Views(steps)
	log.Debug("computed steps", zap.String("mode", string(cfg.Mode)), zap.Int("steps", len(steps)))

	return res, nil
}
