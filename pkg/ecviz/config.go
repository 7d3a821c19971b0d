package ecviz

import (
	"github.com/pkg/errors"

	"github.com/smallyu/go-ecviz/internal/crypto/field"
	"github.com/smallyu/go-ecviz/internal/crypto/weierstrass"
)

// StepMode selects how the step sequence is built from the base point.
type StepMode string

const (
	// ModeDoubling records 2P, 4P, 8P, ... as successive doublings.
	ModeDoubling StepMode = "doubling"
	// ModeMultiples records P, 2P, 3P, ... by repeated addition (k * P).
	ModeMultiples StepMode = "multiples"
)

// MaxIterations bounds the number of steps a single run may produce.
const MaxIterations = 1 << 20

// Config holds the parameters of one run.
type Config struct {
	A int64 `mapstructure:"a" json:"a" yaml:"a"`
	B int64 `mapstructure:"b" json:"b" yaml:"b"`
	P int64 `mapstructure:"p" json:"p" yaml:"p"`

	BaseX int64 `mapstructure:"base_x" json:"base_x" yaml:"base_x"`
	BaseY int64 `mapstructure:"base_y" json:"base_y" yaml:"base_y"`

	// Iterations is the number of steps to record.
	Iterations int      `mapstructure:"iterations" json:"iterations" yaml:"iterations"`
	Mode       StepMode `mapstructure:"mode" json:"mode" yaml:"mode"`

	// Workers > 1 enumerates rows of x concurrently. Output order is the
	// same either way.
	Workers int `mapstructure:"workers" json:"workers" yaml:"workers"`

	// StrictBase rejects base points that do not satisfy the curve
	// equation. By default they are accepted and flagged in the result.
	StrictBase bool `mapstructure:"strict_base" json:"strict_base" yaml:"strict_base"`

	// SkipPoints leaves Result.Points empty, for moduli where the O(p²)
	// enumeration is too slow. The O(p) point count still runs.
	SkipPoints bool `mapstructure:"skip_points" json:"skip_points" yaml:"skip_points"`
}

// DefaultConfig returns the classic demo: y^2 = x^3 + x + 1 over F_599,
// doubling (5, 1) twenty-one times.
func DefaultConfig() Config {
	return Config{
		A:          1,
		B:          1,
		P:          599,
		BaseX:      5,
		BaseY:      1,
		Iterations: 21,
		Mode:       ModeDoubling,
		Workers:    1,
	}
}

// Params validates the curve part of the configuration.
func (c Config) Params() (weierstrass.Params, error) {
	params, err := weierstrass.NewParams(c.A, c.B, c.P)
	switch {
	case err == nil:
		return params, nil
	case errors.Is(err, field.ErrInvalidModulus):
		return weierstrass.Params{}, errors.Wrapf(ErrInvalidModulus, "p=%d", c.P)
	case errors.Is(err, weierstrass.ErrSingularCurve):
		return weierstrass.Params{}, errors.Wrapf(ErrSingularCurve, "a=%d b=%d p=%d", c.A, c.B, c.P)
	default:
		return weierstrass.Params{}, errors.Wrap(err, "curve parameters")
	}
}

// Validate checks every field of the configuration.
func (c Config) Validate() error {
	params, err := c.Params()
	if err != nil {
		return err
	}
	if c.Iterations < 0 || c.Iterations > MaxIterations {
		return errors.Wrapf(ErrInvalidIterations, "%d not in [0, %d]", c.Iterations, MaxIterations)
	}
	switch c.Mode {
	case "", ModeDoubling, ModeMultiples:
	default:
		return errors.Wrapf(ErrInvalidMode, "%q", c.Mode)
	}
	// Repeated addition of an off-curve point can hit a vertical secant
	// that is not an inverse pair, so multiples always need a curve point.
	if c.StrictBase || c.Mode == ModeMultiples {
		base := weierstrass.NewPoint(c.BaseX, c.BaseY, params)
		if !base.IsOnCurve() {
			return errors.Wrapf(ErrBaseNotOnCurve, "%s on %s", base, params)
		}
	}
	return nil
}
