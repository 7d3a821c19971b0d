package main

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smallyu/go-ecviz/internal/crypto/curves"
	"github.com/smallyu/go-ecviz/internal/crypto/field"
	"github.com/smallyu/go-ecviz/internal/crypto/weierstrass"
	"github.com/smallyu/go-ecviz/internal/render"
	"github.com/smallyu/go-ecviz/internal/trace"
	"github.com/smallyu/go-ecviz/pkg/ecviz"
)

func (a *app) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Compute the full result: curve points and steps.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := ecviz.Compute(cmd.Context(), a.cfg, ecviz.WithLogger(a.logger))
			if err != nil {
				return err
			}
			return a.write(cmd, res)
		},
	}
}

func (a *app) pointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "points",
		Short: "List every affine point of the curve in x, then y order.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := a.cfg.Params()
			if err != nil {
				return err
			}
			points, err := weierstrass.FindPointsParallel(cmd.Context(), params, a.cfg.Workers)
			if err != nil {
				return err
			}
			a.logger.Info("enumerated points", zap.Stringer("curve", params), zap.Int("count", len(points)))
			return a.write(cmd, ecviz.Views(points))
		},
	}
}

func (a *app) stepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "List the steps from the base point without enumerating the curve.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			cfg.SkipPoints = true
			res, err := ecviz.Compute(cmd.Context(), cfg, ecviz.WithLogger(a.logger))
			if err != nil {
				return err
			}
			return a.write(cmd, res.Steps)
		},
	}
}

func (a *app) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add X1 Y1 X2 Y2",
		Short: "Add two points of the curve.",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := a.cfg.Params()
			if err != nil {
				return err
			}
			v, err := parseInts(args)
			if err != nil {
				return err
			}
			p := weierstrass.NewPoint(v[0], v[1], params)
			q := weierstrass.NewPoint(v[2], v[3], params)
			for _, pt := range []weierstrass.Point{p, q} {
				if !pt.IsOnCurve() {
					return errors.Wrapf(ecviz.ErrBaseNotOnCurve, "%s on %s", pt, params)
				}
			}
			return a.write(cmd, ecviz.View(weierstrass.Add(p, q)))
		},
	}
}

func (a *app) inverseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inverse A",
		Short: "Print the multiplicative inverse of A modulo p.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := a.cfg.Params()
			if err != nil {
				return err
			}
			v, err := parseInts(args)
			if err != nil {
				return err
			}
			r, err := field.TryInverse(v[0], params.P)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), r)
			return err
		},
	}
}

func (a *app) countCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print #E(F_p), the number of points including infinity.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := a.cfg.Params()
			if err != nil {
				return err
			}
			n, err := weierstrass.CountPointsContext(cmd.Context(), params)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), n)
			return err
		},
	}
}

func (a *app) orderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "order X Y",
		Short: "Print the order of a point of the curve.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := a.cfg.Params()
			if err != nil {
				return err
			}
			v, err := parseInts(args)
			if err != nil {
				return err
			}
			n, err := weierstrass.PointOrderContext(cmd.Context(), weierstrass.NewPoint(v[0], v[1], params))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), n)
			return err
		},
	}
}

func (a *app) traceCmd() *cobra.Command {
	var curveName string
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Double the generator of a curve backend and print encoded points.",
		Long: `trace runs the same iterated doubling as "steps" through the generic curve
backends and prints each point in the curve's native encoding. --curve picks
secp256k1, ed25519, or weierstrass for the curve and base point given by
-a, -b, -p, --base-x and --base-y.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			curve, err := a.traceCurve(cmd.Context(), curveName)
			if err != nil {
				return err
			}
			a.logger.Info("tracing doublings", zap.String("curve", curve.Name()), zap.Int("steps", a.cfg.Iterations))

			if a.format == render.FormatText {
				w := cmd.OutOrStdout()
				var werr error
				trace.Walk(curve.BasePoint(), a.cfg.Iterations, func(i int, p curves.Point) bool {
					_, werr = fmt.Fprintf(w, "%s\t%s\n", powerOfTwo(i+1), p)
					return werr == nil
				})
				return werr
			}

			steps := trace.Doublings(curve.BasePoint(), a.cfg.Iterations)
			out := make([]traceStep, len(steps))
			for i, p := range steps {
				out[i] = traceStep{Scalar: powerOfTwo(i + 1), Point: p.String()}
			}
			return a.write(cmd, out)
		},
	}
	cmd.Flags().StringVar(&curveName, "curve", "secp256k1", "curve to trace: secp256k1, ed25519 or weierstrass")
	return cmd
}

// traceCurve resolves --curve. "weierstrass" wraps the configured small
// curve and base point; other names go to the production registry.
func (a *app) traceCurve(ctx context.Context, name string) (curves.Curve, error) {
	if !strings.EqualFold(name, "weierstrass") {
		return curves.ByName(name)
	}
	params, err := a.cfg.Params()
	if err != nil {
		return nil, err
	}
	c, err := curves.NewWeierstrass(ctx, params, weierstrass.NewPoint(a.cfg.BaseX, a.cfg.BaseY, params))
	if err != nil {
		return nil, err
	}
	return c, nil
}

func powerOfTwo(k int) string {
	return new(big.Int).Lsh(big.NewInt(1), uint(k)).String()
}

type traceStep struct {
	Scalar string `json:"scalar" yaml:"scalar"`
	Point  string `json:"point" yaml:"point"`
}

func parseInts(args []string) ([]int64, error) {
	out := make([]int64, len(args))
	for i, s := range args {
		v, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i+1)
		}
		out[i] = v
	}
	return out, nil
}
