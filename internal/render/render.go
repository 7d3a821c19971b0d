// Package render encodes ecviz results for downstream renderers and humans.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/smallyu/go-ecviz/pkg/ecviz"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// ParseFormat accepts json, yaml/yml and text, case insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "text", "":
		return FormatText, nil
	}
	return "", errors.Errorf("unknown output format %q", s)
}

// Write encodes v in format f. Text output is only defined for
// *ecviz.Result and []ecviz.PointView; other values fall back to their
// fmt representation.
func Write(w io.Writer, f Format, v interface{}) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatText:
		return writeText(w, v)
	}
	return errors.Errorf("unknown output format %q", f)
}

func writeText(w io.Writer, v interface{}) error {
	switch v := v.(type) {
	case *ecviz.Result:
		return writeResult(w, v)
	case []ecviz.PointView:
		return writePoints(w, v)
	case ecviz.PointView:
		_, err := fmt.Fprintln(w, Point(v))
		return err
	default:
		_, err := fmt.Fprintln(w, v)
		return err
	}
}

// Point formats a point as "(x, y)" or "O".
func Point(p ecviz.PointView) string {
	if p.Infinity {
		return "O"
	}
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

func writeResult(w io.Writer, r *ecviz.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "curve:\t%s\n", r.Curve.Equation)
	fmt.Fprintf(tw, "group order:\t%d\n", r.Count)
	base := Point(r.Base)
	if !r.BaseOnCurve {
		base += " (not on curve)"
	} else {
		base += fmt.Sprintf(" (order %d)", r.BaseOrder)
	}
	fmt.Fprintf(tw, "base:\t%s\n", base)
	fmt.Fprintf(tw, "points:\t%d\n", len(r.Points))
	fmt.Fprintf(tw, "steps:\t%d (%s)\n", len(r.Steps), r.Mode)
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.Steps) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	for i, s := range r.Steps {
		fmt.Fprintf(tw, "%s\t%s\t\n", stepLabel(r.Mode, i), Point(s))
	}
	return tw.Flush()
}

// stepLabel names step i: doubling step i is 2^(i+1)*P, multiple step i is
// (i+1)*P.
func stepLabel(mode ecviz.StepMode, i int) string {
	if mode == ecviz.ModeMultiples {
		return fmt.Sprintf("%d*P", i+1)
	}
	return fmt.Sprintf("2^%d*P", i+1)
}

func writePoints(w io.Writer, points []ecviz.PointView) error {
	for _, p := range points {
		if _, err := fmt.Fprintln(w, Point(p)); err != nil {
			return err
		}
	}
	return nil
}
