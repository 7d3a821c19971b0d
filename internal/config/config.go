// Package config loads an ecviz run configuration from defaults, an
// optional YAML file, ECVIZ_* environment variables and command line flags,
// in increasing order of precedence.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/smallyu/go-ecviz/pkg/ecviz"
)

// EnvPrefix is prepended to upper-cased keys, e.g. ECVIZ_BASE_X.
const EnvPrefix = "ECVIZ"

// keys maps configuration keys to the flag names that may override them.
var keys = map[string]string{
	"a":           "a",
	"b":           "b",
	"p":           "p",
	"base_x":      "base-x",
	"base_y":      "base-y",
	"iterations":  "iterations",
	"mode":        "mode",
	"workers":     "workers",
	"strict_base": "strict-base",
	"skip_points": "skip-points",
}

// Load builds a validated configuration. path may be empty. flags may be
// nil; only flags that were explicitly set override file and environment
// values.
func Load(path string, flags *pflag.FlagSet) (ecviz.Config, error) {
	v := viper.New()
	setDefaults(v, ecviz.DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return ecviz.Config{}, errors.Wrapf(err, "read config %s", path)
		}
	}

	if flags != nil {
		for key, name := range keys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return ecviz.Config{}, errors.Wrapf(err, "bind flag --%s", name)
			}
		}
	}

	var cfg ecviz.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return ecviz.Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return ecviz.Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d ecviz.Config) {
	v.SetDefault("a", d.A)
	v.SetDefault("b", d.B)
	v.SetDefault("p", d.P)
	v.SetDefault("base_x", d.BaseX)
	v.SetDefault("base_y", d.BaseY)
	v.SetDefault("iterations", d.Iterations)
	v.SetDefault("mode", string(d.Mode))
	v.SetDefault("workers", d.Workers)
	v.SetDefault("strict_base", d.StrictBase)
	v.SetDefault("skip_points", d.SkipPoints)
}

// RegisterFlags adds the configuration flags to fs. Flag defaults are
// informational; unset flags never override other sources.
func RegisterFlags(fs *pflag.FlagSet) {
	d := ecviz.DefaultConfig()
	fs.Int64P("a", "a", d.A, "curve coefficient a")
	fs.Int64P("b", "b", d.B, "curve coefficient b")
	fs.Int64P("p", "p", d.P, "prime field modulus")
	fs.Int64("base-x", d.BaseX, "x coordinate of the base point")
	fs.Int64("base-y", d.BaseY, "y coordinate of the base point")
	fs.IntP("iterations", "n", d.Iterations, "number of steps to compute")
	fs.String("mode", string(d.Mode), "step mode: doubling or multiples")
	fs.Int("workers", d.Workers, "goroutines used for point enumeration")
	fs.Bool("strict-base", d.StrictBase, "reject a base point that is not on the curve")
	fs.Bool("skip-points", d.SkipPoints, "do not enumerate curve points")
}
