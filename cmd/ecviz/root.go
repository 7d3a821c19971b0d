package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smallyu/go-ecviz/internal/config"
	"github.com/smallyu/go-ecviz/internal/logging"
	"github.com/smallyu/go-ecviz/internal/render"
	"github.com/smallyu/go-ecviz/pkg/ecviz"
)

// app carries state shared by all subcommands once the persistent flags
// have been processed.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	output     string

	logger *zap.Logger
	format render.Format
	cfg    ecviz.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "ecviz",
		Short: "Explore points and the group law of a small elliptic curve.",
		Long: `ecviz enumerates the points of y^2 = x^3 + ax + b over a small prime
field and traces iterated doublings of a base point. Results are printed as
text, JSON or YAML for a renderer to draw.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	pf.StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	pf.StringVar(&a.logFormat, "log-format", logging.FormatConsole, "log format: console or json")
	pf.StringVarP(&a.output, "output", "o", string(render.FormatText), "output format: text, json or yaml")
	config.RegisterFlags(pf)

	root.AddCommand(
		a.runCmd(),
		a.pointsCmd(),
		a.stepsCmd(),
		a.addCmd(),
		a.inverseCmd(),
		a.countCmd(),
		a.orderCmd(),
		a.traceCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	logger, err := logging.New(logging.Config{
		Level:  a.logLevel,
		Format: a.logFormat,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.logger = logger

	a.format, err = render.ParseFormat(a.output)
	if err != nil {
		return err
	}

	a.cfg, err = config.Load(a.configPath, cmd.Flags())
	if err != nil {
		return errors.WithMessage(err, "load configuration")
	}
	a.logger.Debug("configuration loaded", zap.Any("config", a.cfg))
	return nil
}

func (a *app) write(cmd *cobra.Command, v interface{}) error {
	return render.Write(cmd.OutOrStdout(), a.format, v)
}
