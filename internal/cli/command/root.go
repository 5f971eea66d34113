package command

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tsmap-go/internal/bench/config"
	"github.com/yndnr/tsmap-go/internal/cli/output"
	"github.com/yndnr/tsmap-go/internal/infra/buildinfo"
	"github.com/yndnr/tsmap-go/internal/telemetry/logger"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "tsmap-bench",
		Usage:   "Exercise a fixed-capacity concurrent int map",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			RunCommand(),
			DemoCommand(),
			ConfigCommand(),
			VersionCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML configuration file",
			EnvVars: []string{"TSMAP_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: text, table, json, yaml",
		},
	}
}

// newLogger builds the command logger. Logs go to the app's error writer so
// stdout only carries results.
func newLogger(c *cli.Context, cfg config.LogSection) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Level,
		Format: cfg.Format,
		Output: errWriter(c),
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)
	return log, nil
}

// commandContext returns the command's context carrying log.
func commandContext(c *cli.Context, log logger.Logger) context.Context {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return logger.WithLogger(ctx, log)
}

func errWriter(c *cli.Context) io.Writer {
	if c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return cli.ErrWriter
}

// formatter returns the formatter for the configured output format.
func formatter(cfg *config.BenchConfig) (output.Formatter, output.Format, error) {
	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, "", err
	}
	return output.NewFormatter(format), format, nil
}

// structured reports whether the format is meant for machines.
func structured(format output.Format) bool {
	return format == output.FormatJSON || format == output.FormatYAML
}
