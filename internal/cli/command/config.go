package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tsmap-go/internal/bench/config"
	"github.com/yndnr/tsmap-go/internal/cli/output"
	"github.com/yndnr/tsmap-go/internal/infra/confloader"
)

// loadConfig merges defaults, the config file, the environment and
// overrides, then verifies the result. Global flags that were set on the
// command line are added to overrides.
func loadConfig(c *cli.Context, overrides map[string]any) (*config.BenchConfig, error) {
	if overrides == nil {
		overrides = make(map[string]any)
	}
	for flag, key := range map[string]string{
		"log-level":  "log.level",
		"log-format": "log.format",
		"output":     "output.format",
	} {
		if c.IsSet(flag) {
			overrides[key] = c.String(flag)
		}
	}

	opts := []confloader.Option{confloader.WithOverrides(overrides)}
	if path := c.String("config"); path != "" {
		opts = append(opts, confloader.WithConfigFile(path))
	}

	cfg := config.Default()
	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, err
	}
	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ConfigCommand returns the config command group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the effective configuration",
				Action: configShowAction,
			},
			{
				Name:   "validate",
				Usage:  "Check the configuration and exit",
				Action: configValidateAction,
			},
		},
	}
}

func configShowAction(c *cli.Context) error {
	cfg, err := loadConfig(c, nil)
	if err != nil {
		return err
	}

	f, format, err := formatter(cfg)
	if err != nil {
		return err
	}
	if !structured(format) {
		// Nested sections do not fit text or table output.
		f = output.NewFormatter(output.FormatYAML)
	}
	return f.Format(c.App.Writer, cfg)
}

func configValidateAction(c *cli.Context) error {
	if _, err := loadConfig(c, nil); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "configuration OK")
	return nil
}
