package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tsmap-go/internal/cli/output"
	"github.com/yndnr/tsmap-go/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build information",
		Action: func(c *cli.Context) error {
			format, err := output.ParseFormat(c.String("output"))
			if err != nil {
				return err
			}
			switch format {
			case output.FormatJSON, output.FormatYAML, output.FormatTable:
				return output.NewFormatter(format).Format(c.App.Writer, buildinfo.Get())
			default:
				_, err := fmt.Fprintf(c.App.Writer, "%s %s\n", c.App.Name, buildinfo.String())
				return err
			}
		},
	}
}
