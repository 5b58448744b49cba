package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/rulemend/internal/core/rules"
	"github.com/hay-kot/rulemend/internal/core/styles"
	"github.com/hay-kot/rulemend/pkg/iojson"
)

type CheckCmd struct {
	flags  *Flags
	format string
}

func NewCheckCmd(flags *Flags) *CheckCmd {
	return &CheckCmd{flags: flags}
}

func (cmd *CheckCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "check",
		Usage:       "Report front matter placement issues without fixing",
		UsageText:   "rulemend check [options]",
		Description: "Classifies every rule file and reports which ones a fix pass would rewrite. No file is modified or backed up.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *CheckCmd) run(ctx context.Context, c *cli.Command) error {
	runner, err := rules.NewRunner(rules.DefaultOptions(), log.Logger)
	if err != nil {
		return err
	}

	report, err := runner.Check()
	if err != nil {
		if errors.Is(err, rules.ErrDirMissing) {
			_, _ = fmt.Fprintln(os.Stderr, styles.TextErrorStyle.Render(err.Error()))
			return cli.Exit("", 1)
		}
		return err
	}

	if cmd.format == "json" {
		return cmd.outputJSON(c, report)
	}

	printReport(os.Stderr, "Rulemend Check", report)

	if n := report.NeedsFix(); n > 0 {
		hint := styles.TextMutedStyle.Render(fmt.Sprintf("Run 'rulemend fix' to repair %d file(s)", n))
		_, _ = fmt.Fprintln(os.Stderr)
		_, _ = fmt.Fprintln(os.Stderr, hint)
		return cli.Exit("", 1)
	}

	return nil
}

func (cmd *CheckCmd) outputJSON(c *cli.Command, report rules.Report) error {
	needsFix := report.NeedsFix()

	out := struct {
		Healthy  bool         `json:"healthy"`
		NeedsFix int          `json:"needs_fix"`
		Report   rules.Report `json:"report"`
	}{
		Healthy:  needsFix == 0 && report.Skipped == 0,
		NeedsFix: needsFix,
		Report:   report,
	}

	if err := iojson.WriteWith(c.Root().Writer, os.Stderr, out); err != nil {
		return err
	}

	if needsFix > 0 {
		return cli.Exit("", 1)
	}

	return nil
}
