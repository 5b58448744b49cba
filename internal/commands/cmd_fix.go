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
)

type FixCmd struct {
	flags *Flags
}

func NewFixCmd(flags *Flags) *FixCmd {
	return &FixCmd{flags: flags}
}

func (cmd *FixCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "fix",
		Usage:       "Repair front matter placement in rule files",
		UsageText:   "rulemend fix",
		Description: "Rewrites files whose front matter block is misplaced or unwrapped so the block appears first. A .backup copy of each rewritten file is created beside it.",
		Action:      cmd.Run,
	})
	return app
}

// Run executes the fix pass. Exported so the root command can use it as the
// default action.
func (cmd *FixCmd) Run(ctx context.Context, c *cli.Command) error {
	runner, err := rules.NewRunner(rules.DefaultOptions(), log.Logger)
	if err != nil {
		return err
	}

	report, err := runner.Fix()
	if err != nil {
		if errors.Is(err, rules.ErrDirMissing) {
			_, _ = fmt.Fprintln(os.Stderr, styles.TextErrorStyle.Render(err.Error()))
			return cli.Exit("", 1)
		}
		return err
	}

	printReport(os.Stderr, "Rulemend Fix", report)

	if report.Fixed > 0 {
		hint := styles.TextMutedStyle.Render("Review the changes and delete the .backup files when satisfied")
		_, _ = fmt.Fprintln(os.Stderr)
		_, _ = fmt.Fprintln(os.Stderr, hint)
	}

	if report.Failed > 0 {
		return cli.Exit("", 1)
	}

	return nil
}
