package cli

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file without asking." short:"f"`
}

func (cmd *InitCmd) Run(ctx *kong.Context, globals *Globals) error {
	path := globals.Config

	if _, err := os.Stat(path); err == nil && !cmd.Force {
		confirmed, err := promptYesNo(fmt.Sprintf("Configuration %q already exists. Overwrite it?", path))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !confirmed {
			printError(ctx.Stderr, "aborted")
			return nil
		}
	}

	if err := writeConfig(path, DefaultFileConfig()); err != nil {
		return err
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Wrote configuration to %s", pathStyle.Render(path)))
	return nil
}
