package cmd

import (
	"context"
	"flag"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/ui"
)

// tuiCommand launches the terminal task browser.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskdeck tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return ui.RunTUI(ctx, cfg.StorageFile)
}
