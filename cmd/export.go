package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/report"
	"github.com/taskdeck/taskdeck/internal/store"
)

// exportCommand renders the full collection as json, csv, or pdf.
func exportCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck export", flag.ContinueOnError)
	format := fs.String("format", "json", "Export format (json|csv|pdf)")
	output := fs.String("o", "", "Output file (default stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openStore(cfg, logger)
	if err != nil {
		return err
	}

	data, err := report.Export(s.List(store.Filter{}), *format)
	if err != nil {
		return err
	}

	if *output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*output, data, 0644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	fmt.Printf("Exported %d tasks to %s\n", s.Len(), *output)
	return nil
}
