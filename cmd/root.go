// Package cmd implements the CLI command structure for taskdeck.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/logging"
	"github.com/taskdeck/taskdeck/internal/store"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskdeck CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("taskdeck", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.New(os.Stderr, logging.Options{
		Level:           cfg.LogLevel,
		ReportTimestamp: cfg.LogTimestamps,
	})

	remaining := fs.Args()
	if len(remaining) == 0 {
		printUsage(fs, os.Stdout)
		return nil
	}
	subcommand := remaining[0]
	remaining = remaining[1:]

	switch subcommand {
	case "add":
		return addCommand(cfg, logger, remaining)
	case "list":
		return listCommand(cfg, logger, remaining)
	case "view":
		return viewCommand(cfg, logger, remaining)
	case "update":
		return updateCommand(cfg, logger, remaining)
	case "complete":
		return completeCommand(cfg, logger, remaining)
	case "delete":
		return deleteCommand(cfg, logger, remaining)
	case "doctor":
		return doctorCommand(cfg, remaining)
	case "export":
		return exportCommand(cfg, logger, remaining)
	case "tui":
		return tuiCommand(ctx, cfg, remaining)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openStore opens the configured storage file.
func openStore(cfg *config.Config, logger *log.Logger) (*store.Store, error) {
	s, err := store.Open(cfg.StorageFile, logger)
	if err != nil {
		return nil, fmt.Errorf("opening task store: %w", err)
	}
	return s, nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("taskdeck version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Taskdeck - A local task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskdeck [options] <command> [command options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add TITLE     Add a new task")
	fmt.Fprintln(w, "  list          List tasks")
	fmt.Fprintln(w, "  view ID       View task details")
	fmt.Fprintln(w, "  update ID     Update a task")
	fmt.Fprintln(w, "  complete ID   Mark a task as completed")
	fmt.Fprintln(w, "  delete ID     Delete a task")
	fmt.Fprintln(w, "  export        Export tasks as json, csv, or pdf")
	fmt.Fprintln(w, "  doctor        Check config and storage file validity")
	fmt.Fprintln(w, "  tui           Launch the terminal task browser")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options (use with 'add'):")
	fmt.Fprintln(w, "  -d, -description string")
	fmt.Fprintln(w, "        Task description")
	fmt.Fprintln(w, "  -p, -priority string")
	fmt.Fprintln(w, "        Task priority (LOW|MEDIUM|HIGH|CRITICAL, default MEDIUM)")
	fmt.Fprintln(w, "  -due string")
	fmt.Fprintln(w, "        Due date and time (YYYY-MM-DD HH:MM)")
	fmt.Fprintln(w, "  -t, -tags string")
	fmt.Fprintln(w, "        Comma-separated list of tags")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List Options (use with 'list'):")
	fmt.Fprintln(w, "  -s, -status string")
	fmt.Fprintln(w, "        Filter by status (NOT_STARTED|IN_PROGRESS|BLOCKED|COMPLETED)")
	fmt.Fprintln(w, "  -p, -priority string")
	fmt.Fprintln(w, "        Filter by priority (LOW|MEDIUM|HIGH|CRITICAL)")
	fmt.Fprintln(w, "  -t, -tag string")
	fmt.Fprintln(w, "        Filter by tag")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Update Options (use with 'update'):")
	fmt.Fprintln(w, "  -T, -title string")
	fmt.Fprintln(w, "        New task title")
	fmt.Fprintln(w, "  -d, -description string")
	fmt.Fprintln(w, "        New task description")
	fmt.Fprintln(w, "  -p, -priority string")
	fmt.Fprintln(w, "        New task priority")
	fmt.Fprintln(w, "  -s, -status string")
	fmt.Fprintln(w, "        New task status")
	fmt.Fprintln(w, "  -due string")
	fmt.Fprintln(w, "        New due date (YYYY-MM-DD HH:MM); empty string clears it")
	fmt.Fprintln(w, "  -t, -tags string")
	fmt.Fprintln(w, "        New comma-separated list of tags")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Options (use with 'export'):")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Export format (json|csv|pdf, default json)")
	fmt.Fprintln(w, "  -o string")
	fmt.Fprintln(w, "        Output file (default stdout)")
}
