package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/schema"
)

// doctorCommand checks the config and the storage file validity.
func doctorCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskdeck doctor", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Println("Taskdeck Doctor")
	fmt.Println("===============")
	fmt.Println()

	allOK := true

	fmt.Println("Config:")
	fmt.Printf("  Storage file: %s\n", cfg.StorageFile)
	fmt.Printf("  Log level: %s\n", cfg.LogLevel)
	fmt.Println()

	fmt.Printf("Storage file: %s\n", cfg.StorageFile)
	info, err := os.Stat(cfg.StorageFile)
	switch {
	case os.IsNotExist(err):
		fmt.Println("  ⚠️  Not found (will be created on first add)")
	case err != nil:
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Println("  ❌ Error: path is a directory")
		allOK = false
	default:
		data, readErr := os.ReadFile(cfg.StorageFile)
		if readErr != nil {
			fmt.Printf("  ❌ Read error: %v\n", readErr)
			allOK = false
			break
		}
		if validateErr := schema.Validate(data); validateErr != nil {
			fmt.Println("  ❌ Validation failed:")
			fmt.Printf("     - %v\n", validateErr)
			allOK = false
		} else {
			fmt.Println("  ✅ Valid")
		}
	}
	fmt.Println()

	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}
