package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Commands recognized on the command line.
var commands = []string{"annotate", "reorganize", "convert", "stage", "clean"}

// ParseArguments converts command-line arguments into a map of flags and values
func ParseArguments() map[string]string {
	args := make(map[string]string)

	// First, identify the command
	command := ""
	commandIndex := -1
	for i := 1; i < len(os.Args); i++ {
		for _, c := range commands {
			if os.Args[i] == c {
				command = c
				commandIndex = i
				break
			}
		}
		if command != "" {
			break
		}
	}

	if command != "" {
		args["command"] = command
	}

	// Process all arguments, skipping the command
	for i := 1; i < len(os.Args); i++ {
		if i == commandIndex {
			continue
		}

		arg := os.Args[i]

		// Handle flags with equals sign (--key=value)
		if strings.HasPrefix(arg, "--") && strings.Contains(arg, "=") {
			parts := strings.SplitN(arg, "=", 2)
			flagName := strings.TrimPrefix(parts[0], "--")
			args[flagName] = parts[1]
			continue
		}

		// Handle flags without equals sign (--key value)
		if strings.HasPrefix(arg, "--") {
			flagName := strings.TrimPrefix(arg, "--")

			// Check if this is a boolean flag (no value)
			if i+1 >= len(os.Args) || strings.HasPrefix(os.Args[i+1], "--") {
				args[flagName] = "true"
			} else {
				// The next argument is the value
				args[flagName] = os.Args[i+1]
				i++ // Skip the value in the next iteration
			}
		}
	}

	return args
}

// ParseList splits a comma-separated flag value into its elements
func ParseList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// GetDefaultDatabasePath returns the default path for the annotation index
func GetDefaultDatabasePath() string {
	// Get the executable path
	exePath, err := os.Executable()
	if err != nil {
		// Fallback to current directory if executable path can't be determined
		return "annotations.db"
	}

	// Return the default database path next to the executable
	return filepath.Join(filepath.Dir(exePath), "annotations.db")
}

// PrintUsage outputs the command-line usage instructions
func PrintUsage() {
	fmt.Printf("Usage:\n")
	fmt.Printf("  %s annotate [--root=PATH] [--database=PATH] [--debug] [--logfile=PATH]\n", os.Args[0])
	fmt.Printf("  %s reorganize [--root=PATH] [--debug] [--logfile=PATH]\n", os.Args[0])
	fmt.Printf("  %s convert [--root=PATH] [--out=PATH] [--categories=LIST] [--splits=LIST] [--combined]\n", os.Args[0])
	fmt.Printf("  %s stage [--root=PATH]\n", os.Args[0])
	fmt.Printf("  %s clean [--root=PATH]\n", os.Args[0])
	fmt.Printf("\nCommands:\n")
	fmt.Printf("  annotate    : Generate a COCO JSON record per source image from its segmentation mask\n")
	fmt.Printf("  reorganize  : Rebuild raw folders into the canonical per-category layout with split manifests\n")
	fmt.Printf("  convert     : Convert per-image CSV rows into batched per-category COCO files\n")
	fmt.Printf("  stage       : Move the original raw folders under data/origin\n")
	fmt.Printf("  clean       : Delete previously generated per-image JSON files\n")
	fmt.Printf("\nParameters:\n")
	fmt.Printf("  --root        : Dataset root directory (default: current directory)\n")
	fmt.Printf("  --out         : Output directory for batched files (default: annotations)\n")
	fmt.Printf("  --categories  : Comma-separated category folders (default: apples,applebs,peaches,pears)\n")
	fmt.Printf("  --splits      : Comma-separated splits (default: train,val,test)\n")
	fmt.Printf("  --combined    : Also write combined multi-category files per split\n")
	fmt.Printf("  --database    : Path to annotation index file (default: %s)\n", GetDefaultDatabasePath())
	fmt.Printf("  --debug       : Enable debug mode (logs detailed information)\n")
	fmt.Printf("  --logfile     : Specify custom log file path (default: flowercoco.log)\n")
	fmt.Printf("\nExamples:\n")
	fmt.Printf("  %s annotate --root=/data/peachpear --debug\n", os.Args[0])
	fmt.Printf("  %s convert --root=/data/peachpear --out=annotations --combined\n", os.Args[0])
}
