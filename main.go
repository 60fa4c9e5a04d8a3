package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"flowercoco/annotate"
	"flowercoco/convert"
	"flowercoco/database"
	"flowercoco/dataset"
	"flowercoco/logging"
	"flowercoco/signalhandler"
	"flowercoco/utils"
)

func main() {
	// Set up proper signal handling
	signalhandler.SetupHandler()

	// Set the optimal number of CPUs to use
	runtime.GOMAXPROCS(signalhandler.GetOptimalProcs())

	// Parse command line arguments into a map
	args := utils.ParseArguments()

	command, hasCommand := args["command"]

	// Set default database path
	dbPath := utils.GetDefaultDatabasePath()
	if customDB, ok := args["database"]; ok && customDB != "" {
		dbPath = customDB
	} else if customDB, ok := args["db"]; ok && customDB != "" {
		// Allow --db as an alias for --database
		dbPath = customDB
	}

	// Setup debug logging if enabled
	debugMode := false
	if _, ok := args["debug"]; ok {
		debugMode = true
		logPath := "flowercoco.log"
		if customLogPath, ok := args["logfile"]; ok && customLogPath != "" {
			logPath = customLogPath
		}
		if err := logging.SetupLogger(logPath); err != nil {
			fmt.Printf("Warning: Failed to setup logging: %v\n", err)
		} else {
			fmt.Printf("Debug mode enabled. Logging to: %s\n", logPath)
		}
		defer logging.CloseLogger()
	}

	if !hasCommand {
		utils.PrintUsage()
		os.Exit(1)
	}

	rootDir := "."
	if root, ok := args["root"]; ok && root != "" {
		rootDir = root
	}

	switch command {
	case "annotate":
		handleAnnotateCommand(args, rootDir, dbPath, debugMode)
	case "reorganize":
		handleReorganizeCommand(rootDir)
	case "convert":
		handleConvertCommand(args, rootDir, debugMode)
	case "stage":
		handleStageCommand(rootDir)
	case "clean":
		handleCleanCommand(rootDir)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		utils.PrintUsage()
		os.Exit(1)
	}
}

func handleAnnotateCommand(args map[string]string, rootDir, dbPath string, debugMode bool) {
	verifyRootDir(rootDir)

	startTime := time.Now()

	// Initialize the annotation index with retry logic. Annotation
	// files are still written when the index cannot be opened.
	var db *sql.DB
	var err error
	const maxRetries = 3
	for i := 0; i < maxRetries; i++ {
		db, err = database.InitDatabase(dbPath)
		if err == nil {
			break
		}
		if i < maxRetries-1 {
			log.Printf("Error initializing database (attempt %d/%d): %v - retrying...",
				i+1, maxRetries, err)
			time.Sleep(time.Second * time.Duration(i+1))
		} else {
			log.Printf("Warning: continuing without annotation index: %v", err)
			db = nil
		}
	}
	if db != nil {
		defer db.Close()
	}

	options := annotate.Options{
		RootDir:   rootDir,
		DebugMode: debugMode,
	}
	if err := annotate.Run(db, options); err != nil {
		log.Fatalf("Error generating annotations: %v", err)
	}

	duration := time.Since(startTime)
	fmt.Printf("\nAnnotation completed successfully!\n")
	fmt.Printf("Total execution time: %v\n", duration)

	if db != nil {
		fmt.Printf("Database: %s\n", dbPath)
		stats, err := database.GetRunStats(db, "")
		if err == nil && stats != nil {
			fmt.Printf("\nSummary:\n")
			fmt.Printf("- Total annotations recorded: %d\n", stats.TotalAnnotations)
			fmt.Printf("- Degraded full-frame boxes: %d\n", stats.DegradedCount)
			fmt.Printf("- Categories: %d\n", stats.Categories)
		}
	}
}

func handleReorganizeCommand(rootDir string) {
	verifyRootDir(rootDir)

	fmt.Println("Reorganizing flower segmentation dataset...")
	fmt.Printf("Root directory: %s\n", rootDir)

	for _, category := range dataset.Categories {
		if _, err := dataset.ReorganizeCategory(rootDir, category); err != nil {
			log.Fatalf("Error reorganizing %s: %v", category, err)
		}
		if err := dataset.CreateLabelMap(filepath.Join(rootDir, category), category); err != nil {
			log.Fatalf("Error creating labelmap for %s: %v", category, err)
		}
	}

	fmt.Println("\nReorganizing dataset splits...")
	if err := dataset.ReorganizeSplits(rootDir); err != nil {
		log.Fatalf("Error reorganizing splits: %v", err)
	}

	fmt.Println("\nReorganization complete!")
}

func handleConvertCommand(args map[string]string, rootDir string, debugMode bool) {
	verifyRootDir(rootDir)

	outDir := "annotations"
	if out, ok := args["out"]; ok && out != "" {
		outDir = out
	}

	categories := dataset.Categories
	if list, ok := args["categories"]; ok && list != "" {
		categories = utils.ParseList(list)
	}

	splits := []string{"train", "val", "test"}
	if list, ok := args["splits"]; ok && list != "" {
		splits = utils.ParseList(list)
	}

	_, combined := args["combined"]

	startTime := time.Now()
	summary, err := convert.Run(convert.Options{
		RootDir:    rootDir,
		OutDir:     outDir,
		Categories: categories,
		Splits:     splits,
		Combined:   combined,
		DebugMode:  debugMode,
	})
	if err != nil {
		log.Fatalf("Error converting annotations: %v", err)
	}

	duration := time.Since(startTime)
	fmt.Printf("\nConversion completed successfully!\n")
	fmt.Printf("Total execution time: %v\n", duration)
	fmt.Printf("\nSummary:\n")
	fmt.Printf("- Batched files written: %d\n", summary.FilesWritten)
	if combined {
		fmt.Printf("- Combined files written: %d\n", summary.CombinedWritten)
	}
	fmt.Printf("- Images converted: %d\n", summary.ImagesConverted)
	fmt.Printf("- Annotations written: %d\n", summary.AnnotationsWritten)
	if summary.SkippedCategories > 0 {
		fmt.Printf("- Categories skipped: %d\n", summary.SkippedCategories)
	}
	if summary.SkippedSplits > 0 {
		fmt.Printf("- Splits skipped: %d\n", summary.SkippedSplits)
	}
}

func handleStageCommand(rootDir string) {
	verifyRootDir(rootDir)

	if err := dataset.StageOriginalData(rootDir); err != nil {
		log.Fatalf("Error staging original data: %v", err)
	}
	fmt.Println("\nDone!")
}

func handleCleanCommand(rootDir string) {
	verifyRootDir(rootDir)

	if _, err := dataset.CleanGeneratedJSON(rootDir); err != nil {
		log.Fatalf("Error cleaning generated files: %v", err)
	}
}

// verifyRootDir exits when the dataset root is missing or not a directory
func verifyRootDir(rootDir string) {
	info, err := os.Stat(rootDir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Fatalf("Root directory does not exist: %s", rootDir)
		}
		log.Fatalf("Cannot access root directory: %s (%v)", rootDir, err)
	}
	if !info.IsDir() {
		log.Fatalf("Path is not a directory: %s", rootDir)
	}
}
