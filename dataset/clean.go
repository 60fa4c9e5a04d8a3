package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"flowercoco/logging"
)

// cleanFolders are the staged source folders that accumulate generated
// per-image JSON files between annotation runs
var cleanFolders = []string{
	"data/origin/AppleA/FlowerImages",
	"data/origin/AppleB_1/AppleB",
	"data/origin/Peach_1/PeachSelected",
	"data/origin/Pear_1/Pear",
	"data/origin/AppleA_Labels_1/AppleA_Labels",
	"data/origin/AppleB_Labels_1/AppleB_Labels",
	"data/origin/PeachLabels_1/PeachLabels",
	"data/origin/PearLabels_2/PearLabels",
}

// CleanGeneratedJSON removes the JSON files left behind by earlier
// annotation runs, folder by folder, and returns how many were
// deleted. Missing folders are reported but never fail the run.
func CleanGeneratedJSON(rootDir string) (int, error) {
	total := 0
	for _, folder := range cleanFolders {
		dir := filepath.Join(rootDir, filepath.FromSlash(folder))
		if _, err := os.Stat(dir); err != nil {
			fmt.Printf("Folder %s does not exist\n", dir)
			continue
		}

		matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
		if err != nil {
			return total, fmt.Errorf("cannot scan %s: %v", dir, err)
		}
		for _, path := range matches {
			if err := os.Remove(path); err != nil {
				fmt.Printf("Error deleting %s: %v\n", path, err)
				logging.LogError("Cannot delete %s: %v", path, err)
				continue
			}
			fmt.Printf("Deleted: %s\n", path)
			total++
		}
	}

	fmt.Printf("\nTotal deleted: %d JSON files\n", total)
	return total, nil
}
