package dataset

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"flowercoco/logging"
)

// originEntries are the archive folders and manifests moved aside once
// the standardized layout has been built
var originEntries = []string{
	"AppleA",
	"AppleA_Labels_1",
	"AppleALabels_Train",
	"AppleB_1",
	"AppleB_Labels_1",
	"Peach_1",
	"PeachLabels_1",
	"Pear_1",
	"PearLabels_2",
	"train.txt",
	"val_0.txt",
}

// StageOriginalData moves the original archive folders under
// data/origin and strips the per-image JSON files they carry, leaving
// the root with only the standardized category folders. Entries that
// are already staged or missing are skipped.
func StageOriginalData(rootDir string) error {
	originDir := filepath.Join(rootDir, "data", "origin")
	if err := os.MkdirAll(originDir, 0777); err != nil {
		return fmt.Errorf("cannot create %s: %v", originDir, err)
	}

	fmt.Println("Moving original data to data/origin...")
	for _, item := range originEntries {
		src := filepath.Join(rootDir, item)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		dst := filepath.Join(originDir, item)
		if _, err := os.Stat(dst); err == nil {
			fmt.Printf("  Warning: %s already exists, skipping %s\n", dst, item)
			logging.LogWarning("Staging target %s already exists", dst)
			continue
		}
		fmt.Printf("  Moving %s...\n", item)
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("cannot move %s: %v", item, err)
		}
	}

	fmt.Println("\nDeleting original JSON files...")
	count, err := removeJSONFiles(originDir)
	if err != nil {
		return err
	}
	fmt.Printf("  Deleted %d JSON files\n", count)
	return nil
}

// removeJSONFiles deletes every .json file under dir recursively and
// returns the count
func removeJSONFiles(dir string) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("cannot delete %s: %v", path, err)
		}
		count++
		return nil
	})
	return count, err
}
