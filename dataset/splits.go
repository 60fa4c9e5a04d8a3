package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var splitExtensions = []string{".JPG", ".jpg", ".BMP", ".bmp", ".PNG", ".png"}

// readSplitSet loads a newline-separated manifest into a set. A
// missing file yields an empty set.
func readSplitSet(path string) map[string]bool {
	set := make(map[string]bool)
	data, err := os.ReadFile(path)
	if err != nil {
		return set
	}
	for _, line := range strings.Split(string(data), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			set[name] = true
		}
	}
	return set
}

func writeSplitFile(path string, stems []string) error {
	sorted := append([]string(nil), stems...)
	sort.Strings(sorted)
	content := strings.Join(sorted, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		return fmt.Errorf("cannot write split file %s: %v", path, err)
	}
	return nil
}

// ReorganizeSplits distributes the archive's flat train/val manifests
// into per-category sets folders. Membership is checked by stem and by
// stem plus each known extension; images in neither manifest fall into
// the train split. Each category gets train.txt, val.txt, all.txt and
// train_val.txt, all sorted.
func ReorganizeSplits(rootDir string) error {
	trainSet := readSplitSet(filepath.Join(rootDir, "train.txt"))
	valSet := readSplitSet(filepath.Join(rootDir, "val_0.txt"))

	for _, category := range Categories {
		imagesDir := filepath.Join(rootDir, category, "images")
		images, err := ListImages(imagesDir)
		if err != nil {
			continue
		}

		var all []string
		for _, imagePath := range images {
			all = append(all, ImageStem(imagePath))
		}

		var train, val []string
		assigned := make(map[string]bool)
		for _, stem := range all {
			for _, ext := range splitExtensions {
				if trainSet[stem+ext] || trainSet[stem] {
					train = append(train, stem)
					assigned[stem] = true
					break
				}
				if valSet[stem+ext] || valSet[stem] {
					val = append(val, stem)
					assigned[stem] = true
					break
				}
			}
		}
		for _, stem := range all {
			if !assigned[stem] {
				train = append(train, stem)
			}
		}

		setsDir := filepath.Join(rootDir, category, "sets")
		if err := os.MkdirAll(setsDir, 0777); err != nil {
			return fmt.Errorf("cannot create %s: %v", setsDir, err)
		}

		files := map[string][]string{
			"train.txt":     train,
			"val.txt":       val,
			"all.txt":       all,
			"train_val.txt": append(append([]string(nil), train...), val...),
		}
		for name, stems := range files {
			if err := writeSplitFile(filepath.Join(setsDir, name), stems); err != nil {
				return err
			}
		}

		fmt.Printf("  Created split files for %s: %d train, %d val, %d total\n",
			category, len(train), len(val), len(all))
	}

	return nil
}
