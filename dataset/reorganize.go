package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"flowercoco/convert"
	"flowercoco/logging"
	"flowercoco/types"
)

// Categories are the standardized plural category folder names, in
// processing order
var Categories = []string{"apples", "applebs", "peaches", "pears"}

// imageFolders maps each category to its source image folder inside
// the unpacked archive
var imageFolders = map[string]string{
	"apples":  "AppleA/FlowerImages",
	"applebs": "AppleB_1/AppleB",
	"peaches": "Peach_1/PeachSelected",
	"pears":   "Pear_1/Pear",
}

// labelFolders maps each category to its source mask folders. AppleA
// masks are split over two archives.
var labelFolders = map[string][]string{
	"apples":  {"AppleA_Labels_1/AppleA_Labels", "AppleALabels_Train/Masks_Train"},
	"applebs": {"AppleB_Labels_1/AppleB_Labels"},
	"peaches": {"PeachLabels_1/PeachLabels"},
	"pears":   {"PearLabels_2/PearLabels"},
}

var categoryDirs = []string{"images", "json", "csv", "segmentations", "sets"}

// matchStem strips the IMG_ camera prefix so stems can be matched
// against mask names that only carry the number
func matchStem(stem string) string {
	return strings.TrimPrefix(stem, "IMG_")
}

// ReorganizeCategory copies one category's images, per-image JSON
// annotations, and segmentation masks from the archive layout into the
// standardized category folder, deriving a CSV file from each JSON
// annotation along the way. Returns the stems of the processed images.
func ReorganizeCategory(rootDir, category string) ([]string, error) {
	fmt.Printf("\nProcessing category: %s\n", category)
	destDir := filepath.Join(rootDir, category)
	for _, sub := range categoryDirs {
		if err := os.MkdirAll(filepath.Join(destDir, sub), 0777); err != nil {
			return nil, fmt.Errorf("cannot create %s: %v", filepath.Join(destDir, sub), err)
		}
	}

	sourceDir := filepath.Join(rootDir, filepath.FromSlash(imageFolders[category]))
	images, err := ListImages(sourceDir)
	if err != nil {
		logging.LogWarning("No source images for %s: %v", category, err)
		images = nil
	}
	fmt.Printf("  Found %d images\n", len(images))

	maskByStem := collectMasks(rootDir, category)
	fmt.Printf("  Found %d segmentation masks\n", len(maskByStem))

	var processed []string
	for _, imagePath := range images {
		fullStem := ImageStem(imagePath)

		if err := copyFile(imagePath, filepath.Join(destDir, "images", filepath.Base(imagePath))); err != nil {
			return nil, err
		}
		processed = append(processed, fullStem)

		jsonPath := filepath.Join(filepath.Dir(imagePath), fullStem+".json")
		if _, err := os.Stat(jsonPath); err == nil {
			if err := copyFile(jsonPath, filepath.Join(destDir, "json", fullStem+".json")); err != nil {
				return nil, err
			}
			if err := jsonToCSV(jsonPath, filepath.Join(destDir, "csv", fullStem+".csv")); err != nil {
				logging.LogWarning("Cannot derive CSV for %s/%s: %v", category, fullStem, err)
			}
		}

		if maskPath, ok := findMask(maskByStem, fullStem); ok {
			if err := copyFile(maskPath, filepath.Join(destDir, "segmentations", fullStem+".png")); err != nil {
				return nil, err
			}
		}
	}

	fmt.Printf("  Processed %d images\n", len(processed))
	return processed, nil
}

// collectMasks indexes every mask png in the category's label folders
// by file stem. Later folders win on stem collisions.
func collectMasks(rootDir, category string) map[string]string {
	maskByStem := make(map[string]string)
	for _, folder := range labelFolders[category] {
		dir := filepath.Join(rootDir, filepath.FromSlash(folder))
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".png") {
				continue
			}
			stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
			maskByStem[stem] = filepath.Join(dir, entry.Name())
		}
	}
	return maskByStem
}

// findMask resolves the mask for an image stem. Exact candidates are
// tried first: the prefix-stripped stem, the full stem, and the
// zero-stripped numeric form. A substring match in either direction is
// the fallback.
func findMask(maskByStem map[string]string, fullStem string) (string, bool) {
	stripped := matchStem(fullStem)

	candidates := []string{stripped, fullStem}
	if n, err := strconv.Atoi(stripped); err == nil {
		candidates = append(candidates, strconv.Itoa(n))
	}
	for _, candidate := range candidates {
		if path, ok := maskByStem[candidate]; ok {
			return path, true
		}
	}

	for maskStem, path := range maskByStem {
		if strings.Contains(maskStem, stripped) || strings.Contains(stripped, maskStem) {
			return path, true
		}
	}
	return "", false
}

// jsonToCSV flattens a per-image annotation document into the tabular
// bounding box format
func jsonToCSV(jsonPath, csvPath string) error {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return err
	}

	var doc struct {
		Annotations []types.AnnotationRecord `json:"annotations"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("cannot parse %s: %v", jsonPath, err)
	}

	return convert.WriteRows(csvPath, convert.AnnotationRows(doc.Annotations))
}

// CreateLabelMap writes the two-entry labelmap for a category:
// background plus the singular form of the category name.
func CreateLabelMap(categoryDir, category string) error {
	labelmap := []types.LabelMapEntry{
		{ObjectID: 0, LabelID: 0, KeyboardShortcut: "0", ObjectName: "background"},
		{ObjectID: 1, LabelID: 1, KeyboardShortcut: "1", ObjectName: strings.TrimRight(strings.ToLower(category), "s")},
	}

	data, err := json.MarshalIndent(labelmap, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal labelmap for %s: %v", category, err)
	}
	if err := os.WriteFile(filepath.Join(categoryDir, "labelmap.json"), data, 0666); err != nil {
		return fmt.Errorf("cannot write labelmap for %s: %v", category, err)
	}
	fmt.Println("  Created labelmap.json")
	return nil
}
