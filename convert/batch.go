package convert

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"flowercoco/ids"
	"flowercoco/logging"
	"flowercoco/maskproc"
	"flowercoco/types"
)

const datasetURL = "https://agdatacommons.nal.usda.gov/download/articles/24852636/versions/1/"

// BuildSplitBatch groups one category's tabular annotations for one
// split into a single batched COCO document. The category list holds
// the labelmap's non-background names with id fixed to 1, image ids
// come from the identifier generator, and annotation ids are assigned
// sequentially from 1 within the file. Ordering is deterministic:
// images in sorted split order, annotations in row order.
func BuildSplitBatch(category, imagesDir, csvDir string, names []string, split string, stems []string) *types.CocoFile {
	categories := make([]types.CategoryRecord, 0, len(names))
	for _, name := range names {
		// Each category folder holds a single non-background class
		categories = append(categories, types.CategoryRecord{ID: 1, Name: name, Supercategory: "flower"})
	}

	coco := &types.CocoFile{
		Info: types.Info{
			Year:        2025,
			Version:     "1.0",
			Description: fmt.Sprintf("Peach-Pear Flower Segmentation %s %s split", category, split),
			URL:         datasetURL,
		},
		Images:      []types.ImageRecord{},
		Annotations: []types.AnnotationRecord{},
		Categories:  categories,
		Licenses:    []types.License{},
	}

	found := 0
	annotationID := int64(1)
	for _, stem := range stems {
		imagePath, ok := FindImage(imagesDir, stem)
		if !ok {
			continue
		}
		found++

		width, height := maskproc.ImageSize(imagePath)
		imageID := ids.NextID()
		coco.Images = append(coco.Images, types.ImageRecord{
			ID:       imageID,
			FileName: category + "/images/" + filepath.Base(imagePath),
			Width:    width,
			Height:   height,
		})

		csvPath := filepath.Join(csvDir, stem+".csv")
		if _, err := os.Stat(csvPath); err != nil {
			continue
		}
		rows, err := ParseRows(csvPath)
		if err != nil {
			logging.LogWarning("Skipping annotations for %s/%s: %v", category, stem, err)
			continue
		}
		for _, row := range rows {
			coco.Annotations = append(coco.Annotations, types.AnnotationRecord{
				ID:         annotationID,
				ImageID:    imageID,
				CategoryID: 1,
				BBox:       row.BBox(),
				Area:       row.Width * row.Height,
				IsCrowd:    0,
			})
			annotationID++
		}
	}

	logging.DebugLog("Found %d/%d images for %s/%s", found, len(stems), category, split)
	return coco
}

// WriteCocoFile marshals a batched document to disk
func WriteCocoFile(path string, coco *types.CocoFile) error {
	data, err := json.MarshalIndent(coco, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0666); err != nil {
		return fmt.Errorf("cannot write %s: %v", path, err)
	}
	return nil
}

// ReadCocoFile loads a batched document from disk
func ReadCocoFile(path string) (*types.CocoFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %v", path, err)
	}
	var coco types.CocoFile
	if err := json.Unmarshal(data, &coco); err != nil {
		return nil, fmt.Errorf("cannot parse %s: %v", path, err)
	}
	return &coco, nil
}
