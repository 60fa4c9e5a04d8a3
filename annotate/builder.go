package annotate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"flowercoco/ids"
	"flowercoco/logging"
	"flowercoco/maskproc"
	"flowercoco/types"
)

// ImageDetail extends the batched image record with the provenance
// fields per-image documents carry
type ImageDetail struct {
	ID       int64  `json:"id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	FileName string `json:"file_name"`
	Size     int64  `json:"size"`
	Format   string `json:"format"`
	URL      string `json:"url"`
	Hash     string `json:"hash"`
	Status   string `json:"status"`
}

// AnnotationDetail is the per-image annotation shape. Segmentation is
// always present and empty since only bounding boxes are derived.
type AnnotationDetail struct {
	ID           int64         `json:"id"`
	ImageID      int64         `json:"image_id"`
	CategoryID   int64         `json:"category_id"`
	Segmentation []interface{} `json:"segmentation"`
	Area         float64       `json:"area"`
	BBox         []float64     `json:"bbox"`
}

// Document is a single-image COCO annotation file
type Document struct {
	Info        types.Info             `json:"info"`
	Images      []ImageDetail          `json:"images"`
	Annotations []AnnotationDetail     `json:"annotations"`
	Categories  []types.CategoryRecord `json:"categories"`
}

func formatName(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "JPEG"
	case ".png":
		return "PNG"
	default:
		return "BMP"
	}
}

// BuildDocument derives a single-image annotation document from an
// image and its segmentation mask. All three ids come from the
// identifier generator. When no mask resolves, or the mask cannot be
// read, the bounding box degrades to the full default frame and the
// document is flagged degraded.
func BuildDocument(imagePath, category string, maskDirs []string) (*Document, string, bool) {
	categoryRecord := types.CategoryRecord{
		ID:            ids.NextID(),
		Name:          category,
		Supercategory: "Flower Image",
	}

	imageID := ids.NextID()
	width, height := maskproc.ImageSize(imagePath)
	var size int64
	if info, err := os.Stat(imagePath); err == nil {
		size = info.Size()
	}

	maskPath, found := maskproc.ResolveMask(imagePath, maskDirs)
	var box maskproc.BoundingBox
	degraded := false
	if found {
		box, degraded = maskproc.ExtractWhiteBBox(maskPath)
	} else {
		logging.LogWarning("No mask found for %s, using full-frame box", imagePath)
		box = maskproc.FullFrame(maskproc.DefaultSize, maskproc.DefaultSize)
		degraded = true
	}

	doc := &Document{
		Info: types.Info{
			Description: "data",
			Version:     "1.0",
			Year:        2025,
			Contributor: "search engine",
			Source:      "augmented",
			License: &types.License{
				Name: "Creative Commons Attribution 4.0 International",
				URL:  "https://creativecommons.org/licenses/by/4.0/",
			},
		},
		Images: []ImageDetail{{
			ID:       imageID,
			Width:    width,
			Height:   height,
			FileName: filepath.Base(imagePath),
			Size:     size,
			Format:   formatName(imagePath),
			URL:      "",
			Hash:     "",
			Status:   "success",
		}},
		Annotations: []AnnotationDetail{{
			ID:           ids.NextID(),
			ImageID:      imageID,
			CategoryID:   categoryRecord.ID,
			Segmentation: []interface{}{},
			Area:         box.Area(),
			BBox:         box.Slice(),
		}},
		Categories: []types.CategoryRecord{categoryRecord},
	}

	return doc, maskPath, degraded
}

// WriteDocument saves a document next to its image as <stem>.json
func WriteDocument(imagePath string, doc *Document) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("cannot marshal annotation for %s: %v", imagePath, err)
	}

	base := filepath.Base(imagePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	jsonPath := filepath.Join(filepath.Dir(imagePath), stem+".json")
	if err := os.WriteFile(jsonPath, data, 0666); err != nil {
		return "", fmt.Errorf("cannot write %s: %v", jsonPath, err)
	}
	return jsonPath, nil
}
