package convert

import (
	"fmt"
	"path/filepath"

	"flowercoco/types"
)

// BuildCombinedCategories folds every category's labelmap into one
// global category list with sequential ids assigned from 1 in
// traversal order (categories in caller order, labelmap entries in
// ascending object id order, background excluded). The first
// occurrence of a name keeps its id; a repeated name is a no-op. The
// returned map resolves each category folder to its non-background
// label name.
func BuildCombinedCategories(rootDir string, categories []string) ([]types.CategoryRecord, map[string]string) {
	var combined []types.CategoryRecord
	idByName := make(map[string]int64)
	labelByCategory := make(map[string]string)
	nextID := int64(1)

	for _, category := range categories {
		entries, err := LoadLabelMap(filepath.Join(rootDir, category, "labelmap.json"))
		if err != nil {
			continue
		}
		for _, name := range ObjectNames(entries) {
			labelByCategory[category] = name
			if _, exists := idByName[name]; exists {
				continue
			}
			combined = append(combined, types.CategoryRecord{
				ID:            nextID,
				Name:          name,
				Supercategory: "flower",
			})
			idByName[name] = nextID
			nextID++
		}
	}

	return combined, labelByCategory
}

// MergeIntoSplit folds one category's batched document into the
// combined document for its split. Image records are copied unchanged;
// annotation records are copied with category_id rewritten to the
// global id of the category's label name. Nothing is mutated in place.
func MergeIntoSplit(combined map[string]*types.CocoFile, categories []types.CategoryRecord, labelByCategory map[string]string, category, split string, batch *types.CocoFile) {
	doc, ok := combined[split]
	if !ok {
		doc = &types.CocoFile{
			Info: types.Info{
				Year:        2025,
				Version:     "1.0",
				Description: fmt.Sprintf("Peach-Pear Flower Segmentation combined %s split", split),
				URL:         datasetURL,
			},
			Images:      []types.ImageRecord{},
			Annotations: []types.AnnotationRecord{},
			Categories:  categories,
			Licenses:    []types.License{},
		}
		combined[split] = doc
	}

	globalID := int64(1)
	if name, known := labelByCategory[category]; known {
		for _, cat := range categories {
			if cat.Name == name {
				globalID = cat.ID
				break
			}
		}
	}

	doc.Images = append(doc.Images, batch.Images...)
	for _, ann := range batch.Annotations {
		merged := ann
		merged.CategoryID = globalID
		doc.Annotations = append(doc.Annotations, merged)
	}
}
