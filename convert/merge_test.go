package convert

import (
	"path/filepath"
	"testing"

	"flowercoco/types"
)

func TestBuildCombinedCategories(t *testing.T) {
	root := t.TempDir()
	setupCategory(t, root, "apples", "apple", []string{"IMG_001"})
	setupCategory(t, root, "peaches", "peach", []string{"IMG_002"})
	setupCategory(t, root, "pears", "pear", []string{"IMG_003"})

	categories, labelByCategory := BuildCombinedCategories(root, []string{"apples", "peaches", "pears"})

	if len(categories) != 3 {
		t.Fatalf("got %d categories, want 3", len(categories))
	}
	wantNames := []string{"apple", "peach", "pear"}
	for i, cat := range categories {
		if cat.ID != int64(i+1) {
			t.Errorf("category %d id = %d, want %d", i, cat.ID, i+1)
		}
		if cat.Name != wantNames[i] {
			t.Errorf("category %d name = %q, want %q", i, cat.Name, wantNames[i])
		}
		if cat.Supercategory != "flower" {
			t.Errorf("category %d supercategory = %q, want flower", i, cat.Supercategory)
		}
	}

	for category, name := range map[string]string{"apples": "apple", "peaches": "peach", "pears": "pear"} {
		if labelByCategory[category] != name {
			t.Errorf("labelByCategory[%q] = %q, want %q", category, labelByCategory[category], name)
		}
	}
}

func TestBuildCombinedCategoriesSharedLabel(t *testing.T) {
	root := t.TempDir()
	setupCategory(t, root, "apples", "apple", []string{"IMG_001"})
	setupCategory(t, root, "applebs", "apple", []string{"IMG_002"})

	categories, labelByCategory := BuildCombinedCategories(root, []string{"apples", "applebs"})

	// Both folders carry the same label name, so they share one id.
	if len(categories) != 1 {
		t.Fatalf("got %d categories, want 1", len(categories))
	}
	if labelByCategory["apples"] != "apple" || labelByCategory["applebs"] != "apple" {
		t.Errorf("labelByCategory = %v, want both mapped to apple", labelByCategory)
	}
}

func TestMergeIntoSplitRewritesCategoryIDs(t *testing.T) {
	categories := []types.CategoryRecord{
		{ID: 1, Name: "apple", Supercategory: "flower"},
		{ID: 2, Name: "peach", Supercategory: "flower"},
	}
	labelByCategory := map[string]string{"apples": "apple", "peaches": "peach"}

	appleBatch := &types.CocoFile{
		Images: []types.ImageRecord{{ID: 101, FileName: "apples/images/a.png"}},
		Annotations: []types.AnnotationRecord{
			{ID: 1, ImageID: 101, CategoryID: 1, BBox: []float64{1, 2, 3, 4}},
		},
	}
	peachBatch := &types.CocoFile{
		Images: []types.ImageRecord{{ID: 202, FileName: "peaches/images/p.png"}},
		Annotations: []types.AnnotationRecord{
			{ID: 1, ImageID: 202, CategoryID: 1, BBox: []float64{5, 6, 7, 8}},
		},
	}

	combined := make(map[string]*types.CocoFile)
	MergeIntoSplit(combined, categories, labelByCategory, "apples", "train", appleBatch)
	MergeIntoSplit(combined, categories, labelByCategory, "peaches", "train", peachBatch)

	doc := combined["train"]
	if doc == nil {
		t.Fatal("no combined document for train split")
	}
	if len(doc.Images) != 2 || len(doc.Annotations) != 2 {
		t.Fatalf("got %d images, %d annotations, want 2 each", len(doc.Images), len(doc.Annotations))
	}
	if doc.Annotations[0].CategoryID != 1 {
		t.Errorf("apple annotation category_id = %d, want 1", doc.Annotations[0].CategoryID)
	}
	if doc.Annotations[1].CategoryID != 2 {
		t.Errorf("peach annotation category_id = %d, want 2", doc.Annotations[1].CategoryID)
	}

	// Source batches keep their original ids.
	if peachBatch.Annotations[0].CategoryID != 1 {
		t.Errorf("source batch mutated: category_id = %d, want 1", peachBatch.Annotations[0].CategoryID)
	}
}

func TestRunCombined(t *testing.T) {
	root := t.TempDir()
	setupCategory(t, root, "apples", "apple", []string{"IMG_001"})
	setupCategory(t, root, "peaches", "peach", []string{"IMG_002"})
	setupCategory(t, root, "pears", "pear", []string{"IMG_003"})
	outDir := filepath.Join(root, "annotations")

	summary, err := Run(Options{
		RootDir:    root,
		OutDir:     outDir,
		Categories: []string{"apples", "peaches", "pears"},
		Splits:     []string{"train", "val"},
		Combined:   true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.FilesWritten != 3 {
		t.Errorf("FilesWritten = %d, want 3", summary.FilesWritten)
	}
	if summary.CombinedWritten != 1 {
		t.Errorf("CombinedWritten = %d, want 1", summary.CombinedWritten)
	}

	doc, err := ReadCocoFile(filepath.Join(outDir, "combined_instances_train.json"))
	if err != nil {
		t.Fatalf("ReadCocoFile: %v", err)
	}
	if len(doc.Categories) != 3 {
		t.Fatalf("got %d categories, want 3", len(doc.Categories))
	}
	if len(doc.Images) != 3 || len(doc.Annotations) != 3 {
		t.Fatalf("got %d images, %d annotations, want 3 each", len(doc.Images), len(doc.Annotations))
	}

	idByName := make(map[string]int64)
	for _, cat := range doc.Categories {
		idByName[cat.Name] = cat.ID
	}
	seen := make(map[int64]bool)
	for _, ann := range doc.Annotations {
		seen[ann.CategoryID] = true
	}
	for _, name := range []string{"apple", "peach", "pear"} {
		if !seen[idByName[name]] {
			t.Errorf("no annotation carries the %s category id %d", name, idByName[name])
		}
	}
}
