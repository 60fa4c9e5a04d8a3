package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"flowercoco/logging"
	"flowercoco/types"
)

// Options controls a CSV to COCO conversion run
type Options struct {
	RootDir    string
	OutDir     string
	Categories []string
	Splits     []string
	Combined   bool
	DebugMode  bool
}

// Summary counts what a conversion run produced and skipped
type Summary struct {
	FilesWritten       int
	CombinedWritten    int
	ImagesConverted    int
	AnnotationsWritten int
	SkippedCategories  int
	SkippedSplits      int
}

// Run converts per-image CSV annotations into batched per-category
// COCO files, one per category and split, and optionally merges all
// categories into combined per-split files. No failure aborts the run:
// missing folders, labelmaps, and split files skip their unit with a
// warning, and empty splits produce no output file.
func Run(options Options) (*Summary, error) {
	if err := os.MkdirAll(options.OutDir, 0777); err != nil {
		return nil, fmt.Errorf("cannot create output directory %s: %v", options.OutDir, err)
	}

	summary := &Summary{}

	var combinedCategories []types.CategoryRecord
	var labelByCategory map[string]string
	var combined map[string]*types.CocoFile
	if options.Combined {
		combinedCategories, labelByCategory = BuildCombinedCategories(options.RootDir, options.Categories)
		combined = make(map[string]*types.CocoFile)
	}

	for _, category := range options.Categories {
		categoryDir := filepath.Join(options.RootDir, category)
		imagesDir := filepath.Join(categoryDir, "images")
		if info, err := os.Stat(imagesDir); err != nil || !info.IsDir() {
			fmt.Printf("Warning: %s does not exist, skipping %s\n", imagesDir, category)
			logging.LogWarning("Images folder missing for category %s", category)
			summary.SkippedCategories++
			continue
		}

		labelMapPath := filepath.Join(categoryDir, "labelmap.json")
		entries, err := LoadLabelMap(labelMapPath)
		if err != nil {
			fmt.Printf("Warning: %s does not exist, skipping %s\n", labelMapPath, category)
			logging.LogWarning("Labelmap missing for category %s: %v", category, err)
			summary.SkippedCategories++
			continue
		}

		names := ObjectNames(entries)
		if len(names) > 1 {
			// Known limitation: per-category files collapse every
			// non-background entry to category id 1.
			logging.LogWarning("Labelmap for %s has %d non-background entries; all annotations keep category_id 1", category, len(names))
		}

		for _, split := range options.Splits {
			splitPath := filepath.Join(categoryDir, "sets", split+".txt")
			stems, err := LoadSplit(splitPath)
			if err != nil {
				fmt.Printf("Warning: split file %s does not exist, skipping %s/%s\n", splitPath, category, split)
				summary.SkippedSplits++
				continue
			}

			coco := BuildSplitBatch(category, imagesDir, filepath.Join(categoryDir, "csv"), names, split, stems)

			if len(coco.Images) > 0 {
				outPath := filepath.Join(options.OutDir, fmt.Sprintf("%s_instances_%s.json", category, split))
				if err := WriteCocoFile(outPath, coco); err != nil {
					return nil, err
				}
				fmt.Printf("Created %s: %d images, %d annotations\n", outPath, len(coco.Images), len(coco.Annotations))
				summary.FilesWritten++
				summary.ImagesConverted += len(coco.Images)
				summary.AnnotationsWritten += len(coco.Annotations)
			}

			if options.Combined {
				MergeIntoSplit(combined, combinedCategories, labelByCategory, category, split, coco)
			}
		}
	}

	if options.Combined {
		for _, split := range options.Splits {
			doc, ok := combined[split]
			if !ok || len(doc.Images) == 0 {
				// Empty splits are skipped, not written as empty files
				continue
			}
			outPath := filepath.Join(options.OutDir, fmt.Sprintf("combined_instances_%s.json", split))
			if err := WriteCocoFile(outPath, doc); err != nil {
				return nil, err
			}
			fmt.Printf("Created %s: %d images, %d annotations\n", outPath, len(doc.Images), len(doc.Annotations))
			summary.CombinedWritten++
		}
	}

	return summary, nil
}
