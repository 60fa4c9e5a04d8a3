package annotate

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"flowercoco/database"
	"flowercoco/dataset"
	"flowercoco/logging"
	"flowercoco/signalhandler"
)

type workItem struct {
	imagePath string
	source    Source
}

// Run generates one COCO annotation file per staged image, in
// parallel, and records every derived box in the annotation database.
// A nil db skips recording. Missing source folders are skipped with a
// warning, and a single failed image never aborts the run.
func Run(db *sql.DB, options Options) error {
	sources := DefaultSources(options.RootDir)

	var items []workItem
	for _, source := range sources {
		images, err := dataset.ListImages(source.ImageDir)
		if err != nil {
			fmt.Printf("Image folder %s does not exist\n", source.ImageDir)
			logging.LogWarning("Skipping source %s: %v", source.Category, err)
			continue
		}
		fmt.Printf("Processing %d images in %s...\n", len(images), source.ImageDir)
		for _, imagePath := range images {
			items = append(items, workItem{imagePath: imagePath, source: source})
		}
	}

	if len(items) == 0 {
		fmt.Println("No images found to annotate")
		return nil
	}

	var wg sync.WaitGroup
	resultsChan := make(chan Result, 100)
	semaphore := make(chan struct{}, signalhandler.GetOptimalProcs())

	tracker := NewProgressTracker(len(items), resultsChan)
	startTime := time.Now()

	for _, item := range items {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(item workItem) {
			defer wg.Done()
			defer func() { <-semaphore }()
			resultsChan <- processImage(db, item, options)
		}(item)
	}

	wg.Wait()
	close(resultsChan)
	close(semaphore)
	tracker.Stop()

	elapsed := time.Since(startTime)
	fmt.Println("\nAnnotation complete.")
	fmt.Printf("Processed %d images in %v.\n", tracker.Processed(), elapsed.Round(time.Second))
	if tracker.Degraded() > 0 {
		fmt.Printf("%d images fell back to a full-frame bounding box.\n", tracker.Degraded())
	}
	if tracker.Errors() > 0 {
		fmt.Printf("Encountered %d errors during annotation.\n", tracker.Errors())
		fmt.Println("Check the log file for details.")
	}

	return nil
}

// processImage builds and writes the annotation document for a single
// image and records the derived box
func processImage(db *sql.DB, item workItem, options Options) Result {
	result := Result{Path: item.imagePath}

	doc, maskPath, degraded := BuildDocument(item.imagePath, item.source.Category, item.source.MaskDirs)
	result.Degraded = degraded

	jsonPath, err := WriteDocument(item.imagePath, doc)
	if err != nil {
		result.Error = err
		return result
	}
	if options.DebugMode {
		logging.DebugLog("Generated %s", jsonPath)
	}

	if db != nil {
		bbox := doc.Annotations[0].BBox
		info := database.AnnotationInfo{
			ImagePath: item.imagePath,
			Category:  item.source.Category,
			MaskPath:  maskPath,
			X:         bbox[0],
			Y:         bbox[1],
			Width:     bbox[2],
			Height:    bbox[3],
			Area:      doc.Annotations[0].Area,
			Degraded:  degraded,
		}
		if err := database.StoreAnnotationInfo(db, info); err != nil {
			// The JSON file is already written, so only warn
			logging.LogWarning("Cannot record annotation for %s: %v", item.imagePath, err)
		}
	}

	result.Success = true
	return result
}
