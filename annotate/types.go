package annotate

import "path/filepath"

// Options controls an annotation generation run
type Options struct {
	RootDir   string
	DebugMode bool
}

// Source pairs one staged image folder with the mask folders its
// segmentation labels live in
type Source struct {
	Category string
	ImageDir string
	MaskDirs []string
}

// Result reports the outcome for a single image
type Result struct {
	Path     string
	Success  bool
	Degraded bool
	Error    error
}

// DefaultSources returns the staged archive layout under data/origin.
// AppleA masks are split over two folders, the other categories each
// have one.
func DefaultSources(rootDir string) []Source {
	origin := filepath.Join(rootDir, "data", "origin")
	return []Source{
		{
			Category: "FlowerImages",
			ImageDir: filepath.Join(origin, "AppleA", "FlowerImages"),
			MaskDirs: []string{
				filepath.Join(origin, "AppleA_Labels_1", "AppleA_Labels"),
				filepath.Join(origin, "AppleALabels_Train", "Masks_Train"),
			},
		},
		{
			Category: "AppleB",
			ImageDir: filepath.Join(origin, "AppleB_1", "AppleB"),
			MaskDirs: []string{filepath.Join(origin, "AppleB_Labels_1", "AppleB_Labels")},
		},
		{
			Category: "PeachSelected",
			ImageDir: filepath.Join(origin, "Peach_1", "PeachSelected"),
			MaskDirs: []string{filepath.Join(origin, "PeachLabels_1", "PeachLabels")},
		},
		{
			Category: "Pear",
			ImageDir: filepath.Join(origin, "Pear_1", "Pear"),
			MaskDirs: []string{filepath.Join(origin, "PearLabels_2", "PearLabels")},
		},
	}
}
