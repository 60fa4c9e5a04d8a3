package maskproc

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// MaskExtensions are the mask file extensions tried when resolving a
// mask for a source image, in priority order.
var MaskExtensions = []string{".png", ".jpg", ".jpeg", ".bmp"}

// CandidateNames returns the mask file names to try for an image stem,
// most specific first: the exact stem, then for IMG_-prefixed stems the
// bare numeric suffix and the suffix with leading zeros stripped.
func CandidateNames(stem string) []string {
	var names []string
	for _, ext := range MaskExtensions {
		names = append(names, stem+ext)
	}

	if number, ok := strings.CutPrefix(stem, "IMG_"); ok {
		for _, ext := range MaskExtensions {
			names = append(names, number+ext)
			if n, err := strconv.Atoi(number); err == nil {
				names = append(names, strconv.Itoa(n)+ext)
			}
		}
	}

	return names
}

// ResolveMask finds the segmentation mask for a source image by trying
// each candidate name in each mask folder in order. The first existing
// file wins. The second return is false when no candidate exists.
func ResolveMask(imagePath string, maskDirs []string) (string, bool) {
	base := filepath.Base(imagePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	names := CandidateNames(stem)

	for _, dir := range maskDirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true
			}
		}
	}

	return "", false
}
