package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// imageExtensions are tried in order when locating a split member on disk
var imageExtensions = []string{".jpg", ".JPG", ".png", ".PNG", ".jpeg", ".JPEG", ".bmp", ".BMP"}

// LoadSplit reads a newline-separated stem manifest. Stems are
// deduplicated and returned sorted so traversal is deterministic.
func LoadSplit(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read split file %s: %v", path, err)
	}

	seen := make(map[string]bool)
	var stems []string
	for _, line := range strings.Split(string(data), "\n") {
		stem := strings.TrimSpace(line)
		if stem == "" || seen[stem] {
			continue
		}
		seen[stem] = true
		stems = append(stems, stem)
	}

	sort.Strings(stems)
	return stems, nil
}

// FindImage locates the image file for a stem, trying each known
// extension in order
func FindImage(imagesDir, stem string) (string, bool) {
	for _, ext := range imageExtensions {
		candidate := filepath.Join(imagesDir, stem+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}
