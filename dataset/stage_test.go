package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStageOriginalData(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "AppleA", "FlowerImages", "IMG_001.JPG"), "jpeg-bytes")
	writeFile(t, filepath.Join(root, "AppleA", "FlowerImages", "IMG_001.json"), "{}")
	writeFile(t, filepath.Join(root, "Peach_1", "PeachSelected", "flower.png"), "png-bytes")
	writeFile(t, filepath.Join(root, "train.txt"), "IMG_001.JPG\n")
	writeFile(t, filepath.Join(root, "apples", "images", "IMG_001.JPG"), "jpeg-bytes")

	if err := StageOriginalData(root); err != nil {
		t.Fatalf("StageOriginalData: %v", err)
	}

	originDir := filepath.Join(root, "data", "origin")
	for _, path := range []string{
		"AppleA/FlowerImages/IMG_001.JPG",
		"Peach_1/PeachSelected/flower.png",
		"train.txt",
	} {
		if _, err := os.Stat(filepath.Join(originDir, filepath.FromSlash(path))); err != nil {
			t.Errorf("missing staged %s: %v", path, err)
		}
	}

	// Source entries are gone from the root, the reorganized category stays.
	if _, err := os.Stat(filepath.Join(root, "AppleA")); err == nil {
		t.Error("AppleA should have been moved out of the root")
	}
	if _, err := os.Stat(filepath.Join(root, "apples", "images", "IMG_001.JPG")); err != nil {
		t.Error("reorganized category should be untouched")
	}

	// Generated JSON files are stripped during staging.
	if _, err := os.Stat(filepath.Join(originDir, "AppleA", "FlowerImages", "IMG_001.json")); err == nil {
		t.Error("staged JSON file should have been deleted")
	}
}

func TestStageOriginalDataSkipsExisting(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "train.txt"), "new\n")
	writeFile(t, filepath.Join(root, "data", "origin", "train.txt"), "old\n")

	if err := StageOriginalData(root); err != nil {
		t.Fatalf("StageOriginalData: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "data", "origin", "train.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "old\n" {
		t.Errorf("staged manifest = %q, want the existing copy kept", data)
	}
	if _, err := os.Stat(filepath.Join(root, "train.txt")); err != nil {
		t.Error("skipped source entry should remain in place")
	}
}

func TestCleanGeneratedJSON(t *testing.T) {
	root := t.TempDir()
	imagesDir := filepath.Join(root, "data", "origin", "AppleA", "FlowerImages")
	writeFile(t, filepath.Join(imagesDir, "IMG_001.json"), "{}")
	writeFile(t, filepath.Join(imagesDir, "IMG_002.json"), "{}")
	writeFile(t, filepath.Join(imagesDir, "IMG_001.JPG"), "jpeg-bytes")
	writeFile(t, filepath.Join(root, "data", "origin", "Pear_1", "Pear", "flower.json"), "{}")

	count, err := CleanGeneratedJSON(root)
	if err != nil {
		t.Fatalf("CleanGeneratedJSON: %v", err)
	}
	if count != 3 {
		t.Errorf("deleted %d files, want 3", count)
	}

	if _, err := os.Stat(filepath.Join(imagesDir, "IMG_001.JPG")); err != nil {
		t.Error("image files must survive cleaning")
	}
	if _, err := os.Stat(filepath.Join(imagesDir, "IMG_001.json")); err == nil {
		t.Error("JSON files should be gone")
	}
}

func TestCleanGeneratedJSONEmptyRoot(t *testing.T) {
	count, err := CleanGeneratedJSON(t.TempDir())
	if err != nil {
		t.Fatalf("CleanGeneratedJSON: %v", err)
	}
	if count != 0 {
		t.Errorf("deleted %d files, want 0", count)
	}
}
