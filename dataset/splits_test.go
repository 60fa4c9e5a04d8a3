package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readSplit(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("cannot read %s: %v", path, err)
	}
	var stems []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			stems = append(stems, line)
		}
	}
	return stems
}

func TestReorganizeSplits(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "train.txt"), "IMG_001.JPG\nIMG_003\n")
	writeFile(t, filepath.Join(root, "val_0.txt"), "IMG_002.JPG\n")

	imagesDir := filepath.Join(root, "apples", "images")
	for _, name := range []string{"IMG_001.JPG", "IMG_002.JPG", "IMG_003.JPG", "IMG_004.JPG"} {
		writeFile(t, filepath.Join(imagesDir, name), "jpeg-bytes")
	}

	if err := ReorganizeSplits(root); err != nil {
		t.Fatalf("ReorganizeSplits: %v", err)
	}

	setsDir := filepath.Join(root, "apples", "sets")
	tests := []struct {
		file string
		want []string
	}{
		// IMG_004 is in neither manifest and falls into train.
		{"train.txt", []string{"IMG_001", "IMG_003", "IMG_004"}},
		{"val.txt", []string{"IMG_002"}},
		{"all.txt", []string{"IMG_001", "IMG_002", "IMG_003", "IMG_004"}},
		{"train_val.txt", []string{"IMG_001", "IMG_002", "IMG_003", "IMG_004"}},
	}
	for _, tt := range tests {
		got := readSplit(t, filepath.Join(setsDir, tt.file))
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("%s = %v, want %v", tt.file, got, tt.want)
		}
	}
}

func TestReorganizeSplitsNoManifests(t *testing.T) {
	root := t.TempDir()
	imagesDir := filepath.Join(root, "peaches", "images")
	writeFile(t, filepath.Join(imagesDir, "flower.png"), "png-bytes")

	if err := ReorganizeSplits(root); err != nil {
		t.Fatalf("ReorganizeSplits: %v", err)
	}

	train := readSplit(t, filepath.Join(root, "peaches", "sets", "train.txt"))
	if len(train) != 1 || train[0] != "flower" {
		t.Errorf("train = %v, want [flower]", train)
	}
	val := readSplit(t, filepath.Join(root, "peaches", "sets", "val.txt"))
	if len(val) != 0 {
		t.Errorf("val = %v, want empty", val)
	}
}
