package maskproc

import (
	"image"
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"

	_ "golang.org/x/image/bmp" // Register BMP format decoder
)

// ImageSize reads the pixel dimensions from an image file header.
// Unreadable or unrecognized files fall back to the default size; this
// is a degraded result, not an error.
func ImageSize(path string) (width, height int) {
	f, err := os.Open(path)
	if err != nil {
		return DefaultSize, DefaultSize
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return DefaultSize, DefaultSize
	}

	return cfg.Width, cfg.Height
}
