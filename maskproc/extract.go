package maskproc

import (
	"image"

	"flowercoco/logging"

	"gocv.io/x/gocv"
)

const (
	// Pixels at or above this intensity count as foreground
	whiteThreshold = 200

	// DefaultSize is the assumed edge length when an image cannot be read
	DefaultSize = 512
)

// BoundingBox is an axis-aligned rectangle in pixel coordinates,
// clipped to lie within the image it was derived from.
type BoundingBox struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Slice returns the box as [x, y, width, height] for COCO output
func (b BoundingBox) Slice() []float64 {
	return []float64{float64(b.X), float64(b.Y), float64(b.Width), float64(b.Height)}
}

// Area returns the box area in square pixels
func (b BoundingBox) Area() float64 {
	return float64(b.Width) * float64(b.Height)
}

// FullFrame returns a box covering an entire width x height image
func FullFrame(width, height int) BoundingBox {
	return BoundingBox{X: 0, Y: 0, Width: width, Height: height}
}

// ExtractWhiteBBox computes the bounding rectangle of the dominant
// near-white region in a segmentation mask. The mask is binarized at a
// fixed intensity threshold, the external contour with the largest
// enclosed area is selected, and its bounding rectangle is clamped to
// the image bounds.
//
// Failures never propagate: an unreadable mask yields a full default
// frame, a mask with no foreground yields the mask's own full frame.
// The degraded return reports that a fallback was used.
func ExtractWhiteBBox(maskPath string) (box BoundingBox, degraded bool) {
	img := gocv.IMRead(maskPath, gocv.IMReadColor)
	if img.Empty() {
		logging.LogWarning("Could not read mask image: %s", maskPath)
		return FullFrame(DefaultSize, DefaultSize), true
	}
	defer img.Close()

	width := img.Cols()
	height := img.Rows()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(gray, &thresh, whiteThreshold, 255, gocv.ThresholdBinary)

	contours := gocv.FindContours(thresh, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	if contours.Size() == 0 {
		logging.LogWarning("No white regions found in %s", maskPath)
		return FullFrame(width, height), true
	}

	// Largest contour is assumed to be the main mask region
	largest := contours.At(0)
	largestArea := gocv.ContourArea(largest)
	for i := 1; i < contours.Size(); i++ {
		c := contours.At(i)
		if area := gocv.ContourArea(c); area > largestArea {
			largest = c
			largestArea = area
		}
	}

	rect := gocv.BoundingRect(largest)
	return clampToImage(rect, width, height), false
}

// clampToImage forces a rectangle inside the image so that
// x+width <= imageWidth and y+height <= imageHeight
func clampToImage(r image.Rectangle, imageWidth, imageHeight int) BoundingBox {
	x := clamp(r.Min.X, 0, imageWidth-1)
	y := clamp(r.Min.Y, 0, imageHeight-1)

	w := r.Dx()
	if w > imageWidth-x {
		w = imageWidth - x
	}
	h := r.Dy()
	if h > imageHeight-y {
		h = imageHeight - y
	}

	return BoundingBox{X: x, Y: y, Width: w, Height: h}
}

func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
