package targeting

import (
	"image"

	"github.com/ayusman/sentrycam/internal/detector"
)

// Largest picks the detection with the largest pixel-space area and returns
// its bounding box. The comparison is strictly greater-than, so on an exact
// area tie the earlier detection wins; the ordering within the detector's
// output is whatever the model reports. Returns false when there are no
// detections.
//
// Normalized coordinates are scaled to pixels with truncation, matching how
// the overlay addresses pixels.
func Largest(detections []detector.Detection, frameWidth, frameHeight int) (image.Rectangle, bool) {
	var best image.Rectangle
	bestArea := 0
	found := false

	for _, d := range detections {
		x := int(d.X * float64(frameWidth))
		y := int(d.Y * float64(frameHeight))
		w := int(d.W * float64(frameWidth))
		h := int(d.H * float64(frameHeight))

		area := w * h
		if area > bestArea {
			bestArea = area
			best = image.Rect(x, y, x+w, y+h)
			found = true
		}
	}

	return best, found
}
