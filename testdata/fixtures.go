// Package testdata provides synthetic frames for tests that need image input
// without a camera.
package testdata

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// NewBlankFrame creates a dark frame of the given size. The caller owns the
// returned Mat and must Close it.
func NewBlankFrame(width, height int) *gocv.Mat {
	mat := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(30, 30, 30, 0),
		height, width, gocv.MatTypeCV8UC3,
	)
	return &mat
}

// NewFaceFrame creates a frame with a bright face-shaped ellipse inside the
// given box. It is enough to exercise drawing and encoding paths; it is not
// expected to trigger a real detector.
func NewFaceFrame(width, height int, face image.Rectangle) *gocv.Mat {
	mat := NewBlankFrame(width, height)

	center := image.Pt(
		(face.Min.X+face.Max.X)/2,
		(face.Min.Y+face.Max.Y)/2,
	)
	axes := image.Pt(face.Dx()/2, face.Dy()/2)
	skin := color.RGBA{R: 210, G: 180, B: 160}

	gocv.Ellipse(mat, center, axes, 0, 0, 360, skin, -1)
	return mat
}
