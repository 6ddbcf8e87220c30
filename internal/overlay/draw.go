package overlay

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// drawRoundedRect draws a rectangle with rounded corners. A negative thickness
// fills the shape, matching the OpenCV convention.
func drawRoundedRect(img *gocv.Mat, r image.Rectangle, clr color.RGBA, radius, thickness int) {
	x1, y1 := r.Min.X, r.Min.Y
	x2, y2 := r.Max.X, r.Max.Y
	axes := image.Pt(radius, radius)

	// Quarter ellipses for the four corners.
	gocv.Ellipse(img, image.Pt(x1+radius, y1+radius), axes, 180, 0, 90, clr, thickness)
	gocv.Ellipse(img, image.Pt(x2-radius, y1+radius), axes, 270, 0, 90, clr, thickness)
	gocv.Ellipse(img, image.Pt(x1+radius, y2-radius), axes, 90, 0, 90, clr, thickness)
	gocv.Ellipse(img, image.Pt(x2-radius, y2-radius), axes, 0, 0, 90, clr, thickness)

	// Two overlapping rectangles complete the edges.
	gocv.Rectangle(img, image.Rect(x1+radius, y1, x2-radius, y2), clr, thickness)
	gocv.Rectangle(img, image.Rect(x1, y1+radius, x2, y2-radius), clr, thickness)
}

// drawTextWithShadow draws text with a one-pixel drop shadow for readability
// over the video feed.
func drawTextWithShadow(img *gocv.Mat, text string, pos image.Point, font gocv.HersheyFont,
	scale float64, clr, shadow color.RGBA, thickness int) {

	shadowPos := image.Pt(pos.X+1, pos.Y+1)
	gocv.PutTextWithParams(img, text, shadowPos, font, scale, shadow, thickness,
		gocv.LineAA, false)
	gocv.PutTextWithParams(img, text, pos, font, scale, clr, thickness,
		gocv.LineAA, false)
}
