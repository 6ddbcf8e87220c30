package overlay

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/ayusman/sentrycam/internal/targeting"
	"github.com/ayusman/sentrycam/internal/weather"
)

// Renderer draws the HUD onto captured frames. It is pure presentation: all
// numbers it shows are computed elsewhere.
type Renderer struct {
	frameWidth  int
	frameHeight int
	city        string
	theme       Theme
}

// NewRenderer creates a Renderer for frames of the given dimensions. The city
// name is shown in the weather panel.
func NewRenderer(frameWidth, frameHeight int, city string, theme Theme) *Renderer {
	return &Renderer{
		frameWidth:  frameWidth,
		frameHeight: frameHeight,
		city:        city,
		theme:       theme,
	}
}

// DrawTarget draws the bounding box, the aim arrow from face center to frame
// center, and the servo/depth readouts. A nil target draws nothing.
func (r *Renderer) DrawTarget(img *gocv.Mat, target *targeting.Target) {
	if target == nil {
		return
	}

	t := r.theme

	gocv.Rectangle(img, target.Box, t.ColorPrimary, 2)
	gocv.ArrowedLine(img, target.FaceCenter, target.FrameCenter, t.ColorAccent, t.ArrowThickness)

	lines := []string{
		fmt.Sprintf("Servo X: %v deg", target.ServoX),
		fmt.Sprintf("Servo Y: %v deg", target.ServoY),
		fmt.Sprintf("Drop Comp: +%v deg", target.Compensation),
		fmt.Sprintf("Depth: %v cm", target.DepthCm),
	}

	x := target.Box.Min.X
	y := target.Box.Min.Y - 20*len(lines) + 10
	for i, line := range lines {
		drawTextWithShadow(img, line, image.Pt(x, y+20*i), t.Font,
			t.FontScaleMain, t.ColorText, t.ColorShadow, t.FontThickness)
	}
}

// DrawInfoPanel draws the translucent rounded panel with FPS and the cached
// weather snapshot in the top-right corner.
func (r *Renderer) DrawInfoPanel(img *gocv.Mat, fps float64, snap weather.Snapshot) {
	t := r.theme

	panel := r.panelRect()

	// Translucent fill: draw on a copy, then blend it back.
	scratch := img.Clone()
	drawRoundedRect(&scratch, panel, t.ColorBG, t.BoxCornerRadius, -1)
	gocv.AddWeighted(scratch, t.PanelAlpha, *img, 1-t.PanelAlpha, 0, img)
	scratch.Close()

	drawRoundedRect(img, panel, t.ColorSecondary, t.BoxCornerRadius, 2)

	textX := panel.Min.X + 15
	textY := panel.Min.Y + 25

	drawTextWithShadow(img, fmt.Sprintf("FPS: %.1f", fps), image.Pt(textX, textY),
		t.Font, t.FontScaleInfo, t.ColorText, t.ColorShadow, t.FontThickness)

	if snap.State == weather.StateReady {
		rows := []string{
			fmt.Sprintf("Location: %s", r.city),
			fmt.Sprintf("Weather: %s %s", snap.Description, ConditionTag(snap.Condition)),
			fmt.Sprintf("Temp: %.1f C", snap.TempC),
			fmt.Sprintf("Humidity: %.0f%%", snap.Humidity),
		}
		offsets := []int{30, 55, 80, 105}
		for i, row := range rows {
			drawTextWithShadow(img, row, image.Pt(textX, textY+offsets[i]),
				t.Font, t.FontScaleInfo, t.ColorText, t.ColorShadow, t.FontThickness)
		}
		return
	}

	drawTextWithShadow(img, StatusText(snap), image.Pt(textX, textY+30),
		t.Font, t.FontScaleInfo, t.ColorAccent, t.ColorShadow, t.FontThickness)
}

// panelRect returns the info panel bounds in the top-right corner.
func (r *Renderer) panelRect() image.Rectangle {
	t := r.theme
	return image.Rect(
		r.frameWidth-t.PanelWidth-t.PanelMargin,
		t.PanelMargin,
		r.frameWidth-t.PanelMargin,
		t.PanelHeight+t.PanelMargin,
	)
}

// StatusText returns the string shown in place of the weather rows when no
// successful reading is cached.
func StatusText(snap weather.Snapshot) string {
	if snap.State == weather.StateError {
		return snap.Err
	}
	return "Loading..."
}
