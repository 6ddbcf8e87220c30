// Package overlay renders the heads-up display: target box, aim arrow, text
// readouts, and the weather info panel.
package overlay

import (
	"image/color"

	"gocv.io/x/gocv"
)

// Theme holds the cosmetic constants of the HUD. None of these affect the
// targeting math, only its presentation.
type Theme struct {
	Font          gocv.HersheyFont
	FontScaleMain float64
	FontScaleInfo float64
	FontThickness int

	ColorPrimary   color.RGBA // target bounding box
	ColorSecondary color.RGBA // panel border
	ColorAccent    color.RGBA // aim arrow, status text
	ColorBG        color.RGBA // panel fill
	ColorText      color.RGBA
	ColorShadow    color.RGBA

	BoxCornerRadius int
	ArrowThickness  int
	PanelAlpha      float64

	PanelWidth  int
	PanelHeight int
	PanelMargin int
}

// DefaultTheme returns the stock HUD look.
func DefaultTheme() Theme {
	return Theme{
		Font:          gocv.FontHersheySimplex,
		FontScaleMain: 0.6,
		FontScaleInfo: 0.5,
		FontThickness: 1,

		ColorPrimary:   color.RGBA{R: 255, G: 255, B: 0, A: 255},
		ColorSecondary: color.RGBA{R: 0, G: 128, B: 255, A: 255},
		ColorAccent:    color.RGBA{R: 255, G: 0, B: 255, A: 255},
		ColorBG:        color.RGBA{R: 40, G: 40, B: 40, A: 255},
		ColorText:      color.RGBA{R: 255, G: 255, B: 255, A: 255},
		ColorShadow:    color.RGBA{R: 0, G: 0, B: 0, A: 255},

		BoxCornerRadius: 15,
		ArrowThickness:  2,
		PanelAlpha:      0.4,

		PanelWidth:  250,
		PanelHeight: 150,
		PanelMargin: 15,
	}
}

// conditionTags maps OpenWeatherMap condition groups to short HUD tags.
// Hershey fonts cannot draw emoji, so these are plain ASCII.
var conditionTags = map[string]string{
	"Clear":        "[SUN]",
	"Clouds":       "[CLD]",
	"Rain":         "[RAIN]",
	"Drizzle":      "[DRZ]",
	"Thunderstorm": "[STORM]",
	"Snow":         "[SNOW]",
	"Mist":         "[MIST]",
}

// ConditionTag returns the HUD tag for a weather condition group, or an empty
// string for unknown conditions.
func ConditionTag(condition string) string {
	return conditionTags[condition]
}
