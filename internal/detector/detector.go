// Package detector provides face detection interfaces and types for the
// targeting pipeline.
package detector

import "gocv.io/x/gocv"

// Detection is one candidate face region reported by a detection model.
// Coordinates are normalized to the frame size (0.0-1.0 fractions).
type Detection struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
	Score float64 `json:"score"`
}

// Detector defines the interface for face detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns detected face regions.
	// Returns an empty slice if no faces are detected.
	Detect(frame *gocv.Mat) ([]Detection, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for face detection.
type Config struct {
	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// ModelDir overrides the default model file search locations.
	ModelDir string
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MinConfidence: 0.6,
	}
}
