package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	detections []Detection
	err        error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetDetections sets the detections that will be returned by Detect.
func (m *MockDetector) SetDetections(detections []Detection) {
	m.detections = detections
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured detections or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]Detection, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.detections, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// CenteredFace returns a preset Detection for a face centered in the frame.
// With a 1280x720 frame this is the 200x180 box at (540, 270).
func CenteredFace() Detection {
	return Detection{
		X:     0.421875,
		Y:     0.375,
		W:     0.15625,
		H:     0.25,
		Score: 0.95,
	}
}

// OffCenterFace returns a preset Detection for a small face in the upper-left
// quadrant of the frame.
func OffCenterFace() Detection {
	return Detection{
		X:     0.1,
		Y:     0.1,
		W:     0.1,
		H:     0.15,
		Score: 0.9,
	}
}
