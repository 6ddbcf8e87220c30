package detector

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gocv.io/x/gocv"
)

// cascadeFile is the Haar cascade filename the detector searches for.
const cascadeFile = "haarcascade_frontalface_default.xml"

// CascadeDetector implements Detector using an OpenCV Haar cascade classifier.
// It is the fallback when the YuNet model is unavailable. Haar cascades do not
// report confidence, so every detection carries a score of 1.0.
type CascadeDetector struct {
	classifier gocv.CascadeClassifier
	mu         sync.Mutex
	closed     bool
}

// NewCascadeDetector creates a new Haar cascade face detector. It fails if the
// cascade file cannot be found or loaded.
func NewCascadeDetector(config Config) (*CascadeDetector, error) {
	cascadePath := findCascade(config.ModelDir)
	if cascadePath == "" {
		return nil, fmt.Errorf("%s not found", cascadeFile)
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(cascadePath) {
		classifier.Close()
		return nil, fmt.Errorf("load cascade %s", cascadePath)
	}

	return &CascadeDetector{classifier: classifier}, nil
}

// Detect analyzes a frame and returns detected face regions with normalized
// coordinates.
func (d *CascadeDetector) Detect(frame *gocv.Mat) ([]Detection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, fmt.Errorf("detector is closed")
	}
	if frame == nil || frame.Empty() {
		return nil, fmt.Errorf("empty frame")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	cols := float64(frame.Cols())
	rows := float64(frame.Rows())

	rects := d.classifier.DetectMultiScale(gray)
	result := make([]Detection, len(rects))
	for i, r := range rects {
		result[i] = Detection{
			X:     float64(r.Min.X) / cols,
			Y:     float64(r.Min.Y) / rows,
			W:     float64(r.Dx()) / cols,
			H:     float64(r.Dy()) / rows,
			Score: 1.0,
		}
	}

	return result, nil
}

// Close releases the cascade classifier.
func (d *CascadeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	return d.classifier.Close()
}

// findCascade looks for the Haar cascade file in the override directory,
// common relative locations, and ~/.sentrycam/models.
func findCascade(override string) string {
	var candidates []string
	if override != "" {
		candidates = append(candidates, filepath.Join(override, cascadeFile))
	}

	candidates = append(candidates,
		filepath.Join("models", cascadeFile),
		filepath.Join("..", "models", cascadeFile),
	)

	if homeDir, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(homeDir, ".sentrycam", "models", cascadeFile))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			if absPath, err := filepath.Abs(path); err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}
