package detector

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"gocv.io/x/gocv"
)

// yunetModelFile is the ONNX model filename the detector searches for.
const yunetModelFile = "face_detection_yunet_2023mar.onnx"

// YuNetDetector implements Detector using the OpenCV YuNet DNN face detector.
type YuNetDetector struct {
	config    Config
	fd        gocv.FaceDetectorYN
	inputSize image.Point
	mu        sync.Mutex
	closed    bool
}

// NewYuNetDetector creates a new YuNet detector. It fails if the model file
// cannot be found on disk.
func NewYuNetDetector(config Config) (*YuNetDetector, error) {
	modelPath := findYuNetModel(config.ModelDir)
	if modelPath == "" {
		return nil, fmt.Errorf("%s not found", yunetModelFile)
	}

	// The input size is updated per frame; 320x320 is just the initial value.
	size := image.Pt(320, 320)
	fd := gocv.NewFaceDetectorYNWithParams(modelPath, "", size,
		float32(config.MinConfidence), 0.3, 5000, 0, 0)

	return &YuNetDetector{
		config:    config,
		fd:        fd,
		inputSize: size,
	}, nil
}

// Detect analyzes a frame and returns detected face regions with normalized
// coordinates. Detections below the configured confidence are filtered by the
// model itself.
func (d *YuNetDetector) Detect(frame *gocv.Mat) ([]Detection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, fmt.Errorf("detector is closed")
	}
	if frame == nil || frame.Empty() {
		return nil, fmt.Errorf("empty frame")
	}

	cols := frame.Cols()
	rows := frame.Rows()

	size := image.Pt(cols, rows)
	if size != d.inputSize {
		d.fd.SetInputSize(size)
		d.inputSize = size
	}

	faces := gocv.NewMat()
	defer faces.Close()
	d.fd.Detect(*frame, &faces)

	if faces.Empty() {
		return []Detection{}, nil
	}

	// Each row is one face: x, y, w, h, ten landmark values, score.
	result := make([]Detection, 0, faces.Rows())
	for i := 0; i < faces.Rows(); i++ {
		det := Detection{
			X:     float64(faces.GetFloatAt(i, 0)) / float64(cols),
			Y:     float64(faces.GetFloatAt(i, 1)) / float64(rows),
			W:     float64(faces.GetFloatAt(i, 2)) / float64(cols),
			H:     float64(faces.GetFloatAt(i, 3)) / float64(rows),
			Score: float64(faces.GetFloatAt(i, 14)),
		}
		if det.Score < d.config.MinConfidence {
			continue
		}
		result = append(result, det)
	}

	return result, nil
}

// Close releases the underlying DNN model.
func (d *YuNetDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	return d.fd.Close()
}

// findYuNetModel looks for the YuNet ONNX model in the override directory,
// common relative locations, next to the executable, and ~/.sentrycam/models.
func findYuNetModel(override string) string {
	var candidates []string
	if override != "" {
		candidates = append(candidates, filepath.Join(override, yunetModelFile))
	}

	candidates = append(candidates,
		filepath.Join("models", yunetModelFile),
		filepath.Join("..", "models", yunetModelFile),
	)

	if execPath, err := os.Executable(); err == nil {
		candidates = append(candidates,
			filepath.Join(filepath.Dir(execPath), "models", yunetModelFile))
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(homeDir, ".sentrycam", "models", yunetModelFile))
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
