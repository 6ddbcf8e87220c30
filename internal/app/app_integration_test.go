package app

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"github.com/ayusman/sentrycam/internal/capture"
	"github.com/ayusman/sentrycam/internal/config"
	"github.com/ayusman/sentrycam/internal/detector"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Headless = true
	// No API key: the poller short-circuits and never touches the network.
	cfg.WeatherAPIKey = ""
	return cfg
}

func TestApp_ProcessFrame_CenteredFace(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a := New(testConfig(), testLogger())

	mock := detector.NewMockDetector()
	mock.SetDetections([]detector.Detection{detector.CenteredFace()})
	a.SetDetector(mock)

	frame := gocv.NewMatWithSize(720, 1280, gocv.MatTypeCV8UC3)
	defer frame.Close()

	target := a.processFrame(&frame)
	if target == nil {
		t.Fatal("processFrame() returned no target for a detected face")
	}

	// CenteredFace is the 200x180 box at (540, 270): dead center, 75cm out.
	if target.DepthCm != 75.0 {
		t.Errorf("DepthCm = %v, want 75.0", target.DepthCm)
	}
	if target.ServoX != 0.0 {
		t.Errorf("ServoX = %v, want 0.0", target.ServoX)
	}
	if target.ServoY != 0.0 {
		t.Errorf("ServoY = %v, want 0.0", target.ServoY)
	}
	if target.Compensation != 0.02 {
		t.Errorf("Compensation = %v, want 0.02", target.Compensation)
	}
}

func TestApp_ProcessFrame_PicksLargestFace(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a := New(testConfig(), testLogger())

	mock := detector.NewMockDetector()
	mock.SetDetections([]detector.Detection{
		detector.OffCenterFace(),
		detector.CenteredFace(),
	})
	a.SetDetector(mock)

	frame := gocv.NewMatWithSize(720, 1280, gocv.MatTypeCV8UC3)
	defer frame.Close()

	target := a.processFrame(&frame)
	if target == nil {
		t.Fatal("processFrame() returned no target")
	}

	// The centered face is the larger of the two.
	if target.DepthCm != 75.0 {
		t.Errorf("DepthCm = %v, want 75.0 from the larger face", target.DepthCm)
	}
}

func TestApp_ProcessFrame_NoFaces(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a := New(testConfig(), testLogger())
	a.SetDetector(detector.NewMockDetector())

	frame := gocv.NewMatWithSize(720, 1280, gocv.MatTypeCV8UC3)
	defer frame.Close()

	if target := a.processFrame(&frame); target != nil {
		t.Errorf("processFrame() = %+v, want nil for empty detections", target)
	}
}

func TestApp_RunLoop_StopAndPublish(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a := New(testConfig(), testLogger())

	mock := detector.NewMockDetector()
	mock.SetDetections([]detector.Detection{detector.CenteredFace()})
	a.SetDetector(mock)

	frame := gocv.NewMatWithSize(720, 1280, gocv.MatTypeCV8UC3)
	defer frame.Close()
	a.SetCamera(capture.NewMockCamera([]*gocv.Mat{&frame}, true))

	done := make(chan error, 1)
	go func() { done <- a.Run() }()

	// Wait for the loop to publish at least one processed frame.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if a.LastTarget() != nil && a.LatestJPEG() != nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	target := a.LastTarget()
	if target == nil {
		t.Fatal("loop never published a target")
	}
	if target.DepthCm != 75.0 {
		t.Errorf("published DepthCm = %v, want 75.0", target.DepthCm)
	}
	if a.LatestJPEG() == nil {
		t.Error("loop never published an annotated frame")
	}
	if a.SessionID() == "" {
		t.Error("SessionID() is empty")
	}

	a.Stop()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not stop after Stop()")
	}
}

func TestApp_RunLoop_FrameReadFailureIsFatal(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a := New(testConfig(), testLogger())
	a.SetDetector(detector.NewMockDetector())
	// A mock camera with no frames fails on the first read.
	a.SetCamera(capture.NewMockCamera(nil, false))

	if err := a.Run(); err == nil {
		t.Error("Run() = nil error, want fatal error when frame read fails")
	}
}
