package app

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"github.com/ayusman/sentrycam/internal/targeting"
)

// quitKey ends the frame loop when pressed in the display window.
const quitKey = 'q'

// Run executes the frame loop until the quit key is pressed, Stop is called,
// or a fatal capture error occurs. Camera open and frame read failures are
// fatal; detector errors and frames without a face are per-frame conditions
// that keep the loop running.
func (a *App) Run() error {
	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	defer a.camera.Close()

	a.poller.Start()
	defer a.poller.Stop()
	defer a.detector.Close()

	var window *gocv.Window
	if !a.cfg.Headless {
		window = gocv.NewWindow("sentrycam")
		defer window.Close()
	}

	a.log.WithFields(logrus.Fields{
		"camera":     a.cfg.CameraIndex,
		"resolution": fmt.Sprintf("%dx%d", a.cfg.FrameWidth, a.cfg.FrameHeight),
	}).Info("frame loop started")

	for {
		select {
		case <-a.stopCh:
			a.log.Info("frame loop stopped")
			return nil
		default:
		}

		frame, err := a.camera.ReadFrame()
		if err != nil {
			return fmt.Errorf("read frame: %w", err)
		}

		// Mirror the feed so on-screen motion matches the user's.
		gocv.Flip(*frame, frame, 1)

		target := a.processFrame(frame)
		fps := a.fps.Tick()

		a.renderer.DrawTarget(frame, target)
		a.renderer.DrawInfoPanel(frame, fps, a.poller.Snapshot())

		a.publish(target, fps, encodeJPEG(frame))

		if window != nil {
			window.IMShow(*frame)
			if key := window.WaitKey(1); key == quitKey {
				frame.Close()
				a.log.Info("quit key pressed")
				return nil
			}
		}
		frame.Close()
	}
}

// processFrame runs detection and targeting for one frame and returns the aim
// solution, or nil when no usable face is present.
func (a *App) processFrame(frame *gocv.Mat) *targeting.Target {
	a.mu.RLock()
	det := a.detector
	a.mu.RUnlock()

	detections, err := det.Detect(frame)
	if err != nil {
		a.log.WithField("error", err).Error("face detection failed")
		return nil
	}

	box, ok := targeting.Largest(detections, frame.Cols(), frame.Rows())
	if !ok {
		return nil
	}

	target, err := a.engine.Compute(box, frame.Cols(), frame.Rows())
	if err != nil {
		// Zero-height boxes should not survive the selector, but the
		// engine guards anyway.
		a.log.WithField("error", err).Warn("targeting solution undefined")
		return nil
	}

	return &target
}

// encodeJPEG encodes the frame for the MJPEG stream. Returns nil on failure;
// the stream simply keeps the previous frame.
func encodeJPEG(frame *gocv.Mat) []byte {
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return nil
	}
	defer buf.Close()

	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	return data
}
