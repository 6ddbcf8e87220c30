// Package app wires the capture, detection, targeting, weather, and overlay
// components into the sentrycam application.
package app

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ayusman/sentrycam/internal/capture"
	"github.com/ayusman/sentrycam/internal/config"
	"github.com/ayusman/sentrycam/internal/detector"
	"github.com/ayusman/sentrycam/internal/overlay"
	"github.com/ayusman/sentrycam/internal/targeting"
	"github.com/ayusman/sentrycam/internal/weather"
)

// App is the main application: one synchronous frame loop, one background
// weather poller, and an optional observer server reading the published state.
type App struct {
	cfg       config.Config
	log       *logrus.Entry
	sessionID string
	start     time.Time

	camera   capture.Camera
	detector detector.Detector
	engine   *targeting.Engine
	poller   *weather.Poller
	renderer *overlay.Renderer
	fps      *overlay.FPSMeter

	// State published for the observer server, replaced wholesale per frame.
	mu         sync.RWMutex
	lastTarget *targeting.Target
	lastFPS    float64
	latestJPEG []byte

	stopCh chan struct{}
}

// New creates an App from the given configuration. The detector is chosen by
// availability: YuNet DNN first, Haar cascade as fallback, and a mock (which
// never detects anything) when no model files are present.
func New(cfg config.Config, logger *logrus.Logger) *App {
	sessionID := uuid.NewString()
	log := logger.WithField("session", sessionID)

	a := &App{
		cfg:       cfg,
		log:       log,
		sessionID: sessionID,
		start:     time.Now(),
		camera:    capture.NewCamera(cfg.CameraIndex, cfg.FrameWidth, cfg.FrameHeight, cfg.TargetFPS),
		engine: targeting.NewEngine(targeting.Config{
			FaceHeightCm:   cfg.FaceHeightCm,
			FocalLength:    cfg.FocalLength,
			MuzzleVelocity: cfg.MuzzleVelocity,
			Gravity:        cfg.Gravity,
		}),
		poller: weather.NewPoller(
			weather.NewClient(cfg.WeatherAPIKey, cfg.WeatherCity, cfg.WeatherUnits),
			cfg.WeatherRefresh,
			log.WithField("component", "weather"),
		),
		renderer: overlay.NewRenderer(cfg.FrameWidth, cfg.FrameHeight, cfg.WeatherCity, overlay.DefaultTheme()),
		fps:      overlay.NewFPSMeter(),
		stopCh:   make(chan struct{}),
	}

	detCfg := detector.Config{MinConfidence: cfg.MinConfidence}
	if yn, err := detector.NewYuNetDetector(detCfg); err == nil {
		a.detector = yn
		log.Info("using YuNet face detection")
	} else if cascade, cascadeErr := detector.NewCascadeDetector(detCfg); cascadeErr == nil {
		a.detector = cascade
		log.WithField("error", err).Info("YuNet unavailable, using Haar cascade face detection")
	} else {
		log.WithField("error", cascadeErr).Warn("no face detection model available, using mock detector")
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetDetector sets the face detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera sets the camera implementation to use.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// SetWeatherPoller replaces the weather poller. Must be called before Run.
func (a *App) SetWeatherPoller(p *weather.Poller) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.poller = p
}

// Stop signals the frame loop to exit. Safe to call more than once.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	select {
	case <-a.stopCh:
	default:
		close(a.stopCh)
	}
}

// SessionID returns the unique ID for this process run.
func (a *App) SessionID() string {
	return a.sessionID
}

// Uptime returns how long the App has existed.
func (a *App) Uptime() time.Duration {
	return time.Since(a.start)
}

// FPS returns the smoothed frame rate of the loop.
func (a *App) FPS() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastFPS
}

// LastTarget returns the most recent aim solution, or nil when no face was
// found in the last processed frame.
func (a *App) LastTarget() *targeting.Target {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastTarget
}

// WeatherSnapshot returns the cached weather reading.
func (a *App) WeatherSnapshot() weather.Snapshot {
	return a.poller.Snapshot()
}

// LatestJPEG returns the most recent annotated frame encoded as JPEG, or nil
// before the first frame is processed.
func (a *App) LatestJPEG() []byte {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.latestJPEG
}

// publish stores the per-frame observer state.
func (a *App) publish(target *targeting.Target, fps float64, jpeg []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastTarget = target
	a.lastFPS = fps
	if jpeg != nil {
		a.latestJPEG = jpeg
	}
}
