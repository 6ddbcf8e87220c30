// Package targeting computes aim geometry from detected face regions: depth
// estimation, pan/tilt servo angles, and projectile drop compensation.
package targeting

import (
	"errors"
	"image"
	"math"
)

// Servo angle limits in degrees. An offset at the frame edge maps to the limit.
const (
	MinServoAngle = -45.0
	MaxServoAngle = 45.0
)

// ErrDepthUndefined is returned when the bounding box has no height, which
// makes the pinhole depth estimate undefined.
var ErrDepthUndefined = errors.New("bounding box height is zero, depth undefined")

// Config holds the physical constants the engine needs.
type Config struct {
	// FaceHeightCm is the assumed real-world face height in centimeters.
	FaceHeightCm float64

	// FocalLength is the camera focal length in pixels.
	FocalLength float64

	// MuzzleVelocity is the projectile velocity in m/s used for drop
	// compensation.
	MuzzleVelocity float64

	// Gravity is the gravitational acceleration in m/s^2.
	Gravity float64
}

// DefaultConfig returns a Config with the default physical constants.
func DefaultConfig() Config {
	return Config{
		FaceHeightCm:   18.0,
		FocalLength:    750.0,
		MuzzleVelocity: 100.0,
		Gravity:        9.81,
	}
}

// Target is the aim solution for a single frame. It is recomputed every frame
// and never persisted.
type Target struct {
	// Box is the face bounding box in pixel space.
	Box image.Rectangle `json:"box"`

	// FaceCenter and FrameCenter are pixel coordinates.
	FaceCenter  image.Point `json:"face_center"`
	FrameCenter image.Point `json:"frame_center"`

	// DepthCm is the estimated camera-to-face distance, rounded to 1 decimal.
	DepthCm float64 `json:"depth_cm"`

	// ServoX and ServoY are the pan/tilt angles in degrees, rounded to
	// 1 decimal. ServoY includes the drop compensation.
	ServoX float64 `json:"servo_x"`
	ServoY float64 `json:"servo_y"`

	// Compensation is the extra tilt in degrees countering projectile drop
	// over the estimated distance, rounded to 2 decimals. Never negative.
	Compensation float64 `json:"compensation"`
}

// Engine computes Targets from bounding boxes. It holds no mutable state;
// Compute is a pure function of its inputs.
type Engine struct {
	config Config
}

// NewEngine creates an Engine with the given physical constants.
func NewEngine(config Config) *Engine {
	return &Engine{config: config}
}

// Compute produces the aim solution for a face bounding box within a frame of
// the given dimensions. The box must have positive height; a zero-height box
// returns ErrDepthUndefined.
func (e *Engine) Compute(box image.Rectangle, frameWidth, frameHeight int) (Target, error) {
	w := box.Dx()
	h := box.Dy()
	if h <= 0 {
		return Target{}, ErrDepthUndefined
	}

	// Pinhole model: apparent height shrinks linearly with distance.
	depthCm := e.config.FaceHeightCm * e.config.FocalLength / float64(h)

	faceCenter := image.Pt(box.Min.X+w/2, box.Min.Y+h/2)
	frameCenter := image.Pt(frameWidth/2, frameHeight/2)

	offsetX := float64(faceCenter.X - frameCenter.X)
	offsetY := float64(faceCenter.Y - frameCenter.Y)

	halfW := float64(frameWidth / 2)
	halfH := float64(frameHeight / 2)

	servoX := lerp(offsetX, -halfW, halfW, MinServoAngle, MaxServoAngle)
	// Inverted: a face below center needs the turret to tilt down.
	servoY := lerp(offsetY, -halfH, halfH, MaxServoAngle, MinServoAngle)

	comp := e.dropCompensation(depthCm)

	return Target{
		Box:          box,
		FaceCenter:   faceCenter,
		FrameCenter:  frameCenter,
		DepthCm:      round1(depthCm),
		ServoX:       round1(servoX),
		ServoY:       round1(servoY + comp),
		Compensation: comp,
	}, nil
}

// dropCompensation returns the extra tilt in degrees needed to counter
// gravity drop over the time of flight to the estimated distance, rounded to
// 2 decimals. Non-positive distances yield exactly zero: there is nothing to
// compensate at the muzzle.
func (e *Engine) dropCompensation(depthCm float64) float64 {
	depthM := depthCm / 100.0
	if depthM <= 0 {
		return 0
	}

	timeOfFlight := depthM / e.config.MuzzleVelocity
	dropM := 0.5 * e.config.Gravity * timeOfFlight * timeOfFlight

	return round2(radToDeg(math.Atan(dropM / depthM)))
}

// lerp maps v from [lo, hi] onto [outLo, outHi], saturating at the endpoints.
// outLo may be greater than outHi for an inverted mapping.
func lerp(v, lo, hi, outLo, outHi float64) float64 {
	if v <= lo {
		return outLo
	}
	if v >= hi {
		return outHi
	}
	return outLo + (v-lo)*(outHi-outLo)/(hi-lo)
}

func radToDeg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
