package targeting

import (
	"errors"
	"image"
	"math"
	"testing"
)

func TestEngine_DepthEstimate(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	tests := []struct {
		name    string
		height  int
		wantCm  float64
	}{
		{"example box", 200, 67.5},
		{"close face", 450, 30.0},
		{"far face", 50, 270.0},
		{"odd height", 90, 150.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := image.Rect(100, 100, 100+tt.height, 100+tt.height)
			target, err := engine.Compute(box, 1280, 720)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if target.DepthCm != tt.wantCm {
				t.Errorf("DepthCm = %v, want %v", target.DepthCm, tt.wantCm)
			}
			if target.DepthCm <= 0 {
				t.Errorf("DepthCm = %v, must be positive", target.DepthCm)
			}
		})
	}
}

func TestEngine_ZeroHeightBox(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	_, err := engine.Compute(image.Rect(100, 100, 300, 100), 1280, 720)
	if !errors.Is(err, ErrDepthUndefined) {
		t.Errorf("Compute() error = %v, want ErrDepthUndefined", err)
	}
}

func TestEngine_ServoX_EndpointsAndClamping(t *testing.T) {
	const frameW, frameH = 1280, 720

	tests := []struct {
		name    string
		offsetX float64
		want    float64
	}{
		{"left edge", -640, -45.0},
		{"right edge", 640, 45.0},
		{"center", 0, 0.0},
		{"half right", 320, 22.5},
		{"beyond left clamps", -1000, -45.0},
		{"beyond right clamps", 1000, 45.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lerp(tt.offsetX, -frameW/2, frameW/2, MinServoAngle, MaxServoAngle)
			if got != tt.want {
				t.Errorf("lerp(%v) = %v, want %v", tt.offsetX, got, tt.want)
			}
		})
	}

	// Monotonic increasing across the domain.
	prev := math.Inf(-1)
	for offset := -640.0; offset <= 640.0; offset += 64 {
		v := lerp(offset, -frameW/2, frameW/2, MinServoAngle, MaxServoAngle)
		if v < prev {
			t.Fatalf("servo X not monotonic increasing at offset %v: %v < %v", offset, v, prev)
		}
		prev = v
	}
}

func TestEngine_ServoY_InvertedMapping(t *testing.T) {
	const frameH = 720

	// Face above center (negative offset) tilts up to +45; below tilts to -45.
	if got := lerp(-360, -frameH/2, frameH/2, MaxServoAngle, MinServoAngle); got != 45.0 {
		t.Errorf("servo Y at top edge = %v, want 45.0", got)
	}
	if got := lerp(360, -frameH/2, frameH/2, MaxServoAngle, MinServoAngle); got != -45.0 {
		t.Errorf("servo Y at bottom edge = %v, want -45.0", got)
	}

	// Monotonic decreasing across the domain.
	prev := math.Inf(1)
	for offset := -360.0; offset <= 360.0; offset += 36 {
		v := lerp(offset, -frameH/2, frameH/2, MaxServoAngle, MinServoAngle)
		if v > prev {
			t.Fatalf("servo Y not monotonic decreasing at offset %v: %v > %v", offset, v, prev)
		}
		prev = v
	}
}

func TestEngine_DropCompensation(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	// Compensation is never negative: gravity only pulls down.
	for _, depthCm := range []float64{1, 67.5, 300, 10000} {
		if comp := engine.dropCompensation(depthCm); comp < 0 {
			t.Errorf("dropCompensation(%v) = %v, want >= 0", depthCm, comp)
		}
	}

	// Non-positive distance is a normal degenerate case, defined as zero.
	for _, depthCm := range []float64{0, -10} {
		if comp := engine.dropCompensation(depthCm); comp != 0 {
			t.Errorf("dropCompensation(%v) = %v, want exactly 0", depthCm, comp)
		}
	}

	// Drop grows with distance, so compensation must too (pre-rounding this
	// is strict; at these distances the rounded values still differ).
	near := engine.dropCompensation(500)
	far := engine.dropCompensation(5000)
	if far <= near {
		t.Errorf("compensation at 50m (%v) should exceed compensation at 5m (%v)", far, near)
	}
}

func TestEngine_WorkedExample(t *testing.T) {
	// The full end-to-end example: a 200x200 face centered in a 1280x720
	// frame at the default constants.
	engine := NewEngine(Config{
		FaceHeightCm:   18.0,
		FocalLength:    750.0,
		MuzzleVelocity: 100.0,
		Gravity:        9.81,
	})

	target, err := engine.Compute(image.Rect(540, 260, 740, 460), 1280, 720)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if target.DepthCm != 67.5 {
		t.Errorf("DepthCm = %v, want 67.5", target.DepthCm)
	}
	if target.FaceCenter != image.Pt(640, 360) {
		t.Errorf("FaceCenter = %v, want (640,360)", target.FaceCenter)
	}
	if target.FrameCenter != image.Pt(640, 360) {
		t.Errorf("FrameCenter = %v, want (640,360)", target.FrameCenter)
	}
	if target.ServoX != 0.0 {
		t.Errorf("ServoX = %v, want 0.0", target.ServoX)
	}
	if target.Compensation != 0.02 {
		t.Errorf("Compensation = %v, want 0.02", target.Compensation)
	}
	// 0.0 + 0.02 rounds back to 0.0 at one decimal.
	if target.ServoY != 0.0 {
		t.Errorf("ServoY = %v, want 0.0", target.ServoY)
	}
}

func TestEngine_OffCenterTarget(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	// 100x100 face in the upper-left quadrant of a 1280x720 frame.
	target, err := engine.Compute(image.Rect(100, 100, 200, 200), 1280, 720)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	// faceCenter=(150,150), offsets=(-490,-210).
	if target.FaceCenter != image.Pt(150, 150) {
		t.Errorf("FaceCenter = %v, want (150,150)", target.FaceCenter)
	}
	// -490/640*45 = -34.453... -> -34.5
	if target.ServoX != -34.5 {
		t.Errorf("ServoX = %v, want -34.5", target.ServoX)
	}
	// Raw Y: -210 maps inverted to +26.25; depth 135cm adds 0.04 comp.
	// 26.25 + 0.04 = 26.29 -> 26.3
	if target.DepthCm != 135.0 {
		t.Errorf("DepthCm = %v, want 135.0", target.DepthCm)
	}
	if target.Compensation != 0.04 {
		t.Errorf("Compensation = %v, want 0.04", target.Compensation)
	}
	if target.ServoY != 26.3 {
		t.Errorf("ServoY = %v, want 26.3", target.ServoY)
	}
}

func TestRounding(t *testing.T) {
	if got := round1(26.29); got != 26.3 {
		t.Errorf("round1(26.29) = %v, want 26.3", got)
	}
	if got := round1(-34.453125); got != -34.5 {
		t.Errorf("round1(-34.453125) = %v, want -34.5", got)
	}
	if got := round2(0.019); got != 0.02 {
		t.Errorf("round2(0.019) = %v, want 0.02", got)
	}
	if got := round2(0.0149); got != 0.01 {
		t.Errorf("round2(0.0149) = %v, want 0.01", got)
	}
}
