package overlay

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// fpsWindowSize is the number of inter-frame samples the meter averages over.
const fpsWindowSize = 30

// FPSMeter measures the frame rate from inter-frame deltas, smoothed over a
// sliding window so the readout does not flicker.
type FPSMeter struct {
	samples []float64
	next    int
	filled  bool
	prev    time.Time
}

// NewFPSMeter creates an FPSMeter with an empty window.
func NewFPSMeter() *FPSMeter {
	return &FPSMeter{
		samples: make([]float64, fpsWindowSize),
	}
}

// Tick records a frame boundary and returns the smoothed FPS. The first call
// establishes the baseline and returns 0.
func (m *FPSMeter) Tick() float64 {
	return m.tickAt(time.Now())
}

func (m *FPSMeter) tickAt(now time.Time) float64 {
	if m.prev.IsZero() {
		m.prev = now
		return 0
	}

	delta := now.Sub(m.prev).Seconds()
	m.prev = now
	if delta <= 0 {
		return m.Value()
	}

	m.samples[m.next] = 1.0 / delta
	m.next = (m.next + 1) % len(m.samples)
	if m.next == 0 {
		m.filled = true
	}

	return m.Value()
}

// Value returns the current smoothed FPS without recording a frame.
func (m *FPSMeter) Value() float64 {
	if m.filled {
		return stat.Mean(m.samples, nil)
	}
	if m.next == 0 {
		return 0
	}
	return stat.Mean(m.samples[:m.next], nil)
}
