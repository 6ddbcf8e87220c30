package overlay

import (
	"image"
	"testing"

	"github.com/ayusman/sentrycam/internal/weather"
)

func TestStatusText(t *testing.T) {
	tests := []struct {
		name string
		snap weather.Snapshot
		want string
	}{
		{"loading", weather.Snapshot{State: weather.StateLoading}, "Loading..."},
		{"zero value", weather.Snapshot{}, "Loading..."},
		{"fetch failed", weather.Snapshot{State: weather.StateError, Err: weather.ErrTextUnavailable}, "Weather N/A"},
		{"key missing", weather.Snapshot{State: weather.StateError, Err: weather.ErrTextKeyMissing}, "API Key Missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusText(tt.snap); got != tt.want {
				t.Errorf("StatusText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderer_PanelRect(t *testing.T) {
	r := NewRenderer(1280, 720, "Gurugram", DefaultTheme())

	got := r.panelRect()
	want := image.Rect(1280-250-15, 15, 1280-15, 150+15)
	if got != want {
		t.Errorf("panelRect() = %v, want %v", got, want)
	}

	// The panel must sit inside the frame.
	if !got.In(image.Rect(0, 0, 1280, 720)) {
		t.Errorf("panel %v extends outside the frame", got)
	}
}
