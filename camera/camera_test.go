package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(1024, 768)

	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected camera at origin, got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestWorldToScreen(t *testing.T) {
	cam := New(1024, 768)

	tests := []struct {
		name   string
		wx, wy float32
		sx, sy float32
	}{
		{"origin is screen center", 0, 0, 512, 384},
		{"launch point is bottom center", 0, -384, 512, 768},
		{"top edge", 0, 384, 512, 0},
		{"left edge", -512, 0, 0, 384},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy := cam.WorldToScreen(tt.wx, tt.wy)
			if !near(sx, tt.sx) || !near(sy, tt.sy) {
				t.Errorf("WorldToScreen(%v, %v) = (%v, %v), want (%v, %v)", tt.wx, tt.wy, sx, sy, tt.sx, tt.sy)
			}
		})
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1024, 768)
	cam.Pan(37, -12)
	cam.SetZoom(1.7)

	testCases := []struct{ sx, sy float32 }{
		{512, 384},
		{100, 100},
		{1000, 700},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestYAxisPointsUp(t *testing.T) {
	cam := New(1024, 768)

	_, wyTop := cam.ScreenToWorld(512, 10)
	_, wyBottom := cam.ScreenToWorld(512, 700)
	if wyTop <= wyBottom {
		t.Errorf("screen top maps to y=%v, bottom to y=%v; world y should grow upward", wyTop, wyBottom)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1024, 768)

	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom = %v, want max %v", cam.Zoom, cam.MaxZoom)
	}
	cam.ZoomBy(0.0001)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("zoom = %v, want min %v", cam.Zoom, cam.MinZoom)
	}
}

func TestPan(t *testing.T) {
	cam := New(1024, 768)
	cam.SetZoom(2)

	// Dragging the view 100 screen pixels right moves 50 world units at 2x
	cam.Pan(100, 100)
	if !near(cam.X, 50) || !near(cam.Y, -50) {
		t.Errorf("camera at (%v, %v), want (50, -50)", cam.X, cam.Y)
	}

	cam.Reset()
	if cam.X != 0 || cam.Y != 0 || cam.Zoom != 1 {
		t.Errorf("Reset left camera at (%v, %v) zoom %v", cam.X, cam.Y, cam.Zoom)
	}
}

func TestResizeKeepsCenter(t *testing.T) {
	cam := New(1024, 768)
	cam.Pan(40, 0)
	wx, wy := cam.ScreenToWorld(512, 384)

	cam.Resize(800, 600)

	cx, cy := cam.ScreenToWorld(400, 300)
	if !near(cx, wx) || !near(cy, wy) {
		t.Errorf("center moved from (%v, %v) to (%v, %v) on resize", wx, wy, cx, cy)
	}
	if cam.ViewportW != 800 || cam.ViewportH != 600 {
		t.Errorf("viewport = %vx%v, want 800x600", cam.ViewportW, cam.ViewportH)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1024, 768)

	if !cam.IsVisible(0, 0, 1) {
		t.Error("origin should be visible")
	}
	if cam.IsVisible(2000, 0, 10) {
		t.Error("point far right should not be visible")
	}
	if !cam.IsVisible(515, 0, 5) {
		t.Error("circle overlapping the right edge should be visible")
	}
}
