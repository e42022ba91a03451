package palette

import "testing"

func TestWrapHue(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0.25, 0.25},
		{1.25, 0.25},
		{-0.1, 0.9},
		{-1, 0},
		{1, 0},
	}

	for _, tt := range tests {
		got := WrapHue(tt.in)
		if d := got - tt.want; d > 1e-6 || d < -1e-6 {
			t.Errorf("WrapHue(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got < 0 || got >= 1 {
			t.Errorf("WrapHue(%v) = %v outside [0, 1)", tt.in, got)
		}
	}
}

func TestRGB(t *testing.T) {
	tests := []struct {
		name       string
		hue, light float32
		r, g, b    uint8
	}{
		{"red", 0, 0.5, 255, 0, 0},
		{"green", 1.0 / 3.0, 0.5, 0, 255, 0},
		{"blue", 2.0 / 3.0, 0.5, 0, 0, 255},
		{"wrapped red", 1, 0.5, 255, 0, 0},
		{"black", 0.3, 0, 0, 0, 0},
		{"white", 0.3, 1, 255, 255, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := RGB(tt.hue, tt.light)
			if diff(r, tt.r) > 1 || diff(g, tt.g) > 1 || diff(b, tt.b) > 1 {
				t.Errorf("RGB(%v, %v) = (%d, %d, %d), want (%d, %d, %d)", tt.hue, tt.light, r, g, b, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestAlpha8(t *testing.T) {
	if got := Alpha8(1); got != 255 {
		t.Errorf("Alpha8(1) = %d, want 255", got)
	}
	if got := Alpha8(-0.2); got != 0 {
		t.Errorf("Alpha8(-0.2) = %d, want 0", got)
	}
	if got := Alpha8(0.5); got != 128 {
		t.Errorf("Alpha8(0.5) = %d, want 128", got)
	}
}

func diff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
