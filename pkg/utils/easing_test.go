package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEaseOutCubic(t *testing.T) {
	assert.Zero(t, EaseOutCubic(0))
	assert.Equal(t, 1.0, EaseOutCubic(1))
	assert.InDelta(t, 0.875, EaseOutCubic(0.5), 1e-12)

	// 前半段快于匀速
	for p := 0.1; p < 0.5; p += 0.1 {
		assert.Greater(t, EaseOutCubic(p), p)
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		name    string
		a, b, t float64
		want    float64
	}{
		{"start", 0, 100, 0, 0},
		{"middle", 0, 100, 0.5, 50},
		{"end", 0, 100, 1, 100},
		{"negative range", -50, 50, 0.5, 0},
		{"reversed range", 100, 0, 0.25, 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Lerp(tt.a, tt.b, tt.t), 1e-12)
		})
	}
}

func TestSmoothConverges(t *testing.T) {
	assert.InDelta(t, 0.8, Smooth(1, 0, 0.2), 1e-12)

	alpha := 0.0
	for i := 0; i < 60; i++ {
		alpha = Smooth(alpha, 1, 0.2)
	}
	assert.InDelta(t, 1, alpha, 1e-4)
}
