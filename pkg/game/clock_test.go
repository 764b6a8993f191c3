package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock_Tick(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	c := newClock(60, func() time.Time { return now })

	assert.Equal(t, time.Second/60, c.Tick(), "第一帧使用名义间隔")

	now = now.Add(20 * time.Millisecond)
	assert.Equal(t, 20*time.Millisecond, c.Tick())

	now = now.Add(5 * time.Second)
	assert.Equal(t, maxFrameDelta, c.Tick())

	now = now.Add(-time.Second)
	assert.Zero(t, c.Tick())
}

func TestClock_DefaultTPS(t *testing.T) {
	c := newClock(0, time.Now)
	assert.Equal(t, time.Second/60, c.Tick())
}
