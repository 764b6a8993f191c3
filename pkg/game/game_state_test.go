package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPauseState_NotifiesOnlyOnChange(t *testing.T) {
	p := NewPauseState()
	pauses, resumes := 0, 0
	p.OnPause().Add(func(struct{}) { pauses++ })
	p.OnResume().Add(func(struct{}) { resumes++ })

	assert.False(t, p.SetPaused(false))
	assert.True(t, p.SetPaused(true))
	assert.False(t, p.SetPaused(true))
	assert.True(t, p.Paused())
	assert.True(t, p.SetPaused(false))

	assert.Equal(t, 1, pauses)
	assert.Equal(t, 1, resumes)
	assert.False(t, p.Paused())
}
