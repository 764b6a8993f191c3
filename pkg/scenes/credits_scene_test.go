package scenes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/acclimation/pkg/game"
	"github.com/decker502/acclimation/pkg/gui"
	"github.com/decker502/acclimation/pkg/types"
)

func newTestCredits(t *testing.T) (*CreditsScene, *fakeInput, *fakePointer, *game.SoundEffects) {
	t.Helper()
	doc, err := gui.Load("data/gui/credits.yaml")
	require.NoError(t, err)
	in := newFakeInput()
	ptr := &fakePointer{locked: true}
	sfx := game.NewSoundEffects(nil)
	s, err := newCreditsScene(testParams(t), doc, sfx, in, ptr)
	require.NoError(t, err)
	t.Cleanup(s.Dispose)
	return s, in, ptr, sfx
}

func TestCreditsScene_ReleasesPointerAndPlaysMusic(t *testing.T) {
	_, _, ptr, sfx := newTestCredits(t)
	assert.False(t, ptr.locked)
	assert.Equal(t, 1, ptr.releases)
	assert.True(t, sfx.IsPlaying(types.SoundEffectCreditsMusic))
}

func TestCreditsScene_Scrolls(t *testing.T) {
	s, _, _, _ := newTestCredits(t)

	require.NoError(t, s.Update(1))
	assert.Equal(t, 0.0, s.view.Stack.Top)

	// 每秒滚动 1000/12 像素
	require.NoError(t, s.Update(1))
	assert.InDelta(t, -1000.0/12, s.view.Stack.Top, 1e-6)
}

func TestCreditsScene_ScrollEndReturnsToTitle(t *testing.T) {
	s, _, _, _ := newTestCredits(t)
	got := recordRequests(s)

	for i := 0; i < 70 && len(*got) == 0; i++ {
		require.NoError(t, s.Update(1))
	}
	assert.Equal(t, []game.SceneRequest{game.RequestTitle}, *got)
	assert.Greater(t, s.view.Stack.Top, creditsScrollEnd)
}

func TestCreditsScene_Skip(t *testing.T) {
	s, in, _, sfx := newTestCredits(t)
	got := recordRequests(s)

	in.clickAt(1150, 660)
	require.NoError(t, s.Update(1.0/60))

	assert.Equal(t, []game.SceneRequest{game.RequestTitle}, *got)
	assert.True(t, sfx.IsPlaying(types.SoundEffectClick))
}
