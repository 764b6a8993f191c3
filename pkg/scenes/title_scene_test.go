package scenes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/acclimation/pkg/game"
	"github.com/decker502/acclimation/pkg/gui"
	"github.com/decker502/acclimation/pkg/types"
)

func newTestTitle(t *testing.T) (*TitleScene, *fakeInput, *game.SoundEffects) {
	t.Helper()
	doc, err := gui.Load("data/gui/title.yaml")
	require.NoError(t, err)
	in := newFakeInput()
	sfx := game.NewSoundEffects(nil)
	s, err := newTitleScene(testParams(t), doc, sfx, in)
	require.NoError(t, err)
	return s, in, sfx
}

func TestTitleScene_Buttons(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want []game.SceneRequest
	}{
		{name: "第一关按钮", x: 100, y: 320, want: []game.SceneRequest{game.RequestLevel1}},
		{name: "名单按钮", x: 100, y: 400, want: []game.SceneRequest{game.RequestCredits}},
		{name: "空白处", x: 1000, y: 100, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, in, sfx := newTestTitle(t)
			defer s.Dispose()
			got := recordRequests(s)

			in.clickAt(tt.x, tt.y)
			require.NoError(t, s.Update(1.0/60))

			assert.Equal(t, tt.want, *got)
			assert.Equal(t, tt.want != nil, sfx.IsPlaying(types.SoundEffectClick))
		})
	}
}

func TestTitleScene_NoRequestAfterDispose(t *testing.T) {
	s, in, _ := newTestTitle(t)
	got := recordRequests(s)
	s.Dispose()

	in.clickAt(100, 320)
	require.NoError(t, s.Update(1.0/60))
	assert.Empty(t, *got)
}

func TestTitleScene_MissingControl(t *testing.T) {
	doc, err := gui.Parse([]byte("name: broken\ncontrols:\n  - name: loadLevel1Button\n    kind: button\n"))
	require.NoError(t, err)

	_, err = newTitleScene(testParams(t), doc, game.NewSoundEffects(nil), newFakeInput())
	assert.ErrorIs(t, err, gui.ErrControlNotFound)
}
