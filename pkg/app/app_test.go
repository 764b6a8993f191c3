package app

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/acclimation/pkg/effects"
	"github.com/decker502/acclimation/pkg/game"
)

type fakeSurface struct {
	w, h int
}

func (s *fakeSurface) Bounds() image.Rectangle { return image.Rect(0, 0, s.w, s.h) }

type fakeDevice struct{}

func (fakeDevice) NewSurface(w, h int) effects.Surface { return &fakeSurface{w: w, h: h} }
func (fakeDevice) DisposeSurface(effects.Surface)      {}
func (fakeDevice) NewProgram(name string, src []byte) (effects.Program, error) {
	return name, nil
}
func (fakeDevice) Draw(effects.Surface, effects.Program, []effects.Surface, map[string]any) {}

type stubScene struct {
	*game.RenderTargetScene
	name    string
	updates int
	err     error
}

func (s *stubScene) Update(float64) error {
	s.updates++
	return s.err
}

func (s *stubScene) Render() { s.PrepareTarget() }

func (s *stubScene) Dispose() { s.DisposeTarget() }

type stubFactories struct {
	created map[game.SceneRequest]int
	scenes  map[game.SceneRequest]*stubScene
	fail    map[game.SceneRequest]error
}

func newStubFactories() *stubFactories {
	return &stubFactories{
		created: map[game.SceneRequest]int{},
		scenes:  map[game.SceneRequest]*stubScene{},
		fail:    map[game.SceneRequest]error{},
	}
}

func (f *stubFactories) build() map[game.SceneRequest]game.SceneFactory {
	m := map[game.SceneRequest]game.SceneFactory{}
	for _, r := range []game.SceneRequest{game.RequestTitle, game.RequestLevel1, game.RequestCredits} {
		m[r] = func() (game.Scene, error) {
			f.created[r]++
			if err := f.fail[r]; err != nil {
				return nil, err
			}
			s := &stubScene{RenderTargetScene: game.NewRenderTargetScene(fakeDevice{}, 8, 8), name: r.String()}
			f.scenes[r] = s
			return s, nil
		}
	}
	return m
}

func newTestApp(t *testing.T, f *stubFactories) *App {
	t.Helper()
	r, err := game.NewSceneRenderer(fakeDevice{}, 8, 8)
	require.NoError(t, err)
	params := &game.GameParams{ScreenWidth: 8, ScreenHeight: 8, Device: fakeDevice{}}
	a := newApp(r, params, f.build(), time.Millisecond)
	t.Cleanup(a.Dispose)
	return a
}

// runUntilIdle 逐帧推进直到切换结束，返回第一个错误
func runUntilIdle(t *testing.T, a *App) error {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for a.Swapping() {
		require.True(t, time.Now().Before(deadline), "scene swap did not finish")
		if err := a.step(16 * time.Millisecond); err != nil {
			return err
		}
		time.Sleep(time.Millisecond)
	}
	return nil
}

func TestApp_StartsWithRequestedScene(t *testing.T) {
	f := newStubFactories()
	a := newTestApp(t, f)

	a.switchTo(game.RequestTitle)
	require.NoError(t, runUntilIdle(t, a))

	assert.Same(t, f.scenes[game.RequestTitle], a.renderer.ActiveScene())
	assert.Equal(t, 0.0, a.renderer.FadeStrength())
}

func TestApp_SceneRequestSwitchesScene(t *testing.T) {
	f := newStubFactories()
	a := newTestApp(t, f)
	a.switchTo(game.RequestTitle)
	require.NoError(t, runUntilIdle(t, a))

	title := f.scenes[game.RequestTitle]
	title.Request(game.RequestLevel1)
	require.True(t, a.Swapping())

	// 切换中的请求被忽略
	a.switchTo(game.RequestCredits)
	require.NoError(t, runUntilIdle(t, a))

	assert.True(t, title.Disposed())
	assert.Same(t, f.scenes[game.RequestLevel1], a.renderer.ActiveScene())
	assert.Zero(t, f.created[game.RequestCredits])

	f.scenes[game.RequestLevel1].Request(game.RequestCredits)
	require.NoError(t, runUntilIdle(t, a))
	assert.Same(t, f.scenes[game.RequestCredits], a.renderer.ActiveScene())
}

func TestApp_FactoryErrorStopsGame(t *testing.T) {
	errBroken := errors.New("broken level")
	f := newStubFactories()
	f.fail[game.RequestLevel1] = errBroken
	a := newTestApp(t, f)

	a.switchTo(game.RequestLevel1)
	err := runUntilIdle(t, a)
	assert.ErrorIs(t, err, errBroken)
}

func TestApp_SceneUpdateErrorStopsGame(t *testing.T) {
	errScript := errors.New("script failed")
	f := newStubFactories()
	a := newTestApp(t, f)
	a.switchTo(game.RequestTitle)
	require.NoError(t, runUntilIdle(t, a))

	f.scenes[game.RequestTitle].err = errScript
	assert.ErrorIs(t, a.step(16*time.Millisecond), errScript)
}

func TestApp_LayoutFollowsWindowSize(t *testing.T) {
	f := newStubFactories()
	a := newTestApp(t, f)
	a.switchTo(game.RequestTitle)
	require.NoError(t, runUntilIdle(t, a))

	w, h := a.Layout(1920, 1080)
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)

	title := f.scenes[game.RequestTitle]
	sw, sh := title.Size()
	assert.Equal(t, 1920, sw)
	assert.Equal(t, 1080, sh)

	// 下一次绘制按新尺寸重新分配渲染目标
	a.renderer.Draw(&fakeSurface{w: w, h: h})
	assert.Equal(t, image.Pt(1920, 1080), title.RenderTarget().Bounds().Size())

	// 最小化时保持原尺寸
	w, h = a.Layout(0, 0)
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)
}

func TestApp_LayoutAppliesToNextScene(t *testing.T) {
	f := newStubFactories()
	a := newTestApp(t, f)
	a.Layout(640, 360)

	a.switchTo(game.RequestLevel1)
	require.NoError(t, runUntilIdle(t, a))

	w, h := f.scenes[game.RequestLevel1].Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 360, h)
}
