package scenes

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/decker502/acclimation/pkg/coroutine"
	"github.com/decker502/acclimation/pkg/game"
	"github.com/decker502/acclimation/pkg/gui"
	"github.com/decker502/acclimation/pkg/types"
	"github.com/decker502/acclimation/pkg/utils"
)

const (
	// creditsScrollEnd 名单滚动的终点（像素）
	creditsScrollEnd = -5000.0
	// creditsScrollMillisPerPixel 每滚动 1 像素所需的毫秒数
	creditsScrollMillisPerPixel = 12.0
)

type creditsView struct {
	Stack *gui.Control `gui:"creditsStackPanel"`
	Skip  *gui.Control `gui:"skipButton"`
}

// CreditsScene 制作人员名单
// 名单自下而上滚动，滚动结束或点击跳过后回到标题
type CreditsScene struct {
	*game.RenderTargetScene

	doc    *gui.Document
	view   creditsView
	sounds *game.SoundEffects
	input  SceneInput

	// 帧调度器，不受暂停影响
	render *coroutine.Scheduler
}

// NewCreditsScene 加载名单界面并创建场景
func NewCreditsScene(params *game.GameParams) (*CreditsScene, error) {
	path, err := assetPath(params, types.GuiFileCredits)
	if err != nil {
		return nil, err
	}
	doc, err := gui.Load(path)
	if err != nil {
		return nil, err
	}
	sfx, err := loadSoundEffects(params)
	if err != nil {
		return nil, err
	}
	applyVolume(params, sfx, nil)
	return newCreditsScene(params, doc, sfx, NewEbitenSceneInput(), utils.EbitenPointerLock{})
}

func newCreditsScene(params *game.GameParams, doc *gui.Document, sfx *game.SoundEffects, input SceneInput, pointer utils.PointerLock) (*CreditsScene, error) {
	pointer.Release()

	s := &CreditsScene{
		RenderTargetScene: game.NewRenderTargetScene(params.Device, params.ScreenWidth, params.ScreenHeight),
		doc:               doc,
		sounds:            sfx,
		input:             input,
		render:            coroutine.NewScheduler(),
	}
	if err := gui.Bind(doc, &s.view); err != nil {
		return nil, fmt.Errorf("credits gui: %w", err)
	}

	s.sounds.Play(types.SoundEffectCreditsMusic, 1)

	s.view.Skip.OnClick().Add(func(*gui.Control) {
		s.sounds.Play(types.SoundEffectClick, clickVolume)
		log.Printf("[Credits] 跳过")
		s.Request(game.RequestTitle)
	})
	s.render.Start(s.scrollCoroutine)
	return s, nil
}

func (s *CreditsScene) scrollCoroutine(co *coroutine.Co) {
	for top := 0.0; top > creditsScrollEnd; top -= float64(co.Delta()) / float64(time.Millisecond) / creditsScrollMillisPerPixel {
		s.view.Stack.SetTop(top)
		co.Yield()
	}
	log.Printf("[Credits] 滚动结束")
	s.Request(game.RequestTitle)
}

// Update 实现 Scene
func (s *CreditsScene) Update(deltaTime float64) error {
	dispatchClick(s.doc, s.input, s.RenderTargetScene)
	s.sounds.Update()
	return s.render.Tick(secondsToDuration(deltaTime))
}

// Render 实现 Scene
func (s *CreditsScene) Render() {
	canvas := s.Canvas()
	if canvas == nil {
		return
	}
	canvas.Fill(color.Black)
	s.doc.Draw(canvas)
}

// Dispose 实现 Scene
func (s *CreditsScene) Dispose() {
	s.render.Close()
	s.sounds.StopAll()
	s.DisposeTarget()
	log.Printf("[Credits] 场景已释放")
}
