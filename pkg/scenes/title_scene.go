package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/vector"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/acclimation/pkg/game"
	"github.com/decker502/acclimation/pkg/gui"
	"github.com/decker502/acclimation/pkg/types"
)

// titleView 标题界面绑定的控件
type titleView struct {
	LoadLevel1 *gui.Control `gui:"loadLevel1Button"`
	Credits    *gui.Control `gui:"creditsButton"`
}

// TitleScene 标题场景
// 显示一个缓慢变色的球体与两个按钮：进入第一关、制作人员名单
type TitleScene struct {
	*game.RenderTargetScene

	doc    *gui.Document
	view   titleView
	sounds *game.SoundEffects
	input  SceneInput

	elapsed float64
}

// NewTitleScene 加载标题界面并创建场景
func NewTitleScene(params *game.GameParams) (*TitleScene, error) {
	path, err := assetPath(params, types.GuiFileTitle)
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
	return newTitleScene(params, doc, sfx, NewEbitenSceneInput())
}

func newTitleScene(params *game.GameParams, doc *gui.Document, sfx *game.SoundEffects, input SceneInput) (*TitleScene, error) {
	s := &TitleScene{
		RenderTargetScene: game.NewRenderTargetScene(params.Device, params.ScreenWidth, params.ScreenHeight),
		doc:               doc,
		sounds:            sfx,
		input:             input,
	}
	if err := gui.Bind(doc, &s.view); err != nil {
		return nil, fmt.Errorf("title gui: %w", err)
	}

	s.view.LoadLevel1.OnClick().Add(func(*gui.Control) {
		s.sounds.Play(types.SoundEffectClick, clickVolume)
		log.Printf("[Title] 请求第一关")
		s.Request(game.RequestLevel1)
	})
	s.view.Credits.OnClick().Add(func(*gui.Control) {
		s.sounds.Play(types.SoundEffectClick, clickVolume)
		log.Printf("[Title] 请求制作人员名单")
		s.Request(game.RequestCredits)
	})
	return s, nil
}

// Update 实现 Scene
func (s *TitleScene) Update(deltaTime float64) error {
	s.elapsed += deltaTime
	dispatchClick(s.doc, s.input, s.RenderTargetScene)
	s.sounds.Update()
	return nil
}

// Render 实现 Scene
func (s *TitleScene) Render() {
	canvas := s.Canvas()
	if canvas == nil {
		return
	}
	canvas.Fill(color.RGBA{R: 0x20, G: 0x24, B: 0x30, A: 0xff})

	w, h := s.Size()
	hue := math.Mod(s.elapsed*20, 360)
	sphere := colorful.Hsv(hue, 0.35, 0.85)
	shade := sphere.BlendLab(colorful.Color{}, 0.45)
	cx, cy := float32(w)*0.6, float32(h)*0.5
	r := float32(h) * 0.2
	vector.DrawFilledCircle(canvas, cx, cy, r, shade, true)
	vector.DrawFilledCircle(canvas, cx-r*0.15, cy-r*0.15, r*0.8, sphere, true)

	s.doc.Draw(canvas)
}

// Dispose 实现 Scene
func (s *TitleScene) Dispose() {
	s.sounds.StopAll()
	s.DisposeTarget()
	log.Printf("[Title] 场景已释放")
}
