package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/acclimation/pkg/player"
	"github.com/decker502/acclimation/pkg/utils"
)

// SceneInput 场景读取的输入：玩家控制输入、按键释放、按键捕获与指针
type SceneInput interface {
	player.Input

	IsKeyJustReleased(key ebiten.Key) bool

	// CapturedKeyName 本帧刚按下的可绑定按键的显示名
	CapturedKeyName() (string, bool)

	// PointerJustPressed 本帧指针（鼠标左键或触摸）是否按下
	PointerJustPressed() bool

	// PointerJustReleased 本帧指针是否释放，以及释放位置
	PointerJustReleased() (x, y float64, ok bool)
}

// ebitenSceneInput 基于 Ebitengine 的场景输入
type ebitenSceneInput struct {
	*player.EbitenInput
	pointer utils.Pointer
}

// NewEbitenSceneInput 创建 Ebitengine 场景输入
func NewEbitenSceneInput() SceneInput {
	return &ebitenSceneInput{EbitenInput: player.NewEbitenInput()}
}

func (e *ebitenSceneInput) IsKeyJustReleased(key ebiten.Key) bool {
	return inpututil.IsKeyJustReleased(key)
}

func (e *ebitenSceneInput) CapturedKeyName() (string, bool) {
	return utils.CaptureKeyName()
}

func (e *ebitenSceneInput) PointerJustPressed() bool {
	e.pointer.Update()
	_, _, ok := e.pointer.JustPressed()
	return ok
}

func (e *ebitenSceneInput) PointerJustReleased() (float64, float64, bool) {
	e.pointer.Update()
	x, y, ok := e.pointer.JustReleased()
	return float64(x), float64(y), ok
}
