package player

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenInput 基于 Ebitengine 的输入实现
// 鼠标位移仅在光标被捕获（指针锁定）时生效
type EbitenInput struct {
	lastX, lastY int
	primed       bool
}

// NewEbitenInput 创建输入实例
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{}
}

// CursorDelta 实现 Input
func (e *EbitenInput) CursorDelta() (float64, float64) {
	x, y := ebiten.CursorPosition()
	if ebiten.CursorMode() != ebiten.CursorModeCaptured || !e.primed {
		e.lastX, e.lastY = x, y
		e.primed = ebiten.CursorMode() == ebiten.CursorModeCaptured
		return 0, 0
	}
	dx, dy := x-e.lastX, y-e.lastY
	e.lastX, e.lastY = x, y
	return float64(dx), float64(dy)
}

// IsKeyPressed 实现 Input
func (e *EbitenInput) IsKeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

// IsKeyJustPressed 实现 Input
func (e *EbitenInput) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}
