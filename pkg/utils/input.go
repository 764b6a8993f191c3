// Package utils 提供按键、指针、缓动与平台相关的小工具
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Pointer 合并鼠标左键与第一个触摸点的指针输入
// 触摸释放的那一帧已经读不到触摸位置，因此记录最后一次触摸位置
type Pointer struct {
	touchX, touchY int
}

// Update 记录当前触摸位置，每帧读取指针前调用
func (p *Pointer) Update() {
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		p.touchX, p.touchY = ebiten.TouchPosition(ids[0])
	}
}

// JustPressed 本帧是否按下，以及按下位置
func (p *Pointer) JustPressed() (x, y int, ok bool) {
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		p.touchX, p.touchY = ebiten.TouchPosition(ids[0])
		return p.touchX, p.touchY, true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y = ebiten.CursorPosition()
		return x, y, true
	}
	return 0, 0, false
}

// JustReleased 本帧是否释放，以及释放位置；GUI 按钮在释放时触发点击
func (p *Pointer) JustReleased() (x, y int, ok bool) {
	if ids := inpututil.AppendJustReleasedTouchIDs(nil); len(ids) > 0 {
		return p.touchX, p.touchY, true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y = ebiten.CursorPosition()
		return x, y, true
	}
	return 0, 0, false
}
