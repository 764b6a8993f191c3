package utils

import "github.com/hajimehoshi/ebiten/v2"

// PointerLock 光标锁定（鼠标视角）
type PointerLock interface {
	Locked() bool
	Request()
	Release()
}

// EbitenPointerLock 基于 ebiten.CursorModeCaptured 的光标锁定
// 移动端没有光标，视为始终锁定
type EbitenPointerLock struct{}

// Locked 实现 PointerLock
func (EbitenPointerLock) Locked() bool {
	if IsMobile() {
		return true
	}
	return ebiten.CursorMode() == ebiten.CursorModeCaptured
}

// Request 实现 PointerLock
func (EbitenPointerLock) Request() {
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
}

// Release 实现 PointerLock
func (EbitenPointerLock) Release() {
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
}
