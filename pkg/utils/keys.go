package utils

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 按键显示名
const (
	KeyNameSpace   = "Space"
	KeyNameUnbound = "[unbound]"
)

var letterKeys = [26]ebiten.Key{
	ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF,
	ebiten.KeyG, ebiten.KeyH, ebiten.KeyI, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL,
	ebiten.KeyM, ebiten.KeyN, ebiten.KeyO, ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR,
	ebiten.KeyS, ebiten.KeyT, ebiten.KeyU, ebiten.KeyV, ebiten.KeyW, ebiten.KeyX,
	ebiten.KeyY, ebiten.KeyZ,
}

// ParseKeyName 将显示名（"W"、"Space"）解析为 Ebitengine 按键
// "[unbound]" 与其他无法识别的名字返回 false
func ParseKeyName(name string) (ebiten.Key, bool) {
	if name == KeyNameSpace {
		return ebiten.KeySpace, true
	}
	if len(name) != 1 {
		return 0, false
	}
	c := strings.ToUpper(name)[0]
	if c < 'A' || c > 'Z' {
		return 0, false
	}
	return letterKeys[c-'A'], true
}

// KeyName 返回按键的显示名，只支持可绑定的按键
func KeyName(key ebiten.Key) (string, bool) {
	if key == ebiten.KeySpace {
		return KeyNameSpace, true
	}
	for i, k := range letterKeys {
		if k == key {
			return string(rune('A' + i)), true
		}
	}
	return "", false
}

// CaptureKeyName 返回本帧刚按下的第一个可绑定按键的显示名
func CaptureKeyName() (string, bool) {
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if name, ok := KeyName(k); ok {
			return name, true
		}
	}
	return "", false
}
