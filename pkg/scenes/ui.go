package scenes

import (
	"time"

	"github.com/decker502/acclimation/pkg/game"
	"github.com/decker502/acclimation/pkg/gui"
)

// clickVolume 按钮点击音效音量
const clickVolume = 0.1

// dispatchClick 在指针释放时把点击分发给 GUI 文档
// 返回是否有按钮响应
func dispatchClick(doc *gui.Document, input SceneInput, base *game.RenderTargetScene) bool {
	x, y, ok := input.PointerJustReleased()
	if !ok {
		return false
	}
	w, h := base.Size()
	doc.Layout(float64(w), float64(h))
	return doc.HandleClick(x, y)
}

// secondsToDuration 将帧间隔（秒）转换为调度器使用的 time.Duration
func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
