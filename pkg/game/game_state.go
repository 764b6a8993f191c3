package game

import "github.com/decker502/acclimation/pkg/event"

// PauseState 关卡的暂停状态
// 暂停期间关卡的玩法调度器不推进、物理停用；渲染调度器与帧末调度器不受影响
type PauseState struct {
	paused   bool
	onPause  *event.Observable[struct{}]
	onResume *event.Observable[struct{}]
}

// NewPauseState 创建未暂停的状态
func NewPauseState() *PauseState {
	return &PauseState{
		onPause:  event.New[struct{}](),
		onResume: event.New[struct{}](),
	}
}

// Paused 是否暂停
func (p *PauseState) Paused() bool {
	return p.paused
}

// SetPaused 切换暂停状态，状态变化时通知订阅者
// 返回状态是否发生变化
func (p *PauseState) SetPaused(paused bool) bool {
	if p.paused == paused {
		return false
	}
	p.paused = paused
	if paused {
		p.onPause.Notify(struct{}{})
	} else {
		p.onResume.Notify(struct{}{})
	}
	return true
}

// OnPause 进入暂停
func (p *PauseState) OnPause() *event.Observable[struct{}] {
	return p.onPause
}

// OnResume 退出暂停
func (p *PauseState) OnResume() *event.Observable[struct{}] {
	return p.onResume
}
