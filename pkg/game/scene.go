package game

import (
	"github.com/decker502/acclimation/pkg/effects"
	"github.com/decker502/acclimation/pkg/event"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneRequest 场景发出的切换请求
type SceneRequest int

const (
	RequestTitle SceneRequest = iota
	RequestLevel1
	RequestCredits
)

var sceneRequestNames = [...]string{"title", "level1", "credits"}

func (r SceneRequest) String() string {
	if r < 0 || int(r) >= len(sceneRequestNames) {
		return "unknown"
	}
	return sceneRequestNames[r]
}

// ParseSceneRequest 解析命令行中的场景名
func ParseSceneRequest(name string) (SceneRequest, bool) {
	for i, n := range sceneRequestNames {
		if n == name {
			return SceneRequest(i), true
		}
	}
	return 0, false
}

// Scene represents a game scene (title, level, credits).
// Each scene owns an off-screen render target; the SceneRenderer composites
// it onto the screen through the blur and fade effects.
type Scene interface {
	// Update advances the scene logic. deltaTime is the frame interval in seconds.
	Update(deltaTime float64) error

	// Render draws the scene into its render target.
	Render()

	// RenderTarget returns the surface drawn by Render, or nil before the first Render.
	RenderTarget() effects.Surface

	// Resize records the new viewport size; the render target follows on the next Render.
	Resize(width, height int)

	// Requests fires when the scene asks for another scene.
	Requests() *event.Observable[SceneRequest]

	// Dispose releases the scene. No method may be called afterwards.
	Dispose()
}

// RenderTargetScene 场景的公共部分：离屏渲染目标、切换请求与尺寸
// 具体场景嵌入该结构体
type RenderTargetScene struct {
	device        effects.Device
	target        effects.Surface
	width, height int
	requests      *event.Observable[SceneRequest]
	disposed      bool
}

// NewRenderTargetScene 创建 width x height 的场景基座
func NewRenderTargetScene(device effects.Device, width, height int) *RenderTargetScene {
	return &RenderTargetScene{
		device:   device,
		width:    width,
		height:   height,
		requests: event.New[SceneRequest](),
	}
}

// Resize 实现 Scene
func (s *RenderTargetScene) Resize(width, height int) {
	s.width, s.height = width, height
}

// Size 当前视口尺寸
func (s *RenderTargetScene) Size() (int, int) {
	return s.width, s.height
}

// PrepareTarget 按当前尺寸准备渲染目标，尺寸变化时重新分配
func (s *RenderTargetScene) PrepareTarget() effects.Surface {
	if s.target != nil {
		size := s.target.Bounds().Size()
		if size.X == s.width && size.Y == s.height {
			return s.target
		}
		s.device.DisposeSurface(s.target)
	}
	s.target = s.device.NewSurface(s.width, s.height)
	return s.target
}

// Canvas 返回可供 Ebitengine 绘制的渲染目标
// 非 Ebitengine 设备（测试）返回 nil
func (s *RenderTargetScene) Canvas() *ebiten.Image {
	img, _ := s.PrepareTarget().(*ebiten.Image)
	return img
}

// RenderTarget 实现 Scene
func (s *RenderTargetScene) RenderTarget() effects.Surface {
	return s.target
}

// Requests 实现 Scene
func (s *RenderTargetScene) Requests() *event.Observable[SceneRequest] {
	return s.requests
}

// Request 发出场景切换请求
func (s *RenderTargetScene) Request(r SceneRequest) {
	if s.disposed {
		return
	}
	s.requests.Notify(r)
}

// Disposed 场景是否已释放
func (s *RenderTargetScene) Disposed() bool {
	return s.disposed
}

// DisposeTarget 释放渲染目标并清空请求订阅
func (s *RenderTargetScene) DisposeTarget() {
	if s.target != nil {
		s.device.DisposeSurface(s.target)
		s.target = nil
	}
	s.requests.Clear()
	s.disposed = true
}
