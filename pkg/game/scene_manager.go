package game

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/decker502/acclimation/pkg/coroutine"
	"github.com/decker502/acclimation/pkg/effects"
)

const (
	blurSpeed = 0.04
	fadeSpeed = 0.02

	// 模糊强度低于该值时复用上一帧的模糊结果
	blurRecomputeThreshold = 0.01
)

// SceneFactory 创建场景，在后台 goroutine 中执行
type SceneFactory func() (Scene, error)

// SceneRenderer 持有当前场景，并以模糊 + 淡出到黑色的过渡切换场景
//
// 切换序列在帧末调度器上以协程执行，不受关卡暂停影响：
//
//	模糊 0→1，淡出 0→1，释放旧场景，等待 padding，
//	异步创建新场景，安装，淡入 1→0，去模糊 1→0
type SceneRenderer struct {
	device     effects.Device
	blur       *effects.BlurEffect
	fade       *effects.FadeToColorEffect
	endOfFrame *coroutine.Scheduler

	active  Scene
	blurred effects.Surface

	blurStrength float64
	fadeStrength float64

	width, height int
}

// NewSceneRenderer 创建渲染器，初始为全黑
func NewSceneRenderer(device effects.Device, width, height int) (*SceneRenderer, error) {
	blur, err := effects.NewBlurEffect(device)
	if err != nil {
		return nil, fmt.Errorf("scene renderer: %w", err)
	}
	fade, err := effects.NewFadeToColorEffect(device)
	if err != nil {
		return nil, fmt.Errorf("scene renderer: %w", err)
	}
	return &SceneRenderer{
		device:       device,
		blur:         blur,
		fade:         fade,
		endOfFrame:   coroutine.NewScheduler(),
		blurStrength: 1,
		fadeStrength: 1,
		width:        width,
		height:       height,
	}, nil
}

// ActiveScene 当前场景，切换途中为 nil
func (r *SceneRenderer) ActiveScene() Scene {
	return r.active
}

// BlurStrength 当前模糊强度
func (r *SceneRenderer) BlurStrength() float64 {
	return r.blurStrength
}

// FadeStrength 当前淡出强度
func (r *SceneRenderer) FadeStrength() float64 {
	return r.fadeStrength
}

// Scheduler 帧末调度器
func (r *SceneRenderer) Scheduler() *coroutine.Scheduler {
	return r.endOfFrame
}

// Update 更新当前场景
func (r *SceneRenderer) Update(deltaTime float64) error {
	if r.active == nil {
		return nil
	}
	return r.active.Update(deltaTime)
}

// Tick 推进帧末调度器
func (r *SceneRenderer) Tick(delta time.Duration) error {
	return r.endOfFrame.Tick(delta)
}

// Size 当前视口尺寸
func (r *SceneRenderer) Size() (int, int) {
	return r.width, r.height
}

// Resize 记录视口尺寸并通知当前场景
func (r *SceneRenderer) Resize(width, height int) {
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	if r.active != nil {
		r.active.Resize(width, height)
	}
}

// Draw 渲染当前场景并合成到 screen
func (r *SceneRenderer) Draw(screen effects.Surface) {
	if r.active == nil {
		return
	}
	r.active.Render()
	target := r.active.RenderTarget()
	if target == nil {
		return
	}

	if r.blurred == nil || r.blurStrength > blurRecomputeThreshold ||
		r.blurred.Bounds().Size() != target.Bounds().Size() {
		r.blurred = r.blur.Render(target)
	}
	r.fade.Render(screen, target, r.blurred, color.Black, r.fadeStrength, r.blurStrength)
}

// LoadScene 在协程 co 中执行完整的切换序列，返回新场景
func (r *SceneRenderer) LoadScene(co *coroutine.Co, factory SceneFactory, padding time.Duration) (Scene, error) {
	co.Call(r.blurTo(1))
	co.Call(r.fadeTo(1))

	if r.active != nil {
		log.Printf("[SceneRenderer] 释放场景 %T", r.active)
		r.active.Dispose()
		r.active = nil
	}

	co.Call(coroutine.Delay(padding))

	pending := coroutine.Go(factory)
	co.Await(pending)
	scene, err := pending.Result()
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}

	scene.Resize(r.width, r.height)
	r.active = scene
	log.Printf("[SceneRenderer] 场景已安装 %T", scene)

	co.Call(r.fadeTo(0))
	co.Call(r.blurTo(0))
	return scene, nil
}

// LoadSceneAsync 在帧末调度器上启动切换序列
// onLoaded 在整个序列结束后调用；工厂失败时任务以该错误结束，不调用 onLoaded
func (r *SceneRenderer) LoadSceneAsync(factory SceneFactory, padding time.Duration, onLoaded func(Scene)) *coroutine.Task {
	return r.endOfFrame.Start(func(co *coroutine.Co) {
		scene, err := r.LoadScene(co, factory, padding)
		if err != nil {
			co.Fail(err)
		}
		if onLoaded != nil {
			onLoaded(scene)
		}
	})
}

func (r *SceneRenderer) blurTo(target float64) coroutine.Func {
	return approach(&r.blurStrength, target, blurSpeed)
}

func (r *SceneRenderer) fadeTo(target float64) coroutine.Func {
	return approach(&r.fadeStrength, target, fadeSpeed)
}

// approach 每个 Tick 以固定步长逼近目标值，最后对齐到目标并再让出一次
func approach(value *float64, target, speed float64) coroutine.Func {
	return func(co *coroutine.Co) {
		for math.Abs(target-*value) > speed {
			if target > *value {
				*value += speed
			} else {
				*value -= speed
			}
			co.Yield()
		}
		*value = target
		co.Yield()
	}
}

// Dispose 停止切换并释放当前场景与效果表面
func (r *SceneRenderer) Dispose() {
	r.endOfFrame.Close()
	if r.active != nil {
		r.active.Dispose()
		r.active = nil
	}
	r.blur.Dispose()
	r.blurred = nil
}
