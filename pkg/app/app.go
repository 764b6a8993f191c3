// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/acclimation/pkg/config"
	"github.com/decker502/acclimation/pkg/effects"
	"github.com/decker502/acclimation/pkg/game"
	"github.com/decker502/acclimation/pkg/scenes"
	"github.com/decker502/acclimation/pkg/utils"
)

const (
	// DefaultPadding 旧场景释放后、新场景创建前的等待时间
	DefaultPadding = config.DefaultSceneSwapPaddingMillis * time.Millisecond

	appName    = "acclimation"
	sampleRate = 48000
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Scene 启动场景："title"、"level1" 或 "credits"，为空时为标题
	Scene string
	// Padding 场景切换的等待时间，为 0 时使用 DefaultPadding
	Padding time.Duration
	// Width, Height 逻辑屏幕尺寸，为 0 时使用默认窗口尺寸
	Width, Height int
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	renderer  *game.SceneRenderer
	params    *game.GameParams
	factories map[game.SceneRequest]game.SceneFactory
	clock     *game.Clock
	padding   time.Duration
	verbose   bool

	// 切换进行中时忽略新的场景请求
	swapping bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	start := game.RequestTitle
	if cfg.Scene != "" {
		r, ok := game.ParseSceneRequest(cfg.Scene)
		if !ok {
			return nil, fmt.Errorf("unknown scene %q", cfg.Scene)
		}
		start = r
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = config.GameWindowWidth, config.GameWindowHeight
	}
	if cfg.Padding <= 0 {
		cfg.Padding = DefaultPadding
	}

	assets, err := game.LoadAssetManifest(config.AssetManifestPath)
	if err != nil {
		return nil, fmt.Errorf("资源清单加载失败: %w", err)
	}

	// 初始化音频上下文与资源管理器
	audioContext := audio.NewContext(sampleRate)
	resources := game.NewResourceManager(audioContext, assets)

	settings, err := game.NewSettingsManager(openStorage())
	if err != nil {
		return nil, fmt.Errorf("设置加载失败: %w", err)
	}

	device := effects.NewEbitenDevice()
	renderer, err := game.NewSceneRenderer(device, cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	params := &game.GameParams{
		ScreenWidth:  cfg.Width,
		ScreenHeight: cfg.Height,
		AssetToURL:   assets,
		Resources:    resources,
		Settings:     settings,
		Device:       device,
	}

	a := newApp(renderer, params, sceneFactories(params), cfg.Padding)
	a.verbose = cfg.Verbose
	log.Printf("[App] 启动场景: %s", start)
	a.switchTo(start)
	return a, nil
}

func newApp(renderer *game.SceneRenderer, params *game.GameParams, factories map[game.SceneRequest]game.SceneFactory, padding time.Duration) *App {
	return &App{
		renderer:  renderer,
		params:    params,
		factories: factories,
		clock:     game.NewClock(ebiten.DefaultTPS),
		padding:   padding,
	}
}

// openStorage 打开 gdata 存储，失败时返回 nil（设置只保存在内存中）
func openStorage() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	if path := utils.GetStoragePath(); path != "" {
		log.Printf("[App] 存储路径: %s", path)
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: gdata 不可用: %v", err)
		return nil
	}
	return m
}

// sceneFactories 场景请求 -> 场景工厂
func sceneFactories(params *game.GameParams) map[game.SceneRequest]game.SceneFactory {
	return map[game.SceneRequest]game.SceneFactory{
		game.RequestTitle: func() (game.Scene, error) {
			s, err := scenes.NewTitleScene(params)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
		game.RequestLevel1: func() (game.Scene, error) {
			s, err := scenes.NewLevel1Scene(params)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
		game.RequestCredits: func() (game.Scene, error) {
			s, err := scenes.NewCreditsScene(params)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
	}
}

// switchTo 开始切换到请求的场景
func (a *App) switchTo(r game.SceneRequest) {
	if a.swapping {
		log.Printf("[App] 切换进行中，忽略请求 %s", r)
		return
	}
	factory, ok := a.factories[r]
	if !ok {
		log.Printf("[App] Warning: 没有场景 %s", r)
		return
	}
	a.swapping = true
	log.Printf("[App] 切换到 %s", r)
	a.renderer.LoadSceneAsync(factory, a.padding, func(s game.Scene) {
		a.swapping = false
		s.Requests().Add(a.switchTo)
	})
}

// Swapping 是否正在切换场景
func (a *App) Swapping() bool {
	return a.swapping
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.params.ScreenWidth, a.params.ScreenHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.params.ScreenWidth, a.params.ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	return a.step(a.clock.Tick())
}

// step 以帧间隔 delta 推进当前场景与帧末调度器
// 场景或切换失败时返回错误，Ebitengine 随之结束游戏循环
func (a *App) step(delta time.Duration) error {
	if err := a.renderer.Update(delta.Seconds()); err != nil {
		return fmt.Errorf("scene update: %w", err)
	}
	if err := a.renderer.Tick(delta); err != nil {
		return fmt.Errorf("scene transition: %w", err)
	}
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}

	if a.params.Settings != nil {
		a.params.Settings.SetFullscreen(!a.pendingWindowSizeReset)
		if err := a.params.Settings.Save(); err != nil {
			log.Printf("[App] Warning: 设置保存失败: %v", err)
		}
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制游戏画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 让逻辑屏幕跟随窗口尺寸，并通知渲染器重新分配渲染目标
// 窗口最小化等情况下尺寸为 0，此时保持上一次的尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		a.renderer.Resize(outsideWidth, outsideHeight)
	}
	return a.renderer.Size()
}

// Settings 返回设置管理器
func (a *App) Settings() *game.SettingsManager {
	return a.params.Settings
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// Dispose 释放当前场景与渲染器
func (a *App) Dispose() {
	a.renderer.Dispose()
}
