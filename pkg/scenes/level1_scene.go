package scenes

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/acclimation/pkg/config"
	"github.com/decker502/acclimation/pkg/coroutine"
	"github.com/decker502/acclimation/pkg/event"
	"github.com/decker502/acclimation/pkg/game"
	"github.com/decker502/acclimation/pkg/gui"
	"github.com/decker502/acclimation/pkg/player"
	"github.com/decker502/acclimation/pkg/trigger"
	"github.com/decker502/acclimation/pkg/types"
	"github.com/decker502/acclimation/pkg/utils"
	"github.com/decker502/acclimation/pkg/world"
)

// 关卡节点名称
const (
	nodePlayerSpawn       = "player_spawn"
	nodeDoorHinge         = "physics_compound_door"
	nodeElevatorDoorLeft  = "physics_box_elevator_door_left"
	nodeElevatorDoorRight = "physics_box_elevator_door_right"
	triggerNodePrefix     = "trigger_unit_cube_"

	triggerDoor          = "door"
	triggerButton        = "button"
	triggerDoorShapedPfx = "door_shaped_wall_"
	// triggerFakeDoorPfx 以此开头的触发体积不显示互动提示
	triggerFakeDoorPfx = "door_"
)

// interactionTriggers 由视线射线驱动的互动触发体积
var interactionTriggers = []string{
	triggerDoor,
	triggerButton,
	"door_shaped_wall_1",
	"door_shaped_wall_2",
	"door_shaped_wall_3",
	"door_shaped_wall_4",
	"door_shaped_wall_5",
	"door_shaped_wall_6",
	"door_shaped_wall_7",
}

// 关卡参数
const (
	interactRayLength = 1.0

	doorSwingPerTick = 0.008 * 1.1 * math.Pi / 2
	doorFrames       = 120
	hingeVolume      = 0.5

	elevatorDelay        = time.Second
	elevatorFrames       = 150
	elevatorSlidePerTick = 0.005

	footstepStride = 0.65
	footstepDecay  = 0.95

	promptEase = 0.8

	// 玩家能力在旁白引导下逐步开启
	lookSensitivity = 1.0 / 400
	walkSpeed       = 0.04
	jumpForce       = 0.1
)

// level1View 关卡界面绑定的控件
type level1View struct {
	PauseMenu                 *gui.Control `gui:"pauseMenu"`
	MainButtons               *gui.Control `gui:"mainButtonsStackPanel"`
	SettingsButtons           *gui.Control `gui:"settingsButtonsStackPanel"`
	KeyBindingsGrid           *gui.Control `gui:"keyBindingsGrid"`
	SettingsKeyBindingsButton *gui.Control `gui:"settingsKeyBindingsButton"`
	GameplayUI                *gui.Control `gui:"gameplayUI"`

	ResumeButton       *gui.Control `gui:"resumeButton"`
	SettingsButton     *gui.Control `gui:"settingsButton"`
	ExitButton         *gui.Control `gui:"exitButton"`
	SettingsBackButton *gui.Control `gui:"settingsBackButton"`
	ApplyButton        *gui.Control `gui:"keyBindingsApplyButton"`
	CancelButton       *gui.Control `gui:"keyBindingsCancelButton"`

	WalkButton     *gui.Control `gui:"keyBindingsWalkButton"`
	InteractButton *gui.Control `gui:"keyBindingsInteractButton"`
	JumpButton     *gui.Control `gui:"keyBindingsJumpButton"`
	PromptModal    *gui.Control `gui:"keyBindingPromptModal"`

	InteractPrompt  *gui.Control `gui:"interactPromptRectangle"`
	InteractText    *gui.Control `gui:"interactTextBlock"`
	Achievement     *gui.Control `gui:"achievementRectangle"`
	AchievementText *gui.Control `gui:"achievementText"`
}

// level1Assets 第一关加载的资源
type level1Assets struct {
	layout      *config.LevelLayout
	environment *config.EnvironmentConfig
	gui         *gui.Document
	voiceOver   *game.VoiceOver
	sounds      *game.SoundEffects
}

// Level1Scene 第一关：关卡脚本
//
// 两个调度器：gameplay 在暂停时不推进（门、电梯、成就、脚步声、
// 大部分旁白等待）；render 每帧推进（菜单相关的旁白等待）。
type Level1Scene struct {
	*game.RenderTargetScene

	world    *world.World
	player   *player.Player
	env      *config.EnvironmentConfig
	doc      *gui.Document
	ui       level1View
	voice    *game.VoiceOver
	sounds   *game.SoundEffects
	settings *game.SettingsManager
	input    SceneInput
	pointer  utils.PointerLock

	gameplay *coroutine.Scheduler
	render   *coroutine.Scheduler

	pause                        *game.PauseState
	pauseVoiceOverWhenGamePauses bool
	pointerWasLocked             bool

	interactionTriggers []*trigger.UnitCubeVolume
	mainRoomTrigger     *trigger.UnitCubeVolume
	hallwayTrigger      *trigger.UnitCubeVolume
	elevatorTrigger     *trigger.UnitCubeVolume
	activeTrigger       string
	triggerInteraction  *event.Observable[string]

	door     *door
	elevator *door

	// 已应用的按键绑定：动作名 -> 显示名
	bindings      map[string]string
	interactKey   ebiten.Key
	interactBound bool
	// 等待按键捕获的按钮，nil 表示没有打开捕获弹窗
	capturing *gui.Control

	elevatorReached bool
}

// NewLevel1Scene 加载关卡布局、界面与音频，创建第一关
func NewLevel1Scene(params *game.GameParams) (*Level1Scene, error) {
	assets, err := loadLevel1Assets(params)
	if err != nil {
		return nil, err
	}
	applyVolume(params, assets.sounds, assets.voiceOver)
	return newLevel1Scene(params, assets, NewEbitenSceneInput(), utils.EbitenPointerLock{})
}

func loadLevel1Assets(params *game.GameParams) (*level1Assets, error) {
	layoutPath, err := assetPath(params, types.ModelMainLevel)
	if err != nil {
		return nil, err
	}
	layout, err := config.LoadLevelLayout(layoutPath)
	if err != nil {
		return nil, err
	}

	env := config.DefaultEnvironment()
	envPath, err := assetPath(params, types.HdrEnvironmentMainLevel)
	switch {
	case err != nil:
		log.Printf("[Level1] Warning: %v，使用默认环境色", err)
	default:
		if env, err = config.LoadEnvironment(envPath); err != nil {
			return nil, err
		}
	}

	guiPath, err := assetPath(params, types.GuiFileGame)
	if err != nil {
		return nil, err
	}
	doc, err := gui.Load(guiPath)
	if err != nil {
		return nil, err
	}

	vo, sfx, err := loadAudio(params)
	if err != nil {
		return nil, err
	}
	return &level1Assets{layout: layout, environment: env, gui: doc, voiceOver: vo, sounds: sfx}, nil
}

func newLevel1Scene(params *game.GameParams, assets *level1Assets, input SceneInput, pointer utils.PointerLock) (*Level1Scene, error) {
	s := &Level1Scene{
		RenderTargetScene:            game.NewRenderTargetScene(params.Device, params.ScreenWidth, params.ScreenHeight),
		env:                          assets.environment,
		doc:                          assets.gui,
		voice:                        assets.voiceOver,
		sounds:                       assets.sounds,
		settings:                     params.Settings,
		input:                        input,
		pointer:                      pointer,
		gameplay:                     coroutine.NewScheduler(),
		render:                       coroutine.NewScheduler(),
		pause:                        game.NewPauseState(),
		pauseVoiceOverWhenGamePauses: true,
		triggerInteraction:           event.New[string](),
	}

	if err := s.initWorld(assets.layout); err != nil {
		s.closeSchedulers()
		return nil, fmt.Errorf("level1: %w", err)
	}
	if err := s.initGUI(); err != nil {
		s.closeSchedulers()
		return nil, fmt.Errorf("level1: %w", err)
	}
	s.initInteractions()
	s.initPause()
	s.initSoundEffects()
	s.initVoiceOverScript()

	log.Printf("[Level1] 场景已创建")
	return s, nil
}

// Update 实现 Scene
func (s *Level1Scene) Update(deltaTime float64) error {
	delta := secondsToDuration(deltaTime)

	s.updatePointer()
	// 按键捕获弹窗打开时不响应点击
	if s.capturing == nil {
		dispatchClick(s.doc, s.input, s.RenderTargetScene)
	}
	s.updateKeyCapture()

	var errs []error
	if !s.pause.Paused() {
		s.updateInteractKey()
		s.updateTriggers()
		s.player.Update(s.input, s.world)
		s.updatePrompt()
		errs = append(errs, s.gameplay.Tick(delta))
	}
	errs = append(errs, s.render.Tick(delta))

	s.sounds.Update()
	errs = append(errs, s.voice.Update())
	return errors.Join(errs...)
}

// updatePointer 光标锁定丢失时暂停；未锁定且未暂停时按下指针请求锁定
func (s *Level1Scene) updatePointer() {
	locked := s.pointer.Locked()
	if s.pointerWasLocked && !locked {
		s.pause.SetPaused(true)
	}
	s.pointerWasLocked = locked

	if locked && s.input.IsKeyJustPressed(ebiten.KeyEscape) {
		s.pointer.Release()
		return
	}
	if !locked && !s.pause.Paused() && s.input.PointerJustPressed() {
		s.pointer.Request()
	}
}

// updateTriggers 以相机前方长度为 1 的射线命中点驱动互动触发体积
func (s *Level1Scene) updateTriggers() {
	origin := s.player.Position()
	dest := origin.Add(s.player.Forward().Scale(interactRayLength))

	hit, ok := s.world.Raycast(origin, dest)
	for _, t := range s.interactionTriggers {
		if ok {
			p := hit.Point
			t.Evaluate(&p)
		} else {
			t.Evaluate(nil)
		}
	}
}

// updateInteractKey 互动键松开时对当前触发体积发出互动
func (s *Level1Scene) updateInteractKey() {
	if !s.interactBound || s.activeTrigger == "" {
		return
	}
	if s.input.IsKeyJustReleased(s.interactKey) {
		log.Printf("[Level1] 互动: %s", s.activeTrigger)
		s.triggerInteraction.Notify(s.activeTrigger)
	}
}

// updatePrompt 互动提示的透明度向目标值缓动
func (s *Level1Scene) updatePrompt() {
	target := 0.0
	if s.activeTrigger != "" && !strings.HasPrefix(s.activeTrigger, triggerFakeDoorPfx) {
		target = 1
	}
	s.ui.InteractPrompt.SetAlpha(utils.Smooth(s.ui.InteractPrompt.GetAlpha(), target, 1-promptEase))
}

// ActiveTrigger 当前视线所指的互动触发体积名称
func (s *Level1Scene) ActiveTrigger() string {
	return s.activeTrigger
}

// DoorState 房门状态
func (s *Level1Scene) DoorState() DoorState {
	return s.door.State()
}

// ElevatorState 电梯门状态
func (s *Level1Scene) ElevatorState() DoorState {
	return s.elevator.State()
}

// Paused 是否暂停
func (s *Level1Scene) Paused() bool {
	return s.pause.Paused()
}

func (s *Level1Scene) closeSchedulers() {
	s.gameplay.Close()
	s.render.Close()
}

// Dispose 实现 Scene
func (s *Level1Scene) Dispose() {
	s.closeSchedulers()
	s.voice.Stop()
	s.sounds.StopAll()
	s.triggerInteraction.Clear()
	s.DisposeTarget()
	log.Printf("[Level1] 场景已释放")
}
