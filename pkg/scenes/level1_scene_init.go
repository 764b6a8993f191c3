package scenes

import (
	"math"

	"github.com/decker502/acclimation/pkg/config"
	"github.com/decker502/acclimation/pkg/coroutine"
	"github.com/decker502/acclimation/pkg/gui"
	"github.com/decker502/acclimation/pkg/player"
	"github.com/decker502/acclimation/pkg/trigger"
	"github.com/decker502/acclimation/pkg/types"
	"github.com/decker502/acclimation/pkg/utils"
	"github.com/decker502/acclimation/pkg/world"
)

// initWorld 构建物理世界、触发体积、门与玩家
func (s *Level1Scene) initWorld(layout *config.LevelLayout) error {
	w, err := world.Build(layout)
	if err != nil {
		return err
	}
	s.world = w

	for _, name := range interactionTriggers {
		t, err := s.triggerVolume(name)
		if err != nil {
			return err
		}
		t.OnEntered().Add(func(struct{}) {
			s.activeTrigger = name
		})
		t.OnExited().Add(func(struct{}) {
			if s.activeTrigger == name {
				s.activeTrigger = ""
			}
		})
		s.interactionTriggers = append(s.interactionTriggers, t)
	}
	if s.mainRoomTrigger, err = s.triggerVolume("main_room"); err != nil {
		return err
	}
	if s.hallwayTrigger, err = s.triggerVolume("hallway"); err != nil {
		return err
	}
	if s.elevatorTrigger, err = s.triggerVolume("elevator"); err != nil {
		return err
	}

	if err := s.initDoors(); err != nil {
		return err
	}
	return s.spawnPlayer()
}

func (s *Level1Scene) triggerVolume(name string) (*trigger.UnitCubeVolume, error) {
	n, err := s.world.Node(triggerNodePrefix + name)
	if err != nil {
		return nil, err
	}
	return trigger.NewUnitCubeVolume(name, n), nil
}

func (s *Level1Scene) initDoors() error {
	hinge, err := s.world.Node(nodeDoorHinge)
	if err != nil {
		return err
	}
	left, err := s.world.Node(nodeElevatorDoorLeft)
	if err != nil {
		return err
	}
	right, err := s.world.Node(nodeElevatorDoorRight)
	if err != nil {
		return err
	}

	s.door = &door{
		name:   "door",
		states: newDoorStateMachine(),
		sounds: s.sounds,
		sound:  types.SoundEffectHinge,
		volume: hingeVolume,
		frames: doorFrames,
		step: func(opening bool) {
			if opening {
				hinge.Transform.Rotation.Y -= doorSwingPerTick
			} else {
				hinge.Transform.Rotation.Y += doorSwingPerTick
			}
		},
	}
	s.elevator = &door{
		name:   "elevator",
		states: newDoorStateMachine(),
		sounds: s.sounds,
		sound:  types.SoundEffectElevator,
		volume: 1,
		delay:  elevatorDelay,
		frames: elevatorFrames,
		step: func(opening bool) {
			d := elevatorSlidePerTick
			if !opening {
				d = -d
			}
			left.Transform.Position.X -= d
			right.Transform.Position.X += d
		},
	}
	return nil
}

// spawnPlayer 在出生点创建玩家：朝向右转 90°、几乎俯视地面，所有能力关闭
func (s *Level1Scene) spawnPlayer() error {
	spawn, err := s.world.Node(nodePlayerSpawn)
	if err != nil {
		return err
	}
	yaw := spawn.Transform.Rotation.Y + math.Pi/2
	s.player = player.New(spawn.WorldPosition(), yaw, 4*math.Pi/9)
	s.player.LookSensitivity = 0
	s.player.MoveSpeed = 0
	s.player.JumpForce = 0
	return nil
}

// initGUI 绑定关卡界面并设置初始可见性
func (s *Level1Scene) initGUI() error {
	if err := gui.Bind(s.doc, &s.ui); err != nil {
		return err
	}

	s.ui.SettingsKeyBindingsButton.Show(false)
	s.ui.GameplayUI.SetEnabled(false)
	s.ui.PauseMenu.Show(false)
	s.ui.MainButtons.Show(false)
	s.ui.SettingsButtons.Show(false)
	s.ui.KeyBindingsGrid.Show(false)
	s.ui.PromptModal.Show(false)

	s.ui.InteractPrompt.SetAlpha(0)
	s.ui.Achievement.SetTop(achievementHiddenTop)

	s.initKeyBindings()
	s.initMenuButtons()
	return nil
}

// initInteractions 房门与电梯按钮的互动
func (s *Level1Scene) initInteractions() {
	s.triggerInteraction.Add(func(name string) {
		switch name {
		case triggerDoor:
			s.door.Toggle(s.gameplay)
		case triggerButton:
			s.elevator.Toggle(s.gameplay)
		}
	})
}

// initSoundEffects 循环播放背景音乐并启动脚步声协程
func (s *Level1Scene) initSoundEffects() {
	s.sounds.Play(types.SoundEffectMusic, 1)
	s.gameplay.Start(s.footstepsCoroutine)
}

// footstepsCoroutine 累计相机的水平位移，每走过一个步长播放一次脚步声
func (s *Level1Scene) footstepsCoroutine(co *coroutine.Co) {
	distance := 0.0
	prior := s.player.Position()
	for {
		current := s.player.Position()
		distance += math.Hypot(current.X-prior.X, current.Z-prior.Z)
		if distance > footstepStride {
			distance = 0
			s.sounds.Play(types.SoundEffectFootstep, 1)
		}
		distance *= footstepDecay
		prior = current
		co.Yield()
	}
}

// 成就弹窗
const (
	achievementSteps     = 30
	achievementStepPx    = 10
	achievementHoldTicks = 240
	achievementHiddenTop = achievementSteps * achievementStepPx
)

// showAchievement 成就弹窗滑入、停留、滑出
func (s *Level1Scene) showAchievement(text string) {
	s.gameplay.Start(func(co *coroutine.Co) {
		s.ui.AchievementText.Text = text
		// 滑入带缓出，滑出为匀速
		for i := 0; i <= achievementSteps; i++ {
			eased := utils.EaseOutCubic(float64(i) / achievementSteps)
			s.ui.Achievement.SetTop(achievementHiddenTop * (1 - eased))
			co.Yield()
		}
		co.Call(coroutine.Frames(achievementHoldTicks, func(int) {}))
		for px := 0; px <= achievementSteps; px++ {
			s.ui.Achievement.SetTop(float64(achievementStepPx * px))
			co.Yield()
		}
	})
}
