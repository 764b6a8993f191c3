package scenes

import (
	"log"
	"strings"
	"time"

	"github.com/decker502/acclimation/pkg/coroutine"
	"github.com/decker502/acclimation/pkg/event"
	"github.com/decker502/acclimation/pkg/game"
	"github.com/decker502/acclimation/pkg/trigger"
	"github.com/decker502/acclimation/pkg/types"
)

// 旁白脚本的时间参数
const (
	scriptKickOffDelay = 10 * time.Second
	scriptPauseDelay   = 4 * time.Second
	scriptLookDelay    = time.Second

	lookUpThreshold    = 0.9
	lookRightThreshold = 0.3
	walkDistanceSq     = 2
)

// initVoiceOverScript 注册旁白驱动的关卡脚本，10 秒后开始第一段旁白
func (s *Level1Scene) initVoiceOverScript() {
	mouseLookFinished := false

	s.voice.OnTrackFinished().Add(func(track types.VoiceOverTrack) {
		switch track {
		case types.VoiceOverInvoluntaryFloorInspection:
			s.voice.Play(types.VoiceOverPleaseRemainCalm)
		case types.VoiceOverPleaseRemainCalm:
			s.playAfter(scriptPauseDelay, types.VoiceOverAchievementsInCalmness)
		case types.VoiceOverAchievementsInCalmness:
			s.showAchievement("Remain Calm")
			s.voice.Play(types.VoiceOverUnactionableInformation)
		case types.VoiceOverUnactionableInformation:
			s.showAchievement("Remain Attentive")
			s.voice.Play(types.VoiceOverNoteworthyAchievements)
		case types.VoiceOverNoteworthyAchievements:
			s.showAchievement("Remain Patient")
			s.voice.Play(types.VoiceOverBanalitiesOfInteractions)
		case types.VoiceOverBanalitiesOfInteractions:
			s.voice.Play(types.VoiceOverStaringAtTheFloor)
		case types.VoiceOverStaringAtTheFloor:
			s.playAfter(scriptPauseDelay, types.VoiceOverMoveTheMouseUp)
		case types.VoiceOverMouseLook:
			mouseLookFinished = true
		case types.VoiceOverPressTheUnboundKey:
			s.playAfter(scriptPauseDelay, types.VoiceOverExperienceMenu)
		case types.VoiceOverAvoidUsingMenus:
			s.voice.Play(types.VoiceOverKeyBindingsSubmenu)
		case types.VoiceOverOverlyLiteralInterpretation:
			s.showAchievement("Golf Clap")
		}
	})

	s.voice.OnTrackStarted().Add(func(track types.VoiceOverTrack) {
		switch track {
		case types.VoiceOverMoveTheMouseUp:
			s.player.LookSensitivity = lookSensitivity
			s.gameplay.Start(func(co *coroutine.Co) {
				co.Call(coroutine.WaitUntil(func() bool { return s.player.Up().Y >= lookUpThreshold }))
				co.Call(coroutine.Delay(scriptLookDelay))
				s.voice.Play(types.VoiceOverMouseLook)
			})

		case types.VoiceOverMouseLook:
			s.gameplay.Start(func(co *coroutine.Co) {
				co.Call(coroutine.WaitUntil(func() bool { return s.player.Right().Z >= lookRightThreshold }))
				co.Call(coroutine.WaitUntil(func() bool { return mouseLookFinished }))
				s.voice.Play(types.VoiceOverWAsInWalk)
			})

		case types.VoiceOverWAsInWalk:
			s.player.MoveSpeed = walkSpeed
			s.player.JumpForce = jumpForce
			start := s.player.Position()
			s.playWhen(s.gameplay, func() bool {
				return s.player.Position().DistanceSquared(start) >= walkDistanceSq
			}, types.VoiceOverContainsOtherRooms)

		case types.VoiceOverContainsOtherRooms:
			s.showAchievement("Get Movin'!")
			s.playWhen(s.gameplay, func() bool { return s.activeTrigger == triggerDoor }, types.VoiceOverPressTheUnboundKey)

		case types.VoiceOverExperienceMenu:
			s.ui.SettingsKeyBindingsButton.Show(true)
			s.pauseVoiceOverWhenGamePauses = false
			s.playWhen(s.render, s.pause.Paused, types.VoiceOverAvoidUsingMenus)

		case types.VoiceOverAvoidUsingMenus:
			s.playWhen(s.render, s.ui.KeyBindingsGrid.IsVisible, types.VoiceOverDvorak)
			s.playWhen(s.render, func() bool { return s.ui.InteractButton.Text != game.UnboundKey }, types.VoiceOverApply)
			s.playWhen(s.gameplay, func() bool { return s.InteractKeyBinding() != game.UnboundKey }, types.VoiceOverInteractKey)

		case types.VoiceOverInteractKey:
			s.playWhen(s.gameplay, func() bool { return s.door.State() == DoorAnimating }, types.VoiceOverTakeOnTheChallenges)

		case types.VoiceOverTakeOnTheChallenges:
			s.pauseVoiceOverWhenGamePauses = true
			s.showAchievement("Already Ready")
			s.gameplay.Start(func(co *coroutine.Co) {
				s.waitForCamera(co, s.hallwayTrigger)
				s.voice.Play(types.VoiceOverThisIsAHallway)
			})

		case types.VoiceOverThisIsAHallway:
			s.startHallwayScript()
		}
	})

	s.playAfter(scriptKickOffDelay, types.VoiceOverInvoluntaryFloorInspection)
}

// startHallwayScript 走廊之后的分支：进入电梯结束关卡；回到主房间、
// 按电梯按钮、尝试打开假门各自触发一段旁白
func (s *Level1Scene) startHallwayScript() {
	s.gameplay.Start(func(co *coroutine.Co) {
		s.waitForCamera(co, s.elevatorTrigger)
		s.elevatorReached = true
		log.Printf("[Level1] 进入电梯")

		co.Call(coroutine.WaitUntil(func() bool { return s.elevator.State() != DoorAnimating }))
		co.Call(s.elevator.Close)
		s.Request(game.RequestCredits)
	})

	s.gameplay.Start(func(co *coroutine.Co) {
		s.waitForCamera(co, s.mainRoomTrigger)
		if !s.elevatorReached {
			s.voice.Play(types.VoiceOverOverlyLiteralInterpretation)
		}
	})

	var buttonHandle, wallHandle event.Handle
	buttonHandle = s.triggerInteraction.Add(func(name string) {
		if name != triggerButton {
			return
		}
		s.triggerInteraction.Remove(buttonHandle)
		s.voice.Play(types.VoiceOverCongratulations)
	})
	wallHandle = s.triggerInteraction.Add(func(name string) {
		if !strings.HasPrefix(name, triggerDoorShapedPfx) {
			return
		}
		s.triggerInteraction.Remove(wallHandle)
		if !s.elevatorReached {
			s.voice.Play(types.VoiceOverDoorShapedWall)
		}
	})
}

// waitForCamera 每个 tick 以相机位置求值触发体积，直到相机进入
func (s *Level1Scene) waitForCamera(co *coroutine.Co, volume *trigger.UnitCubeVolume) {
	entered := false
	volume.OnEntered().AddOnce(func(struct{}) { entered = true })
	for !entered {
		p := s.player.Position()
		volume.Evaluate(&p)
		co.Yield()
	}
}

// playAfter 在 gameplay 调度器上延迟 d 后播放旁白
func (s *Level1Scene) playAfter(d time.Duration, track types.VoiceOverTrack) {
	s.gameplay.Start(func(co *coroutine.Co) {
		co.Call(coroutine.Delay(d))
		s.voice.Play(track)
	})
}

// playWhen 在调度器 sched 上等待条件成立后播放旁白
func (s *Level1Scene) playWhen(sched *coroutine.Scheduler, cond func() bool, track types.VoiceOverTrack) {
	sched.Start(func(co *coroutine.Co) {
		co.Call(coroutine.WaitUntil(cond))
		s.voice.Play(track)
	})
}
