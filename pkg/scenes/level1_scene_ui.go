package scenes

import (
	"log"

	"github.com/decker502/acclimation/pkg/game"
	"github.com/decker502/acclimation/pkg/gui"
	"github.com/decker502/acclimation/pkg/player"
	"github.com/decker502/acclimation/pkg/types"
	"github.com/decker502/acclimation/pkg/utils"
)

// persistedKeyActions 从设置中恢复的动作
// 互动键每次进入关卡都是未绑定状态，由旁白引导玩家绑定
var persistedKeyActions = []string{game.KeyActionWalk, game.KeyActionJump}

// initKeyBindings 恢复已保存的按键绑定并应用
func (s *Level1Scene) initKeyBindings() {
	s.bindings = game.DefaultKeyBindings()
	if s.settings != nil {
		for _, action := range persistedKeyActions {
			s.bindings[action] = s.settings.KeyBinding(action)
		}
	}
	s.resetKeyBindingButtons()
	s.applyKeyBindings()
}

// resetKeyBindingButtons 按键绑定网格显示已应用的绑定
func (s *Level1Scene) resetKeyBindingButtons() {
	s.ui.WalkButton.Text = s.bindings[game.KeyActionWalk]
	s.ui.InteractButton.Text = s.bindings[game.KeyActionInteract]
	s.ui.JumpButton.Text = s.bindings[game.KeyActionJump]
}

// applyKeyBindings 将绑定应用到玩家与互动键
func (s *Level1Scene) applyKeyBindings() {
	bind := func(axis player.Axis, name string) {
		if key, ok := utils.ParseKeyName(name); ok {
			s.player.SetKeyBinding(axis, key)
		} else {
			s.player.ClearKeyBinding(axis)
		}
	}
	bind(player.AxisForward, s.bindings[game.KeyActionWalk])
	bind(player.AxisJump, s.bindings[game.KeyActionJump])

	s.interactKey, s.interactBound = utils.ParseKeyName(s.bindings[game.KeyActionInteract])
	s.ui.InteractText.Text = s.bindings[game.KeyActionInteract]
}

// saveKeyBindings 持久化可恢复的绑定
func (s *Level1Scene) saveKeyBindings() {
	if s.settings == nil {
		return
	}
	for _, action := range persistedKeyActions {
		s.settings.SetKeyBinding(action, s.bindings[action])
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[Level1] Warning: 按键绑定保存失败: %v", err)
	}
}

// InteractKeyBinding 已应用的互动键显示名
func (s *Level1Scene) InteractKeyBinding() string {
	return s.bindings[game.KeyActionInteract]
}

func (s *Level1Scene) onClick(c *gui.Control, handler func()) {
	c.OnClick().Add(func(*gui.Control) {
		s.sounds.Play(types.SoundEffectClick, clickVolume)
		handler()
	})
}

// initMenuButtons 暂停菜单、设置子菜单与按键绑定网格
func (s *Level1Scene) initMenuButtons() {
	ui := &s.ui

	s.onClick(ui.ResumeButton, func() {
		s.pause.SetPaused(false)
		s.pointer.Request()
	})
	s.onClick(ui.SettingsButton, func() {
		ui.MainButtons.Show(false)
		ui.SettingsButtons.Show(true)
	})
	s.onClick(ui.ExitButton, func() {
		log.Printf("[Level1] 退出到标题")
		s.Request(game.RequestTitle)
	})

	s.onClick(ui.SettingsKeyBindingsButton, func() {
		s.resetKeyBindingButtons()
		ui.SettingsButtons.Show(false)
		ui.KeyBindingsGrid.Show(true)
	})
	s.onClick(ui.SettingsBackButton, func() {
		ui.MainButtons.Show(true)
		ui.SettingsButtons.Show(false)
	})

	s.onClick(ui.ApplyButton, func() {
		s.bindings[game.KeyActionWalk] = ui.WalkButton.Text
		s.bindings[game.KeyActionInteract] = ui.InteractButton.Text
		s.bindings[game.KeyActionJump] = ui.JumpButton.Text
		s.applyKeyBindings()
		s.saveKeyBindings()
		log.Printf("[Level1] 按键绑定: %v", s.bindings)

		ui.KeyBindingsGrid.Show(false)
		ui.SettingsButtons.Show(true)
	})
	s.onClick(ui.CancelButton, func() {
		ui.KeyBindingsGrid.Show(false)
		ui.SettingsButtons.Show(true)
	})

	for _, b := range []*gui.Control{ui.WalkButton, ui.InteractButton, ui.JumpButton} {
		s.onClick(b, func() {
			s.capturing = b
			ui.PromptModal.Show(true)
		})
	}
}

// updateKeyCapture 捕获弹窗打开时，第一个可绑定按键成为按钮文本
func (s *Level1Scene) updateKeyCapture() {
	if s.capturing == nil {
		return
	}
	name, ok := s.input.CapturedKeyName()
	if !ok {
		return
	}
	s.sounds.Play(types.SoundEffectClick, clickVolume)
	s.capturing.Text = name
	s.capturing = nil
	s.ui.PromptModal.Show(false)
}

// initPause 暂停：停用物理、暂停音效（以及按设置暂停旁白）、显示暂停菜单
func (s *Level1Scene) initPause() {
	s.pause.OnPause().Add(func(struct{}) {
		log.Printf("[Level1] 暂停")
		s.world.SetEnabled(false)
		if s.pauseVoiceOverWhenGamePauses {
			s.voice.Pause()
		}
		s.sounds.Pause()
		s.ui.PauseMenu.Show(true)
		s.ui.MainButtons.Show(true)
	})
	s.pause.OnResume().Add(func(struct{}) {
		log.Printf("[Level1] 继续")
		s.world.SetEnabled(true)
		if s.pauseVoiceOverWhenGamePauses {
			s.voice.Resume()
		}
		s.sounds.Resume()
		s.ui.PauseMenu.Show(false)
		s.ui.MainButtons.Show(false)
	})
}
