package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 按键绑定的动作名
const (
	KeyActionWalk     = "walk"
	KeyActionInteract = "interact"
	KeyActionJump     = "jump"
)

// UnboundKey 未绑定按键的显示文本
const UnboundKey = "[unbound]"

// gdata 中的存储位置
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// GameSettings 跨会话保存的玩家设置
type GameSettings struct {
	// EffectsVolume 音效与音乐的总音量 0.0 ~ 1.0
	EffectsVolume float64 `yaml:"effectsVolume"`
	// VoiceOverVolume 旁白音量 0.0 ~ 1.0
	VoiceOverVolume float64 `yaml:"voiceOverVolume"`
	// Muted 静音全部音频
	Muted bool `yaml:"muted"`
	// Fullscreen 启动时是否全屏
	Fullscreen bool `yaml:"fullscreen"`

	// KeyBindings 动作名 -> 按键显示名（"W"、"Space"、UnboundKey）
	KeyBindings map[string]string `yaml:"keyBindings"`
}

// DefaultKeyBindings 返回默认按键绑定，互动键默认未绑定
func DefaultKeyBindings() map[string]string {
	return map[string]string{
		KeyActionWalk:     "W",
		KeyActionInteract: UnboundKey,
		KeyActionJump:     "Space",
	}
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		EffectsVolume:   0.8,
		VoiceOverVolume: 1,
		KeyBindings:     DefaultKeyBindings(),
	}
}

// EffectiveEffectsVolume 考虑静音后的音效音量
func (s *GameSettings) EffectiveEffectsVolume() float64 {
	if s.Muted {
		return 0
	}
	return s.EffectsVolume
}

// EffectiveVoiceOverVolume 考虑静音后的旁白音量
func (s *GameSettings) EffectiveVoiceOverVolume() float64 {
	if s.Muted {
		return 0
	}
	return s.VoiceOverVolume
}

// normalize 修正从存储读出的值：音量限制到 [0,1]，丢弃未知动作，补齐缺失动作
func (s *GameSettings) normalize() {
	s.EffectsVolume = clampVolume(s.EffectsVolume)
	s.VoiceOverVolume = clampVolume(s.VoiceOverVolume)

	defaults := DefaultKeyBindings()
	bindings := make(map[string]string, len(defaults))
	for action, key := range defaults {
		if saved, ok := s.KeyBindings[action]; ok && saved != "" {
			key = saved
		}
		bindings[action] = key
	}
	s.KeyBindings = bindings
}

// SettingsManager 负责设置的加载与保存
// gdata 管理器为 nil 时只在内存中保存
type SettingsManager struct {
	storage  *gdata.Manager
	settings *GameSettings
}

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
// 加载失败只记录警告，继续使用默认设置
func NewSettingsManager(storage *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		storage:  storage,
		settings: DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: %v (using defaults)", err)
	}
	return sm, nil
}

// Load 从 gdata 读取设置；没有存储或尚未保存过时使用默认设置
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.storage == nil || !sm.storage.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.storage.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.normalize()
	sm.settings = loaded

	log.Printf("[SettingsManager] Settings loaded")
	return nil
}

// Save 写入 gdata；没有存储时什么也不做
func (sm *SettingsManager) Save() error {
	if sm.storage == nil {
		return nil
	}
	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.storage.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	log.Printf("[SettingsManager] Settings saved")
	return nil
}

// Settings 当前设置
func (sm *SettingsManager) Settings() *GameSettings {
	return sm.settings
}

// SetEffectsVolume 设置音效音量，限制在 0.0 ~ 1.0
func (sm *SettingsManager) SetEffectsVolume(volume float64) {
	sm.settings.EffectsVolume = clampVolume(volume)
}

// SetVoiceOverVolume 设置旁白音量，限制在 0.0 ~ 1.0
func (sm *SettingsManager) SetVoiceOverVolume(volume float64) {
	sm.settings.VoiceOverVolume = clampVolume(volume)
}

// SetMuted 设置静音
func (sm *SettingsManager) SetMuted(muted bool) {
	sm.settings.Muted = muted
}

// SetFullscreen 设置启动时全屏
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// KeyBinding 返回动作当前绑定的按键显示名，未知动作返回 UnboundKey
func (sm *SettingsManager) KeyBinding(action string) string {
	if key, ok := sm.settings.KeyBindings[action]; ok && key != "" {
		return key
	}
	return UnboundKey
}

// SetKeyBinding 设置动作的按键，调用 Save 后才会持久化
func (sm *SettingsManager) SetKeyBinding(action, key string) {
	if sm.settings.KeyBindings == nil {
		sm.settings.KeyBindings = DefaultKeyBindings()
	}
	sm.settings.KeyBindings[action] = key
}

func clampVolume(volume float64) float64 {
	if volume < 0 {
		return 0
	}
	if volume > 1 {
		return 1
	}
	return volume
}
