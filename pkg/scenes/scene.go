// Package scenes 实现标题、第一关与制作人员名单三个场景
package scenes

import (
	"fmt"

	"github.com/decker502/acclimation/pkg/game"
	"github.com/decker502/acclimation/pkg/types"
)

// Scene 场景接口，见 game.Scene
type Scene = game.Scene

// assetPath 在运行时参数中查找资源路径
func assetPath(params *game.GameParams, id types.AssetID) (string, error) {
	if params == nil || params.AssetToURL == nil {
		return "", fmt.Errorf("%w: %s", game.ErrAssetNotFound, id)
	}
	path, ok := params.AssetToURL[id]
	if !ok || path == "" {
		return "", fmt.Errorf("%w: %s", game.ErrAssetNotFound, id)
	}
	return path, nil
}

// loadAudio 通过资源管理器加载旁白与音效
// 没有资源管理器（无音频设备）时全部使用静音占位
func loadAudio(params *game.GameParams) (*game.VoiceOver, *game.SoundEffects, error) {
	if params == nil || params.Resources == nil {
		return game.NewVoiceOver(nil), game.NewSoundEffects(nil), nil
	}
	vo, err := game.LoadVoiceOver(params.Resources)
	if err != nil {
		return nil, nil, err
	}
	sfx, err := game.LoadSoundEffects(params.Resources)
	if err != nil {
		return nil, nil, err
	}
	return vo, sfx, nil
}

// loadSoundEffects 只加载音效（标题与制作人员名单场景）
func loadSoundEffects(params *game.GameParams) (*game.SoundEffects, error) {
	if params == nil || params.Resources == nil {
		return game.NewSoundEffects(nil), nil
	}
	return game.LoadSoundEffects(params.Resources)
}

// applyVolume 按设置调整音效与旁白音量，vo 可为 nil
func applyVolume(params *game.GameParams, sfx *game.SoundEffects, vo *game.VoiceOver) {
	if params == nil || params.Settings == nil {
		return
	}
	s := params.Settings.Settings()
	sfx.SetMasterVolume(s.EffectiveEffectsVolume())
	if vo != nil {
		vo.SetVolume(s.EffectiveVoiceOverVolume())
	}
}
