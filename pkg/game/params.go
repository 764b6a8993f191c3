package game

import (
	"github.com/decker502/acclimation/pkg/effects"
	"github.com/decker502/acclimation/pkg/types"
)

// GameParams 场景创建所需的运行时参数
type GameParams struct {
	ScreenWidth  int
	ScreenHeight int

	// AssetToURL 资源标识 -> 路径，缺失的资源被容忍
	AssetToURL map[types.AssetID]string

	Resources *ResourceManager
	Settings  *SettingsManager
	Device    effects.Device
}
