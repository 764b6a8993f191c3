// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// AssetID 资源标识，格式为 "<类别>.<名称>"（如 "VoiceOver.PleaseRemainCalm"）
// 资源清单 data/assets.yaml 以 AssetID 为键映射到文件路径
type AssetID string

// VoiceOverTrack 旁白音轨
type VoiceOverTrack int

const (
	VoiceOverInvoluntaryFloorInspection VoiceOverTrack = iota
	VoiceOverPleaseRemainCalm
	VoiceOverAchievementsInCalmness
	VoiceOverUnactionableInformation
	VoiceOverNoteworthyAchievements
	VoiceOverBanalitiesOfInteractions
	VoiceOverStaringAtTheFloor
	VoiceOverMoveTheMouseUp
	VoiceOverMouseLook
	VoiceOverWAsInWalk
	VoiceOverContainsOtherRooms
	VoiceOverPressTheUnboundKey
	VoiceOverExperienceMenu
	VoiceOverAvoidUsingMenus
	VoiceOverKeyBindingsSubmenu
	VoiceOverDvorak
	VoiceOverApply
	VoiceOverInteractKey
	VoiceOverTakeOnTheChallenges
	VoiceOverThisIsAHallway
	VoiceOverOverlyLiteralInterpretation
	VoiceOverDoorShapedWall
	VoiceOverCongratulations

	// VoiceOverTrackCount 旁白音轨数量
	VoiceOverTrackCount int = iota
)

var voiceOverNames = [...]string{
	"InvoluntaryFloorInspection",
	"PleaseRemainCalm",
	"AchievementsInCalmness",
	"UnactionableInformation",
	"NoteworthyAchievements",
	"BanalitiesOfInteractions",
	"StaringAtTheFloor",
	"MoveTheMouseUp",
	"MouseLook",
	"WAsInWalk",
	"ContainsOtherRooms",
	"PressTheUnboundKey",
	"ExperienceMenu",
	"AvoidUsingMenus",
	"KeyBindingsSubmenu",
	"Dvorak",
	"Apply",
	"InteractKey",
	"TakeOnTheChallenges",
	"ThisIsAHallway",
	"OverlyLiteralInterpretation",
	"DoorShapedWall",
	"Congratulations",
}

// String 返回音轨名称
func (t VoiceOverTrack) String() string {
	if t < 0 || int(t) >= len(voiceOverNames) {
		return "Unknown"
	}
	return voiceOverNames[t]
}

// Asset 返回音轨的资源标识
func (t VoiceOverTrack) Asset() AssetID {
	return AssetID("VoiceOver." + t.String())
}

// SoundEffectTrack 音效音轨
type SoundEffectTrack int

const (
	SoundEffectMusic SoundEffectTrack = iota
	SoundEffectClick
	SoundEffectFootstep
	SoundEffectHinge
	SoundEffectElevator
	// SoundEffectCreditsMusic 制作人员名单背景音乐
	SoundEffectCreditsMusic

	// SoundEffectTrackCount 音效音轨数量
	SoundEffectTrackCount int = iota
)

var soundEffectNames = [...]string{
	"Music",
	"Click",
	"Footstep",
	"Hinge",
	"Elevator",
	"CreditsMusic",
}

// String 返回音效名称
func (t SoundEffectTrack) String() string {
	if t < 0 || int(t) >= len(soundEffectNames) {
		return "Unknown"
	}
	return soundEffectNames[t]
}

// Asset 返回音效的资源标识
func (t SoundEffectTrack) Asset() AssetID {
	return AssetID("SoundEffect." + t.String())
}

// 其他资源
const (
	// ModelMainLevel 主关卡布局
	ModelMainLevel AssetID = "Model.MainLevel"
	// HdrEnvironmentMainLevel 主关卡环境色调
	HdrEnvironmentMainLevel AssetID = "HdrEnvironment.MainLevel"
	// GuiFileTitle 标题界面
	GuiFileTitle AssetID = "GuiFile.Title"
	// GuiFileGame 关卡内界面
	GuiFileGame AssetID = "GuiFile.Game"
	// GuiFileCredits 制作人员名单界面
	GuiFileCredits AssetID = "GuiFile.Credits"
)
