package config

// 窗口与视口配置常量
const (
	// GameWindowWidth 默认窗口宽度
	GameWindowWidth = 1280

	// GameWindowHeight 默认窗口高度
	GameWindowHeight = 720

	// GameWindowTitle 窗口标题
	GameWindowTitle = "Metaverse Acclimation Guide"

	// DefaultSceneSwapPaddingMillis 场景切换时淡出与加载之间的默认间隔（毫秒）
	DefaultSceneSwapPaddingMillis = 1000
)

// 示意渲染（俯视图）配置
const (
	// SchematicPixelsPerMeter 俯视图缩放比例
	SchematicPixelsPerMeter = 24.0

	// SchematicPlayerRadius 玩家在俯视图中的半径（像素）
	SchematicPlayerRadius = 6.0
)

// 资源路径
const (
	// AssetManifestPath 资源清单路径
	AssetManifestPath = "data/assets.yaml"
)
