package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/decker502/acclimation/pkg/embedded"
)

// LevelLayout 关卡布局数据结构
// 定义了关卡的场景图（命名节点、变换、碰撞体）和玩家出生点
//
// 坐标约定：左手坐标系，Y 轴向上，单位为米
type LevelLayout struct {
	ID    string       `yaml:"id"`    // 关卡ID，如 "level1"
	Name  string       `yaml:"name"`  // 关卡名称
	Nodes []NodeConfig `yaml:"nodes"` // 顶层节点列表
}

// NodeConfig 场景图节点配置
//
// 节点的几何体为局部空间中的单位立方体 [-1,1]^3，
// 因此 Scale 即为半尺寸（米）。
type NodeConfig struct {
	Name     string       `yaml:"name"`     // 节点名称，关卡脚本按名称查找
	Position []float64    `yaml:"position"` // 局部平移 [x, y, z]，默认原点
	Rotation []float64    `yaml:"rotation"` // 局部欧拉角（弧度）[x, y, z]，默认无旋转
	Scale    []float64    `yaml:"scale"`    // 局部缩放 [x, y, z]，默认 [1, 1, 1]
	Collider string       `yaml:"collider"` // 碰撞体类型："box" 或空（无碰撞）
	Hidden   bool         `yaml:"hidden"`   // 是否隐藏（触发体积节点总是隐藏）
	Color    string       `yaml:"color"`    // 示意渲染颜色（十六进制），可选
	Children []NodeConfig `yaml:"children"` // 子节点
}

// EnvironmentConfig 环境配置（天空色、地面色、雾色）
type EnvironmentConfig struct {
	Sky       string  `yaml:"sky"`
	Ground    string  `yaml:"ground"`
	Fog       string  `yaml:"fog"`
	FogFactor float64 `yaml:"fogFactor"`
}

// ColliderBox 盒碰撞体
const ColliderBox = "box"

// LoadLevelLayout 从嵌入资源（或磁盘）加载关卡布局
// 参数：
//
//	path - 布局文件路径（以 "data/" 开头）
//
// 返回：
//
//	*LevelLayout - 解析后的关卡布局
//	error - 如果文件读取、解析或验证失败，返回错误信息
func LoadLevelLayout(path string) (*LevelLayout, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level layout %s: %w", path, err)
	}
	layout, err := ParseLevelLayout(data)
	if err != nil {
		return nil, fmt.Errorf("invalid level layout %s: %w", path, err)
	}
	return layout, nil
}

// ParseLevelLayout 解析关卡布局 YAML
func ParseLevelLayout(data []byte) (*LevelLayout, error) {
	var layout LevelLayout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("failed to parse level layout YAML: %w", err)
	}

	applyDefaults(layout.Nodes)

	if err := validateLevelLayout(&layout); err != nil {
		return nil, err
	}
	return &layout, nil
}

// applyDefaults 为未配置的变换分量填充默认值
func applyDefaults(nodes []NodeConfig) {
	for i := range nodes {
		n := &nodes[i]
		if len(n.Position) == 0 {
			n.Position = []float64{0, 0, 0}
		}
		if len(n.Rotation) == 0 {
			n.Rotation = []float64{0, 0, 0}
		}
		if len(n.Scale) == 0 {
			n.Scale = []float64{1, 1, 1}
		}
		applyDefaults(n.Children)
	}
}

// validateLevelLayout 验证关卡布局的完整性和合法性
func validateLevelLayout(layout *LevelLayout) error {
	if layout.ID == "" {
		return fmt.Errorf("level ID is required")
	}
	if len(layout.Nodes) == 0 {
		return fmt.Errorf("at least one node is required")
	}

	seen := make(map[string]bool)
	return validateNodes(layout.Nodes, seen)
}

func validateNodes(nodes []NodeConfig, seen map[string]bool) error {
	for _, n := range nodes {
		if n.Name == "" {
			return fmt.Errorf("node name is required")
		}
		if seen[n.Name] {
			return fmt.Errorf("duplicate node name %q", n.Name)
		}
		seen[n.Name] = true

		if len(n.Position) != 3 || len(n.Rotation) != 3 || len(n.Scale) != 3 {
			return fmt.Errorf("node %q: position, rotation and scale must have 3 components", n.Name)
		}
		if n.Collider != "" && n.Collider != ColliderBox {
			return fmt.Errorf("node %q: unsupported collider %q", n.Name, n.Collider)
		}
		if err := validateNodes(n.Children, seen); err != nil {
			return err
		}
	}
	return nil
}

// DefaultEnvironment 返回默认环境配置（没有雾）
func DefaultEnvironment() *EnvironmentConfig {
	return &EnvironmentConfig{
		Sky:       "#1b1f2a",
		Ground:    "#3a3f4b",
		Fog:       "#000000",
		FogFactor: 0,
	}
}

// LoadEnvironment 加载环境配置，未给出的字段使用默认值
func LoadEnvironment(path string) (*EnvironmentConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment %s: %w", path, err)
	}
	env := DefaultEnvironment()
	if err := yaml.Unmarshal(data, env); err != nil {
		return nil, fmt.Errorf("failed to parse environment YAML from %s: %w", path, err)
	}
	return env, nil
}
