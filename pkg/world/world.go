package world

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/decker502/acclimation/pkg/config"
	"github.com/decker502/acclimation/pkg/vmath"
)

// ErrNodeNotFound 按名称查找节点失败
var ErrNodeNotFound = errors.New("world: node not found")

// ErrDuplicateNode 节点名称重复
var ErrDuplicateNode = errors.New("world: duplicate node name")

// World 场景图与物理世界
type World struct {
	roots   []*Node
	nodes   []*Node // 深度优先顺序
	byName  map[string]*Node
	enabled bool
}

// New 创建空的物理世界（默认启用）
func New() *World {
	return &World{
		byName:  make(map[string]*Node),
		enabled: true,
	}
}

// Build 从关卡布局构建场景图
func Build(layout *config.LevelLayout) (*World, error) {
	w := New()
	for i := range layout.Nodes {
		if err := w.build(nil, &layout.Nodes[i]); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (w *World) build(parent *Node, cfg *config.NodeConfig) error {
	t := vmath.Transform{
		Position: toVec3(cfg.Position, 0),
		Rotation: toVec3(cfg.Rotation, 0),
		Scale:    toVec3(cfg.Scale, 1),
	}
	n, err := w.AddNode(parent, cfg.Name, t)
	if err != nil {
		return err
	}
	n.collider = cfg.Collider == config.ColliderBox
	n.hidden = cfg.Hidden
	n.color = cfg.Color
	for i := range cfg.Children {
		if err := w.build(n, &cfg.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

func toVec3(v []float64, def float64) vmath.Vec3 {
	if len(v) != 3 {
		return vmath.V3(def, def, def)
	}
	return vmath.V3(v[0], v[1], v[2])
}

// AddNode 添加节点；parent 为 nil 时作为根节点
func (w *World) AddNode(parent *Node, name string, t vmath.Transform) (*Node, error) {
	if _, exists := w.byName[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, name)
	}
	n := &Node{name: name, parent: parent, Transform: t}
	if parent == nil {
		w.roots = append(w.roots, n)
	} else {
		parent.children = append(parent.children, n)
	}
	w.byName[name] = n
	w.nodes = append(w.nodes, n)
	return n, nil
}

// Node 按名称查找节点
func (w *World) Node(name string) (*Node, error) {
	n, ok := w.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, name)
	}
	return n, nil
}

// Nodes 返回所有节点（添加顺序）
func (w *World) Nodes() []*Node {
	return w.nodes
}

// NodesWithPrefix 返回名称以 prefix 开头的节点（添加顺序）
func (w *World) NodesWithPrefix(prefix string) []*Node {
	var out []*Node
	for _, n := range w.nodes {
		if strings.HasPrefix(n.name, prefix) {
			out = append(out, n)
		}
	}
	return out
}

// SetEnabled 启用或停用物理（暂停时停用）
func (w *World) SetEnabled(enabled bool) {
	w.enabled = enabled
}

// Enabled 物理是否启用
func (w *World) Enabled() bool {
	return w.enabled
}

// RaycastHit 射线检测结果
type RaycastHit struct {
	Node     *Node
	Point    vmath.Vec3
	Fraction float64 // 命中点在线段上的比例 [0,1]
}

// Raycast 检测线段 origin→dest 与碰撞体的最近交点
// 物理停用时总是未命中
func (w *World) Raycast(origin, dest vmath.Vec3) (RaycastHit, bool) {
	if !w.enabled {
		return RaycastHit{}, false
	}

	best := RaycastHit{Fraction: math.Inf(1)}
	found := false
	dir := dest.Sub(origin)
	for _, n := range w.nodes {
		if !n.collider {
			continue
		}
		inv, ok := n.WorldMatrix().InverseAffine()
		if !ok {
			continue
		}
		t, hit := intersectUnitCube(inv.TransformPoint(origin), inv.TransformDirection(dir))
		if hit && t < best.Fraction {
			best = RaycastHit{Node: n, Fraction: t}
			found = true
		}
	}
	if !found {
		return RaycastHit{}, false
	}
	best.Point = origin.Add(dir.Scale(best.Fraction))
	return best, true
}

// intersectUnitCube 局部空间的线段（o + t·d，t∈[0,1]）与 [-1,1]^3 的 slab 求交
func intersectUnitCube(o, d vmath.Vec3) (float64, bool) {
	tMin, tMax := 0.0, 1.0
	axes := [3][2]float64{{o.X, d.X}, {o.Y, d.Y}, {o.Z, d.Z}}
	for _, a := range axes {
		origin, dir := a[0], a[1]
		if math.Abs(dir) < 1e-12 {
			if origin <= -1 || origin >= 1 {
				return 0, false
			}
			continue
		}
		t1 := (-1 - origin) / dir
		t2 := (1 - origin) / dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}
