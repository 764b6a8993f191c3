// Package world 实现关卡的命名场景图与盒碰撞物理
//
// 每个节点的几何体是局部空间中的单位立方体 [-1,1]^3，缩放即半尺寸。
// 带 "box" 碰撞体的节点参与射线检测与角色碰撞；触发体积节点只用于
// 包含测试，不参与物理。
package world

import (
	"github.com/decker502/acclimation/pkg/vmath"
)

// Node 场景图节点
type Node struct {
	name     string
	parent   *Node
	children []*Node

	// Transform 局部变换，可在运行时修改（门的旋转、电梯门的平移）
	Transform vmath.Transform

	collider bool
	hidden   bool
	color    string
}

// Name 节点名称
func (n *Node) Name() string {
	return n.name
}

// Parent 父节点，根节点返回 nil
func (n *Node) Parent() *Node {
	return n.parent
}

// Children 子节点
func (n *Node) Children() []*Node {
	return n.children
}

// HasCollider 是否带盒碰撞体
func (n *Node) HasCollider() bool {
	return n.collider
}

// Hidden 是否隐藏
func (n *Node) Hidden() bool {
	return n.hidden
}

// Color 示意渲染颜色（十六进制字符串），可能为空
func (n *Node) Color() string {
	return n.color
}

// LocalMatrix 局部矩阵
func (n *Node) LocalMatrix() vmath.Mat4 {
	return n.Transform.Matrix()
}

// WorldMatrix 世界矩阵（父节点世界矩阵·局部矩阵）
func (n *Node) WorldMatrix() vmath.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

// WorldPosition 节点原点的世界坐标
func (n *Node) WorldPosition() vmath.Vec3 {
	return n.WorldMatrix().TranslationPart()
}

// WorldCorners 单位立方体八个顶点的世界坐标
func (n *Node) WorldCorners() [8]vmath.Vec3 {
	m := n.WorldMatrix()
	var out [8]vmath.Vec3
	i := 0
	for _, x := range []float64{-1, 1} {
		for _, y := range []float64{-1, 1} {
			for _, z := range []float64{-1, 1} {
				out[i] = m.TransformPoint(vmath.V3(x, y, z))
				i++
			}
		}
	}
	return out
}

// WorldBounds 世界空间轴对齐包围盒
func (n *Node) WorldBounds() AABB {
	corners := n.WorldCorners()
	b := AABB{Min: corners[0], Max: corners[0]}
	for _, c := range corners[1:] {
		b = b.Extend(c)
	}
	return b
}
