// Package trigger 实现基于单位立方体的触发体积
package trigger

import (
	"math"

	"github.com/decker502/acclimation/pkg/event"
	"github.com/decker502/acclimation/pkg/vmath"
)

// WorldMatrixProvider 提供触发体积所在节点的世界矩阵
// 节点可在运行时移动，因此每次求值都重新读取
type WorldMatrixProvider interface {
	WorldMatrix() vmath.Mat4
}

// WorldMatrixFunc 函数形式的 WorldMatrixProvider
type WorldMatrixFunc func() vmath.Mat4

// WorldMatrix 实现 WorldMatrixProvider
func (f WorldMatrixFunc) WorldMatrix() vmath.Mat4 {
	return f()
}

// UnitCubeVolume 单位立方体触发体积
//
// 体积为节点局部空间中的 [-1,1]^3 立方体（严格小于）。
// 每次边界穿越恰好触发一次 OnEntered / OnExited。
type UnitCubeVolume struct {
	name      string
	transform WorldMatrixProvider
	triggered bool

	onEntered event.Observable[struct{}]
	onExited  event.Observable[struct{}]
}

// NewUnitCubeVolume 创建触发体积
func NewUnitCubeVolume(name string, transform WorldMatrixProvider) *UnitCubeVolume {
	return &UnitCubeVolume{name: name, transform: transform}
}

// Name 触发体积名称
func (v *UnitCubeVolume) Name() string {
	return v.name
}

// Triggered 上一次求值时点是否在体积内
func (v *UnitCubeVolume) Triggered() bool {
	return v.triggered
}

// OnEntered 进入事件
func (v *UnitCubeVolume) OnEntered() *event.Observable[struct{}] {
	return &v.onEntered
}

// OnExited 离开事件
func (v *UnitCubeVolume) OnExited() *event.Observable[struct{}] {
	return &v.onExited
}

// Contains 判断世界坐标点是否在体积内
// 世界矩阵不可逆（零缩放）时视为不包含
func (v *UnitCubeVolume) Contains(point vmath.Vec3) bool {
	inv, ok := v.transform.WorldMatrix().InverseAffine()
	if !ok {
		return false
	}
	local := inv.TransformPoint(point)
	return math.Abs(local.X) < 1 && math.Abs(local.Y) < 1 && math.Abs(local.Z) < 1
}

// Evaluate 以世界坐标点求值并在状态变化时发出事件
// point 为 nil 表示本帧没有点（例如射线未命中），已触发时发出离开事件
func (v *UnitCubeVolume) Evaluate(point *vmath.Vec3) {
	inside := point != nil && v.Contains(*point)
	switch {
	case inside && !v.triggered:
		v.triggered = true
		v.onEntered.Notify(struct{}{})
	case !inside && v.triggered:
		v.triggered = false
		v.onExited.Notify(struct{}{})
	}
}
