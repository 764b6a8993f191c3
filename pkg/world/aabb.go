package world

import (
	"math"

	"github.com/decker502/acclimation/pkg/vmath"
)

// AABB 轴对齐包围盒
type AABB struct {
	Min, Max vmath.Vec3
}

// Extend 扩展包围盒以包含点 p
func (b AABB) Extend(p vmath.Vec3) AABB {
	return AABB{
		Min: vmath.V3(math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)),
		Max: vmath.V3(math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)),
	}
}

// Contains 点是否在包围盒内（含边界）
func (b AABB) Contains(p vmath.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// closestXZ 包围盒在 XZ 平面上离点最近的点
func (b AABB) closestXZ(x, z float64) (float64, float64) {
	return clamp(x, b.Min.X, b.Max.X), clamp(z, b.Min.Z, b.Max.Z)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
