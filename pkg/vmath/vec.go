// Package vmath 提供场景图与物理使用的三维向量与仿射矩阵
//
// 坐标约定：左手坐标系，Y 轴向上，Z 轴向前。
// 矩阵为行主序，作用于列向量（p' = M·p）。
package vmath

import "math"

// Vec3 三维向量
type Vec3 struct {
	X, Y, Z float64
}

// V3 构造 Vec3
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add 返回 v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub 返回 v - o
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale 返回 v * s
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Mul 逐分量相乘
func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// Dot 点积
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// LengthSquared 长度平方
func (v Vec3) LengthSquared() float64 {
	return v.Dot(v)
}

// Length 长度
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// DistanceSquared 两点距离平方
func (v Vec3) DistanceSquared(o Vec3) float64 {
	return v.Sub(o).LengthSquared()
}

// Abs 逐分量取绝对值
func (v Vec3) Abs() Vec3 {
	return Vec3{math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)}
}

// Lerp 线性插值
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return v.Add(o.Sub(v).Scale(t))
}
