package vmath

import "math"

// Mat4 4x4 矩阵，行主序
type Mat4 [16]float64

// Identity 单位矩阵
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation 平移矩阵
func Translation(t Vec3) Mat4 {
	m := Identity()
	m[3], m[7], m[11] = t.X, t.Y, t.Z
	return m
}

// Scaling 缩放矩阵
func Scaling(s Vec3) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = s.X, s.Y, s.Z
	return m
}

// RotationX 绕 X 轴旋转（正角度使 +Z 转向 -Y，即向下看）
func RotationX(a float64) Mat4 {
	s, c := math.Sincos(a)
	return Mat4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// RotationY 绕 Y 轴旋转（正角度使 +Z 转向 +X）
func RotationY(a float64) Mat4 {
	s, c := math.Sincos(a)
	return Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotationZ 绕 Z 轴旋转
func RotationZ(a float64) Mat4 {
	s, c := math.Sincos(a)
	return Mat4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// RotationEuler 欧拉角旋转，应用顺序 Z、X、Y（R = Ry·Rx·Rz）
func RotationEuler(e Vec3) Mat4 {
	return RotationY(e.Y).Mul(RotationX(e.X)).Mul(RotationZ(e.Z))
}

// Mul 返回 m·o
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * o[k*4+col]
			}
			r[row*4+col] = sum
		}
	}
	return r
}

// TransformPoint 变换点（w=1）
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3],
		m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7],
		m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11],
	}
}

// TransformDirection 变换方向（w=0）
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return Vec3{
		m[0]*d.X + m[1]*d.Y + m[2]*d.Z,
		m[4]*d.X + m[5]*d.Y + m[6]*d.Z,
		m[8]*d.X + m[9]*d.Y + m[10]*d.Z,
	}
}

// TranslationPart 返回平移分量
func (m Mat4) TranslationPart() Vec3 {
	return Vec3{m[3], m[7], m[11]}
}

// InverseAffine 求仿射矩阵的逆
// 线性部分奇异时返回 false
func (m Mat4) InverseAffine() (Mat4, bool) {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[4], m[5], m[6]
	g, h, i := m[8], m[9], m[10]

	c00 := e*i - f*h
	c01 := -(d*i - f*g)
	c02 := d*h - e*g
	det := a*c00 + b*c01 + c*c02
	if math.Abs(det) < 1e-12 {
		return Mat4{}, false
	}
	inv := 1 / det

	var r Mat4
	r[0] = c00 * inv
	r[1] = -(b*i - c*h) * inv
	r[2] = (b*f - c*e) * inv
	r[4] = c01 * inv
	r[5] = (a*i - c*g) * inv
	r[6] = -(a*f - c*d) * inv
	r[8] = c02 * inv
	r[9] = -(a*h - b*g) * inv
	r[10] = (a*e - b*d) * inv

	t := Vec3{m[3], m[7], m[11]}
	r[3] = -(r[0]*t.X + r[1]*t.Y + r[2]*t.Z)
	r[7] = -(r[4]*t.X + r[5]*t.Y + r[6]*t.Z)
	r[11] = -(r[8]*t.X + r[9]*t.Y + r[10]*t.Z)
	r[15] = 1
	return r, true
}

// Transform 平移/旋转（欧拉角）/缩放
type Transform struct {
	Position Vec3
	Rotation Vec3
	Scale    Vec3
}

// Matrix 返回 T·R·S
func (t Transform) Matrix() Mat4 {
	return Translation(t.Position).Mul(RotationEuler(t.Rotation)).Mul(Scaling(t.Scale))
}
