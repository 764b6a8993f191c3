package world

import (
	"math"

	"github.com/decker502/acclimation/pkg/vmath"
)

// stepEpsilon 脚底高于碰撞体顶面该距离以内时，水平方向不与其碰撞
const stepEpsilon = 0.05

// Character 角色碰撞体（竖直圆柱）
type Character struct {
	Feet     vmath.Vec3 // 脚底中心
	Radius   float64
	Height   float64
	Grounded bool // 上一次移动后是否站在碰撞体上
}

// MoveCharacter 以 delta 移动角色并解决与盒碰撞体的穿插
// 水平方向做圆与包围盒的推出，竖直方向做落地与顶头
// 物理停用时不移动
func (w *World) MoveCharacter(c *Character, delta vmath.Vec3) {
	if !w.enabled {
		return
	}

	var bounds []AABB
	for _, n := range w.nodes {
		if n.collider {
			bounds = append(bounds, n.WorldBounds())
		}
	}

	c.Feet.X += delta.X
	c.Feet.Z += delta.Z
	for iter := 0; iter < 4; iter++ {
		moved := false
		for _, b := range bounds {
			if c.Feet.Y+stepEpsilon >= b.Max.Y || c.Feet.Y+c.Height <= b.Min.Y {
				continue
			}
			if pushOut(c, b) {
				moved = true
			}
		}
		if !moved {
			break
		}
	}

	newY := c.Feet.Y + delta.Y
	c.Grounded = false
	for _, b := range bounds {
		if !overlapsXZ(c, b) {
			continue
		}
		if delta.Y <= 0 && c.Feet.Y >= b.Max.Y-stepEpsilon && newY <= b.Max.Y {
			newY = b.Max.Y
			c.Grounded = true
		}
		if delta.Y > 0 && c.Feet.Y+c.Height <= b.Min.Y+stepEpsilon && newY+c.Height > b.Min.Y {
			newY = b.Min.Y - c.Height
		}
	}
	c.Feet.Y = newY
}

func overlapsXZ(c *Character, b AABB) bool {
	cx, cz := b.closestXZ(c.Feet.X, c.Feet.Z)
	dx, dz := c.Feet.X-cx, c.Feet.Z-cz
	return dx*dx+dz*dz < c.Radius*c.Radius
}

// pushOut 将圆从包围盒的 XZ 投影中推出，返回是否发生移动
func pushOut(c *Character, b AABB) bool {
	r := c.Radius
	cx, cz := b.closestXZ(c.Feet.X, c.Feet.Z)
	dx, dz := c.Feet.X-cx, c.Feet.Z-cz
	d2 := dx*dx + dz*dz
	if d2 >= r*r {
		return false
	}
	if d2 > 1e-12 {
		d := math.Sqrt(d2)
		push := (r - d) / d
		c.Feet.X += dx * push
		c.Feet.Z += dz * push
		return true
	}

	// 圆心在盒内：沿穿插最浅的轴推出
	left := c.Feet.X - b.Min.X + r
	right := b.Max.X - c.Feet.X + r
	back := c.Feet.Z - b.Min.Z + r
	front := b.Max.Z - c.Feet.Z + r
	switch math.Min(math.Min(left, right), math.Min(back, front)) {
	case left:
		c.Feet.X -= left
	case right:
		c.Feet.X += right
	case back:
		c.Feet.Z -= back
	default:
		c.Feet.Z += front
	}
	return true
}
