// Package player 实现第一人称玩家控制器（鼠标视角、行走、跳跃、按键绑定）
package player

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/acclimation/pkg/vmath"
	"github.com/decker502/acclimation/pkg/world"
)

// Axis 可绑定按键的输入轴
type Axis int

const (
	// AxisForward 前进
	AxisForward Axis = iota
	// AxisJump 跳跃
	AxisJump

	axisCount
)

// 物理参数（每个 tick）
const (
	// Gravity 重力加速度（米/tick²）
	Gravity = 0.006
	// EyeHeight 视点高于脚底的距离（米）
	EyeHeight = 1.6
	// BodyHeight 碰撞体高度（米）
	BodyHeight = 1.8
	// BodyRadius 碰撞体半径（米）
	BodyRadius = 0.3

	maxPitch = math.Pi/2 - 0.01
)

// Input 玩家控制器读取的输入
type Input interface {
	// CursorDelta 本 tick 的鼠标位移（像素）
	CursorDelta() (dx, dy float64)
	IsKeyPressed(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
}

type binding struct {
	key   ebiten.Key
	bound bool
}

// Player 第一人称玩家
//
// 视角使用偏航（yaw，绕 Y 轴）与俯仰（pitch，正值向下看），
// 灵敏度、移动速度、跳跃力为 0 时对应能力被禁用。
type Player struct {
	body             world.Character
	verticalVelocity float64
	yaw, pitch       float64
	bindings         [axisCount]binding

	// LookSensitivity 鼠标灵敏度（弧度/像素）
	LookSensitivity float64
	// MoveSpeed 移动速度（米/tick）
	MoveSpeed float64
	// JumpForce 起跳速度（米/tick）
	JumpForce float64
}

// New 在视点位置 eye 处创建玩家
func New(eye vmath.Vec3, yaw, pitch float64) *Player {
	return &Player{
		body: world.Character{
			Feet:   eye.Sub(vmath.V3(0, EyeHeight, 0)),
			Radius: BodyRadius,
			Height: BodyHeight,
		},
		yaw:   yaw,
		pitch: clampPitch(pitch),
	}
}

func clampPitch(p float64) float64 {
	return math.Max(-maxPitch, math.Min(maxPitch, p))
}

// SetKeyBinding 绑定按键
func (p *Player) SetKeyBinding(axis Axis, key ebiten.Key) {
	p.bindings[axis] = binding{key: key, bound: true}
}

// ClearKeyBinding 解除按键绑定
func (p *Player) ClearKeyBinding(axis Axis) {
	p.bindings[axis] = binding{}
}

// KeyBinding 返回当前绑定
func (p *Player) KeyBinding(axis Axis) (ebiten.Key, bool) {
	b := p.bindings[axis]
	return b.key, b.bound
}

// Update 处理一个 tick 的输入与移动
func (p *Player) Update(in Input, w *world.World) {
	if p.LookSensitivity > 0 {
		dx, dy := in.CursorDelta()
		p.yaw += dx * p.LookSensitivity
		p.pitch = clampPitch(p.pitch + dy*p.LookSensitivity)
	}

	var move vmath.Vec3
	if b := p.bindings[AxisForward]; b.bound && p.MoveSpeed > 0 && in.IsKeyPressed(b.key) {
		s, c := math.Sincos(p.yaw)
		move = vmath.V3(s, 0, c).Scale(p.MoveSpeed)
	}

	if b := p.bindings[AxisJump]; b.bound && p.JumpForce > 0 && p.body.Grounded && in.IsKeyJustPressed(b.key) {
		p.verticalVelocity = p.JumpForce
	}
	p.verticalVelocity -= Gravity
	move.Y = p.verticalVelocity

	if w == nil || !w.Enabled() {
		return
	}
	w.MoveCharacter(&p.body, move)
	if p.body.Grounded && p.verticalVelocity < 0 {
		p.verticalVelocity = 0
	}
}

// Position 视点（相机）世界坐标
func (p *Player) Position() vmath.Vec3 {
	return p.body.Feet.Add(vmath.V3(0, EyeHeight, 0))
}

// Feet 脚底世界坐标
func (p *Player) Feet() vmath.Vec3 {
	return p.body.Feet
}

// Yaw 偏航角
func (p *Player) Yaw() float64 {
	return p.yaw
}

// Pitch 俯仰角（正值向下）
func (p *Player) Pitch() float64 {
	return p.pitch
}

// SetLook 设置视角
func (p *Player) SetLook(yaw, pitch float64) {
	p.yaw = yaw
	p.pitch = clampPitch(pitch)
}

// Forward 相机前方向
func (p *Player) Forward() vmath.Vec3 {
	sy, cy := math.Sincos(p.yaw)
	sp, cp := math.Sincos(p.pitch)
	return vmath.V3(sy*cp, -sp, cy*cp)
}

// Right 相机右方向
func (p *Player) Right() vmath.Vec3 {
	sy, cy := math.Sincos(p.yaw)
	return vmath.V3(cy, 0, -sy)
}

// Up 相机上方向
func (p *Player) Up() vmath.Vec3 {
	sy, cy := math.Sincos(p.yaw)
	sp, cp := math.Sincos(p.pitch)
	return vmath.V3(sy*sp, cp, cy*sp)
}

// WorldMatrix 相机世界矩阵
func (p *Player) WorldMatrix() vmath.Mat4 {
	return vmath.Translation(p.Position()).Mul(vmath.RotationY(p.yaw)).Mul(vmath.RotationX(p.pitch))
}
