// Package gui 实现声明式 GUI 文档（YAML）、视图模型绑定、点击分发与绘制
package gui

import (
	"github.com/decker502/acclimation/pkg/event"
)

// Kind 控件类型
type Kind string

const (
	// KindPanel 透明容器
	KindPanel Kind = "panel"
	// KindRectangle 带背景色的容器
	KindRectangle Kind = "rectangle"
	// KindStack 竖直堆叠容器：子控件按顺序自上而下排列，隐藏的子控件不占位
	KindStack Kind = "stack"
	// KindText 文本
	KindText Kind = "text"
	// KindButton 按钮
	KindButton Kind = "button"
)

// Rect 像素矩形
type Rect struct {
	X, Y, W, H float64
}

// Contains 点是否在矩形内
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Control GUI 控件
//
// 位置相对于父控件；宽高为 0 时填满父控件。
type Control struct {
	Name       string     `yaml:"name"`
	Kind       Kind       `yaml:"kind"`
	Text       string     `yaml:"text"`
	Left       float64    `yaml:"left"`
	Top        float64    `yaml:"top"`
	Width      float64    `yaml:"width"`
	Height     float64    `yaml:"height"`
	Alpha      *float64   `yaml:"alpha"`
	Background string     `yaml:"background"`
	Foreground string     `yaml:"foreground"`
	FontSize   float64    `yaml:"fontSize"`
	Spacing    float64    `yaml:"spacing"`
	Hidden     bool       `yaml:"hidden"`
	Disabled   bool       `yaml:"disabled"`
	Children   []*Control `yaml:"children"`

	parent  *Control
	bounds  Rect
	onClick event.Observable[*Control]
}

// Parent 父控件
func (c *Control) Parent() *Control {
	return c.parent
}

// IsVisible 控件自身是否可见
func (c *Control) IsVisible() bool {
	return !c.Hidden
}

// SetVisible 设置可见性
func (c *Control) SetVisible(visible bool) {
	c.Hidden = !visible
}

// IsEnabled 控件自身是否可交互
func (c *Control) IsEnabled() bool {
	return !c.Disabled
}

// SetEnabled 设置是否可交互
func (c *Control) SetEnabled(enabled bool) {
	c.Disabled = !enabled
}

// Show 同时设置可见与可交互
func (c *Control) Show(shown bool) {
	c.SetVisible(shown)
	c.SetEnabled(shown)
}

// EffectivelyVisible 控件及其所有祖先是否都可见
func (c *Control) EffectivelyVisible() bool {
	for n := c; n != nil; n = n.parent {
		if n.Hidden {
			return false
		}
	}
	return true
}

// EffectivelyEnabled 控件及其所有祖先是否都可交互
func (c *Control) EffectivelyEnabled() bool {
	for n := c; n != nil; n = n.parent {
		if n.Disabled {
			return false
		}
	}
	return true
}

// GetAlpha 控件自身透明度
func (c *Control) GetAlpha() float64 {
	if c.Alpha == nil {
		return 1
	}
	return *c.Alpha
}

// SetAlpha 设置透明度
func (c *Control) SetAlpha(a float64) {
	c.Alpha = &a
}

// EffectiveAlpha 控件与祖先透明度之积
func (c *Control) EffectiveAlpha() float64 {
	a := 1.0
	for n := c; n != nil; n = n.parent {
		a *= n.GetAlpha()
	}
	return a
}

// SetTop 设置相对父控件的纵向偏移
func (c *Control) SetTop(top float64) {
	c.Top = top
}

// Bounds 最近一次布局计算的屏幕矩形
func (c *Control) Bounds() Rect {
	return c.bounds
}

// OnClick 点击事件
func (c *Control) OnClick() *event.Observable[*Control] {
	return &c.onClick
}

// Click 以编程方式触发点击
func (c *Control) Click() {
	c.onClick.Notify(c)
}
