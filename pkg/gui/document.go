package gui

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/decker502/acclimation/pkg/embedded"
)

// ErrControlNotFound 按名称查找控件失败
var ErrControlNotFound = errors.New("gui: control not found")

// Document GUI 文档
// 根控件填满整个视口
type Document struct {
	Name     string     `yaml:"name"`
	Controls []*Control `yaml:"controls"`

	root   *Control
	byName map[string]*Control
}

// Parse 解析 GUI 文档 YAML
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse gui document: %w", err)
	}

	doc.root = &Control{Name: "root", Kind: KindPanel, Children: doc.Controls}
	doc.byName = make(map[string]*Control)
	if err := doc.index(doc.root); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *Document) index(c *Control) error {
	for _, child := range c.Children {
		if child == nil {
			return fmt.Errorf("gui document %q: empty control under %q", d.Name, c.Name)
		}
		if child.Kind == "" {
			child.Kind = KindPanel
		}
		child.parent = c
		if child.Name != "" {
			if _, dup := d.byName[child.Name]; dup {
				return fmt.Errorf("gui document %q: duplicate control name %q", d.Name, child.Name)
			}
			d.byName[child.Name] = child
		}
		if err := d.index(child); err != nil {
			return err
		}
	}
	return nil
}

// Load 从嵌入资源（或磁盘）加载 GUI 文档
func Load(path string) (*Document, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gui document %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Root 根控件
func (d *Document) Root() *Control {
	return d.root
}

// Control 按名称查找控件
func (d *Document) Control(name string) (*Control, error) {
	c, ok := d.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrControlNotFound, name)
	}
	return c, nil
}

// Layout 以视口尺寸计算所有控件的屏幕矩形
func (d *Document) Layout(width, height float64) {
	d.root.bounds = Rect{W: width, H: height}
	layoutChildren(d.root)
}

func layoutChildren(c *Control) {
	cursor := c.bounds.Y
	for _, child := range c.Children {
		w, h := child.Width, child.Height
		if w == 0 {
			w = c.bounds.W
		}
		if h == 0 {
			h = c.bounds.H
		}

		x := c.bounds.X + child.Left
		y := c.bounds.Y + child.Top
		if c.Kind == KindStack {
			if child.Hidden {
				child.bounds = Rect{X: x, Y: cursor, W: w, H: 0}
				layoutChildren(child)
				continue
			}
			y = cursor + child.Top
			cursor = y + h + c.Spacing
		}
		child.bounds = Rect{X: x, Y: y, W: w, H: h}
		layoutChildren(child)
	}
}

// HandleClick 将屏幕坐标处的点击分发给最上层的可见、可交互按钮
// 返回是否有按钮响应
func (d *Document) HandleClick(x, y float64) bool {
	target := hitTest(d.root, x, y)
	if target == nil {
		return false
	}
	target.Click()
	return true
}

// hitTest 深度优先、后绘制者优先
func hitTest(c *Control, x, y float64) *Control {
	if c.Hidden || c.Disabled {
		return nil
	}
	for i := len(c.Children) - 1; i >= 0; i-- {
		if hit := hitTest(c.Children[i], x, y); hit != nil {
			return hit
		}
	}
	if c.Kind == KindButton && c.bounds.Contains(x, y) {
		return c
	}
	return nil
}
