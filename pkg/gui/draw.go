package gui

import (
	"bytes"
	"image/color"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/gofont/goregular"
)

const defaultFontSize = 24

var (
	faceSourceOnce sync.Once
	faceSource     *text.GoTextFaceSource
	faceCache      = map[float64]*text.GoTextFace{}
)

func face(size float64) *text.GoTextFace {
	faceSourceOnce.Do(func() {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			log.Printf("[GUI] Warning: failed to load font: %v", err)
			return
		}
		faceSource = src
	})
	if faceSource == nil {
		return nil
	}
	if f, ok := faceCache[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: faceSource, Size: size}
	faceCache[size] = f
	return f
}

// ParseColor 解析十六进制颜色并应用透明度；空字符串或非法值返回 ok=false
func ParseColor(hex string, alpha float64) (color.Color, bool) {
	if hex == "" {
		return nil, false
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		log.Printf("[GUI] Warning: invalid color %q: %v", hex, err)
		return nil, false
	}
	r, g, b := c.RGB255()
	a := uint8(clamp01(alpha) * 255)
	return color.NRGBA{R: r, G: g, B: b, A: a}, true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Draw 按视口尺寸布局并绘制文档
func (d *Document) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	d.Layout(float64(b.Dx()), float64(b.Dy()))
	for _, c := range d.root.Children {
		drawControl(screen, c, 1)
	}
}

func drawControl(dst *ebiten.Image, c *Control, parentAlpha float64) {
	if c.Hidden {
		return
	}
	alpha := parentAlpha * c.GetAlpha()
	if alpha <= 0.001 {
		return
	}

	r := c.bounds
	switch c.Kind {
	case KindRectangle, KindButton:
		bg := c.Background
		if bg == "" && c.Kind == KindButton {
			bg = "#808080"
		}
		if fill, ok := ParseColor(bg, alpha); ok {
			vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), fill, false)
		}
		if c.Kind == KindButton {
			if stroke, ok := ParseColor("#ffffff", alpha); ok {
				vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 2, stroke, false)
			}
		}
	}

	if c.Text != "" && (c.Kind == KindText || c.Kind == KindButton) {
		drawText(dst, c, alpha)
	}

	for _, child := range c.Children {
		drawControl(dst, child, alpha)
	}
}

func drawText(dst *ebiten.Image, c *Control, alpha float64) {
	size := c.FontSize
	if size == 0 {
		size = defaultFontSize
	}
	f := face(size)
	if f == nil {
		return
	}
	fg := c.Foreground
	if fg == "" {
		fg = "#ffffff"
	}
	clr, ok := ParseColor(fg, alpha)
	if !ok {
		clr = color.White
	}

	r := c.bounds
	op := &text.DrawOptions{}
	op.GeoM.Translate(r.X+r.W/2, r.Y+r.H/2)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.LineSpacing = size * 1.3
	text.Draw(dst, c.Text, f, op)
}
