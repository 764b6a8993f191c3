package effects

import (
	"image/color"
)

// FadeToColorEffect 在清晰帧、模糊帧与纯色之间混合
//
//	out = c·color + (1-c)·((1-b)·sharp + b·blurred)
type FadeToColorEffect struct {
	device  Device
	program Program
}

// NewFadeToColorEffect 编译淡入淡出着色器
func NewFadeToColorEffect(device Device) (*FadeToColorEffect, error) {
	p, err := loadProgram(device, "fade_to_color")
	if err != nil {
		return nil, err
	}
	return &FadeToColorEffect{device: device, program: p}, nil
}

// Render 将合成结果绘制到 dst
func (f *FadeToColorEffect) Render(dst, sharp, blurred Surface, c color.Color, colorStrength, blurStrength float64) {
	f.device.Draw(dst, f.program, []Surface{sharp, blurred}, map[string]any{
		"Color":         premultiplied(c),
		"ColorStrength": float32(colorStrength),
		"BlurStrength":  float32(blurStrength),
	})
}

func premultiplied(c color.Color) []float32 {
	r, g, b, a := c.RGBA()
	return []float32{
		float32(r) / 0xffff,
		float32(g) / 0xffff,
		float32(b) / 0xffff,
		float32(a) / 0xffff,
	}
}
