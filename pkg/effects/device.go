// Package effects 实现场景切换使用的模糊与淡入淡出合成管线
//
// 管线只依赖抽象的 Device 接口，EbitenDevice 是基于 Ebitengine
// 图像与 Kage 着色器的实现，测试中使用记录调用的假设备。
package effects

import (
	"embed"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed shaders/*.kage
var shaderFS embed.FS

// Surface 可渲染、可采样的 GPU 表面
// *ebiten.Image 满足该接口
type Surface interface {
	Bounds() image.Rectangle
}

// Program 已编译的着色器程序，具体类型由 Device 决定
type Program any

// Device 合成管线依赖的 GPU 能力
type Device interface {
	// NewSurface 分配 width x height 的表面
	NewSurface(width, height int) Surface
	// DisposeSurface 释放表面
	DisposeSurface(s Surface)
	// NewProgram 编译着色器
	NewProgram(name string, src []byte) (Program, error)
	// Draw 以 sources 为输入、uniforms 为参数，用 program 绘制整个 dst
	Draw(dst Surface, program Program, sources []Surface, uniforms map[string]any)
}

// loadProgram 从内嵌的着色器目录编译程序
func loadProgram(device Device, name string) (Program, error) {
	src, err := shaderFS.ReadFile("shaders/" + name + ".kage")
	if err != nil {
		return nil, fmt.Errorf("read shader %s: %w", name, err)
	}
	p, err := device.NewProgram(name, src)
	if err != nil {
		return nil, fmt.Errorf("compile shader %s: %w", name, err)
	}
	return p, nil
}

// EbitenDevice 基于 Ebitengine 的 Device 实现
type EbitenDevice struct{}

// NewEbitenDevice 创建 Ebitengine 设备
func NewEbitenDevice() *EbitenDevice {
	return &EbitenDevice{}
}

// NewSurface 实现 Device
func (d *EbitenDevice) NewSurface(width, height int) Surface {
	return ebiten.NewImage(width, height)
}

// DisposeSurface 实现 Device
func (d *EbitenDevice) DisposeSurface(s Surface) {
	if img, ok := s.(*ebiten.Image); ok && img != nil {
		img.Deallocate()
	}
}

// NewProgram 实现 Device
func (d *EbitenDevice) NewProgram(name string, src []byte) (Program, error) {
	shader, err := ebiten.NewShader(src)
	if err != nil {
		return nil, err
	}
	return shader, nil
}

// Draw 实现 Device
// 所有 sources 必须与 dst 尺寸相同
func (d *EbitenDevice) Draw(dst Surface, program Program, sources []Surface, uniforms map[string]any) {
	target := dst.(*ebiten.Image)
	shader := program.(*ebiten.Shader)

	op := &ebiten.DrawRectShaderOptions{Uniforms: uniforms}
	for i, s := range sources {
		if i >= len(op.Images) {
			break
		}
		op.Images[i] = s.(*ebiten.Image)
	}
	b := target.Bounds()
	target.DrawRectShader(b.Dx(), b.Dy(), shader, op)
}
