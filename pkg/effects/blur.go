package effects

import (
	"math"
)

const (
	// KernelSize 高斯核采样数
	KernelSize = 15
	// KernelRadius 模糊半径（以纹理坐标为单位）
	KernelRadius = 0.02
)

// Sample 单个核采样：偏移（以源尺寸为单位）与权重
type Sample struct {
	X, Y, Weight float64
}

func gauss(x float64) float64 {
	return 1 / math.Sqrt(2*math.Pi*math.Exp(x*x))
}

// GaussianKernels 计算水平与垂直方向的一维高斯核
// 水平偏移按 height/width 做宽高比修正，使两个方向的像素半径一致
func GaussianKernels(width, height int) (horizontal, vertical [KernelSize]Sample) {
	half := KernelSize / 2

	var weights [KernelSize]float64
	total := 0.0
	for i := range weights {
		weights[i] = gauss(2 * float64(i-half) / float64(half))
		total += weights[i]
	}

	aspect := 1.0
	if width > 0 {
		aspect = float64(height) / float64(width)
	}
	for i := range weights {
		offset := float64(i)*KernelRadius/float64(half) - KernelRadius
		w := weights[i] / total
		horizontal[i] = Sample{X: offset * aspect, Weight: w}
		vertical[i] = Sample{Y: offset, Weight: w}
	}
	return horizontal, vertical
}

func flattenKernel(k [KernelSize]Sample) []float32 {
	out := make([]float32, 0, KernelSize*3)
	for _, s := range k {
		out = append(out, float32(s.X), float32(s.Y), float32(s.Weight))
	}
	return out
}

// BlurEffect 两遍可分离高斯模糊
// 中间表面与输出表面按输入尺寸缓存，仅在尺寸变化时重新分配
type BlurEffect struct {
	device  Device
	program Program

	width, height int
	inner         Surface
	output        Surface
	horizontal    []float32
	vertical      []float32
}

// NewBlurEffect 编译模糊着色器
func NewBlurEffect(device Device) (*BlurEffect, error) {
	p, err := loadProgram(device, "blur")
	if err != nil {
		return nil, err
	}
	return &BlurEffect{device: device, program: p, width: -1, height: -1}, nil
}

func (b *BlurEffect) reallocate(width, height int) {
	b.releaseSurfaces()
	b.width, b.height = width, height
	b.inner = b.device.NewSurface(width, height)
	b.output = b.device.NewSurface(width, height)

	h, v := GaussianKernels(width, height)
	b.horizontal = flattenKernel(h)
	b.vertical = flattenKernel(v)
}

// Render 模糊 input，返回内部持有的输出表面
// 返回的表面在下一次尺寸变化或 Dispose 之前有效
func (b *BlurEffect) Render(input Surface) Surface {
	size := input.Bounds().Size()
	if size.X != b.width || size.Y != b.height {
		b.reallocate(size.X, size.Y)
	}

	b.device.Draw(b.inner, b.program, []Surface{input}, map[string]any{
		"KernelSamples": b.horizontal,
	})
	b.device.Draw(b.output, b.program, []Surface{b.inner}, map[string]any{
		"KernelSamples": b.vertical,
	})
	return b.output
}

func (b *BlurEffect) releaseSurfaces() {
	if b.inner != nil {
		b.device.DisposeSurface(b.inner)
		b.inner = nil
	}
	if b.output != nil {
		b.device.DisposeSurface(b.output)
		b.output = nil
	}
}

// Dispose 释放缓存的表面
func (b *BlurEffect) Dispose() {
	b.releaseSurfaces()
	b.width, b.height = -1, -1
}
