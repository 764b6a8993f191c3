package effects

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct {
	w, h     int
	disposed bool
}

func (s *fakeSurface) Bounds() image.Rectangle { return image.Rect(0, 0, s.w, s.h) }

type drawCall struct {
	dst      Surface
	program  Program
	sources  []Surface
	uniforms map[string]any
}

type fakeDevice struct {
	allocated int
	disposed  int
	programs  []string
	draws     []drawCall
}

func (d *fakeDevice) NewSurface(w, h int) Surface {
	d.allocated++
	return &fakeSurface{w: w, h: h}
}

func (d *fakeDevice) DisposeSurface(s Surface) {
	d.disposed++
	s.(*fakeSurface).disposed = true
}

func (d *fakeDevice) NewProgram(name string, src []byte) (Program, error) {
	d.programs = append(d.programs, name)
	return name, nil
}

func (d *fakeDevice) Draw(dst Surface, p Program, sources []Surface, uniforms map[string]any) {
	d.draws = append(d.draws, drawCall{dst: dst, program: p, sources: sources, uniforms: uniforms})
}

func TestGaussianKernels_NormalizedAndSymmetric(t *testing.T) {
	h, v := GaussianKernels(1280, 720)

	sumH, sumV := 0.0, 0.0
	for i := 0; i < KernelSize; i++ {
		sumH += h[i].Weight
		sumV += v[i].Weight
		mirror := KernelSize - 1 - i
		assert.InDelta(t, h[i].Weight, h[mirror].Weight, 1e-12)
		assert.InDelta(t, -v[i].Y, v[mirror].Y, 1e-12)
		assert.Zero(t, h[i].Y)
		assert.Zero(t, v[i].X)
	}
	assert.InDelta(t, 1.0, sumH, 1e-9)
	assert.InDelta(t, 1.0, sumV, 1e-9)

	assert.InDelta(t, -KernelRadius, v[0].Y, 1e-12)
	assert.InDelta(t, KernelRadius, v[KernelSize-1].Y, 1e-12)
	assert.InDelta(t, -KernelRadius*720.0/1280.0, h[0].X, 1e-12)
	assert.InDelta(t, 0.0, v[KernelSize/2].Y, 1e-12)
	assert.Greater(t, h[KernelSize/2].Weight, h[0].Weight)
}

func TestBlurEffect_ReallocatesOnlyOnSizeChange(t *testing.T) {
	dev := &fakeDevice{}
	blur, err := NewBlurEffect(dev)
	require.NoError(t, err)
	assert.Equal(t, []string{"blur"}, dev.programs)

	input := &fakeSurface{w: 640, h: 480}
	out1 := blur.Render(input)
	assert.Equal(t, 2, dev.allocated)

	for i := 0; i < 10; i++ {
		assert.Same(t, out1, blur.Render(input))
	}
	assert.Equal(t, 2, dev.allocated, "stable size must not allocate")
	assert.Equal(t, 0, dev.disposed)

	out2 := blur.Render(&fakeSurface{w: 800, h: 600})
	assert.Equal(t, 4, dev.allocated)
	assert.Equal(t, 2, dev.disposed)
	assert.True(t, out1.(*fakeSurface).disposed)
	assert.Equal(t, image.Rect(0, 0, 800, 600), out2.Bounds())

	blur.Dispose()
	assert.Equal(t, 4, dev.disposed)
}

func TestBlurEffect_TwoPasses(t *testing.T) {
	dev := &fakeDevice{}
	blur, err := NewBlurEffect(dev)
	require.NoError(t, err)

	input := &fakeSurface{w: 100, h: 100}
	out := blur.Render(input)

	require.Len(t, dev.draws, 2)
	first, second := dev.draws[0], dev.draws[1]
	assert.Same(t, input, first.sources[0])
	assert.Same(t, first.dst, second.sources[0], "vertical pass reads the horizontal pass output")
	assert.Same(t, out, second.dst)

	hk := first.uniforms["KernelSamples"].([]float32)
	vk := second.uniforms["KernelSamples"].([]float32)
	require.Len(t, hk, KernelSize*3)
	require.Len(t, vk, KernelSize*3)
	assert.Zero(t, hk[1], "horizontal samples have no y offset")
	assert.Zero(t, vk[0], "vertical samples have no x offset")
}

func TestFadeToColorEffect_Uniforms(t *testing.T) {
	dev := &fakeDevice{}
	fade, err := NewFadeToColorEffect(dev)
	require.NoError(t, err)

	dst := &fakeSurface{w: 10, h: 10}
	sharp := &fakeSurface{w: 10, h: 10}
	blurred := &fakeSurface{w: 10, h: 10}
	fade.Render(dst, sharp, blurred, color.Black, 0.25, 0.75)

	require.Len(t, dev.draws, 1)
	call := dev.draws[0]
	assert.Equal(t, "fade_to_color", call.program)
	assert.Equal(t, []Surface{sharp, blurred}, call.sources)
	assert.Equal(t, []float32{0, 0, 0, 1}, call.uniforms["Color"])
	assert.Equal(t, float32(0.25), call.uniforms["ColorStrength"])
	assert.Equal(t, float32(0.75), call.uniforms["BlurStrength"])
}
