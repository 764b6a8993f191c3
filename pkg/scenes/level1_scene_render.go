package scenes

import (
	"image/color"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/acclimation/pkg/config"
	"github.com/decker502/acclimation/pkg/world"
)

const defaultNodeColor = "#8a8f99"

// Render 实现 Scene：俯视示意图 + 界面
func (s *Level1Scene) Render() {
	canvas := s.Canvas()
	if canvas == nil {
		return
	}
	s.drawSchematic(canvas)
	s.doc.Draw(canvas)
}

// schematicPixel 填充多边形用的 1x1 白色纹理
var schematicPixel *ebiten.Image

func pixel() *ebiten.Image {
	if schematicPixel == nil {
		schematicPixel = ebiten.NewImage(1, 1)
		schematicPixel.Fill(color.White)
	}
	return schematicPixel
}

// parseHex 解析十六进制颜色，失败时使用 fallback
func parseHex(hex, fallback string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err == nil {
		return c
	}
	if hex != "" {
		log.Printf("[Level1] Warning: invalid color %q: %v", hex, err)
	}
	c, _ = colorful.Hex(fallback)
	return c
}

// drawSchematic 以玩家为中心、北向上绘制关卡的俯视图
// 节点按顶面高度从低到高绘制，颜色按与玩家的距离向雾色混合
func (s *Level1Scene) drawSchematic(dst *ebiten.Image) {
	sky := parseHex(s.env.Sky, config.DefaultEnvironment().Sky)
	fog := parseHex(s.env.Fog, config.DefaultEnvironment().Fog)
	dst.Fill(sky)

	w, h := s.Size()
	cx, cy := float64(w)/2, float64(h)/2
	eye := s.player.Position()
	project := func(x, z float64) (float32, float32) {
		return float32(cx + (x-eye.X)*config.SchematicPixelsPerMeter),
			float32(cy - (z-eye.Z)*config.SchematicPixelsPerMeter)
	}

	nodes := visibleNodes(s.world)
	for _, n := range nodes {
		c := parseHex(n.Color(), defaultNodeColor)
		pos := n.WorldPosition()
		dist := math.Hypot(pos.X-eye.X, pos.Z-eye.Z)
		c = c.BlendRgb(fog, math.Min(1, dist*s.env.FogFactor)).Clamped()

		corners := n.WorldCorners()
		var path vector.Path
		// 顶面四个角：(-x,-z) (-x,+z) (+x,+z) (+x,-z)
		for i, idx := range [4]int{2, 3, 7, 6} {
			x, y := project(corners[idx].X, corners[idx].Z)
			if i == 0 {
				path.MoveTo(x, y)
			} else {
				path.LineTo(x, y)
			}
		}
		path.Close()
		fillPath(dst, &path, c)
	}

	px, py := project(eye.X, eye.Z)
	f := s.player.Forward()
	fx, fz := f.X, f.Z
	if l := math.Hypot(fx, fz); l > 1e-6 {
		fx, fz = fx/l, fz/l
	}
	tipX, tipY := project(eye.X+fx*0.6, eye.Z+fz*0.6)
	vector.StrokeLine(dst, px, py, tipX, tipY, 2, color.White, true)
	vector.DrawFilledCircle(dst, px, py, config.SchematicPlayerRadius, color.RGBA{R: 0xf0, G: 0xc0, B: 0x40, A: 0xff}, true)
}

// visibleNodes 参与绘制的节点：可见、非触发体积，按顶面高度升序
func visibleNodes(w *world.World) []*world.Node {
	var out []*world.Node
	for _, n := range w.Nodes() {
		if n.Hidden() || strings.HasPrefix(n.Name(), triggerNodePrefix) {
			continue
		}
		if !n.HasCollider() && n.Color() == "" {
			continue
		}
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WorldBounds().Max.Y < out[j].WorldBounds().Max.Y
	})
	return out
}

func fillPath(dst *ebiten.Image, path *vector.Path, c colorful.Color) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b := float32(c.R), float32(c.G), float32(c.B)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 0, 0
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = r, g, b, 1
	}
	op := &ebiten.DrawTrianglesOptions{}
	dst.DrawTriangles(vs, is, pixel(), op)
}
