package game

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/stagefx/pkg/render"
	"github.com/decker502/stagefx/pkg/types"
)

// 单批次最多的四边形数（uint16 索引上限）
const maxBatchQuads = 65536 / 4

// CanvasStats 每帧的提交统计
type CanvasStats struct {
	// DrawCalls DrawTriangles 调用次数
	DrawCalls int
	// Quads 提交的四边形数
	Quads int
	// Switches 混合模式切换次数
	Switches int
}

// EbitenCanvas 在 *ebiten.Image 上实现 render.Canvas
//
// 连续的同模式、同贴图绘制合并为一次 DrawTriangles；
// 模式切换、贴图切换或 Flush 时提交当前批次。
// 宿主在每个阶段结束时调用 Flush，保证粒子与世界内容的绘制顺序。
type EbitenCanvas struct {
	target *ebiten.Image
	mode   render.BlendMode

	batchImage *ebiten.Image
	vertices   []ebiten.Vertex
	indices    []uint16

	stats CanvasStats
}

// NewEbitenCanvas 创建画布，SetTarget 之前的绘制会被丢弃
func NewEbitenCanvas() *EbitenCanvas {
	return &EbitenCanvas{
		vertices: make([]ebiten.Vertex, 0, 4*256),
		indices:  make([]uint16, 0, 6*256),
	}
}

// SetTarget 设置绘制目标并重置统计，每帧开始时调用
func (c *EbitenCanvas) SetTarget(target *ebiten.Image) {
	c.Flush()
	c.target = target
	c.mode = render.AlphaBlend
	c.stats = CanvasStats{}
}

// Stats 本帧统计
func (c *EbitenCanvas) Stats() CanvasStats { return c.stats }

func (c *EbitenCanvas) Mode() render.BlendMode { return c.mode }

func (c *EbitenCanvas) Begin(mode render.BlendMode) {
	if mode == c.mode {
		return
	}
	c.Flush()
	c.mode = mode
	c.stats.Switches++
}

func (c *EbitenCanvas) Size() types.Vec2 {
	if c.target == nil {
		return types.Vec2{}
	}
	b := c.target.Bounds()
	return types.V(float64(b.Dx()), float64(b.Dy()))
}

// Draw 把一张图追加到当前批次，非 *ebiten.Image 的图片被忽略
func (c *EbitenCanvas) Draw(img render.Image, op *render.DrawOptions) {
	src, ok := img.(*ebiten.Image)
	if !ok || src == nil || c.target == nil {
		return
	}
	if op == nil {
		op = &render.DrawOptions{Scale: types.V(1, 1), Color: types.White}
	}
	if c.batchImage != src || len(c.vertices)/4 >= maxBatchQuads {
		c.Flush()
		c.batchImage = src
	}

	base := uint16(len(c.vertices))
	quad := quadVertices(src.Bounds(), op)
	c.vertices = append(c.vertices, quad[:]...)
	c.indices = append(c.indices,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
	c.stats.Quads++
}

// Flush 提交当前批次
func (c *EbitenCanvas) Flush() {
	if len(c.vertices) == 0 || c.target == nil || c.batchImage == nil {
		c.vertices = c.vertices[:0]
		c.indices = c.indices[:0]
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.Blend = BlendFor(c.mode)
	c.target.DrawTriangles(c.vertices, c.indices, c.batchImage, op)
	c.stats.DrawCalls++

	c.vertices = c.vertices[:0]
	c.indices = c.indices[:0]
}

// quadVertices 生成一张图的四个顶点：左上、右上、左下、右下
//
// 变换顺序：减去原点 → 水平翻转 → 缩放 → 旋转 → 平移到 Position
func quadVertices(bounds image.Rectangle, op *render.DrawOptions) [4]ebiten.Vertex {
	src := bounds
	if op.Source != nil {
		src = op.Source.Intersect(bounds)
	}
	w, h := float64(src.Dx()), float64(src.Dy())

	corners := [4][2]float64{
		{0, 0}, // 左上
		{w, 0}, // 右上
		{0, h}, // 左下
		{w, h}, // 右下
	}
	texs := [4][2]float32{
		{float32(src.Min.X), float32(src.Min.Y)},
		{float32(src.Max.X), float32(src.Min.Y)},
		{float32(src.Min.X), float32(src.Max.Y)},
		{float32(src.Max.X), float32(src.Max.Y)},
	}

	cosT, sinT := math.Cos(op.Rotation), math.Sin(op.Rotation)
	r, g, b, a := float32(op.Color.R), float32(op.Color.G), float32(op.Color.B), float32(op.Color.A)

	var out [4]ebiten.Vertex
	for i, corner := range corners {
		x := corner[0] - op.Origin.X
		y := corner[1] - op.Origin.Y
		if op.FlipH {
			x = -x
		}
		x *= op.Scale.X
		y *= op.Scale.Y

		rx := x*cosT - y*sinT
		ry := x*sinT + y*cosT

		out[i] = ebiten.Vertex{
			DstX:   float32(op.Position.X + rx),
			DstY:   float32(op.Position.Y + ry),
			SrcX:   texs[i][0],
			SrcY:   texs[i][1],
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		}
	}
	return out
}

// 加法混合（发光效果，如爆炸、火焰）
var blendAdditive = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// 源颜色未预乘时的混合
var blendNonPremultiplied = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorSourceAlpha,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// 正片叠底（阴影、染色）
var blendMultiply = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// 减法混合：目标减去源
var blendSubtract = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationReverseSubtract,
	BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// BlendFor 把混合模式映射到 ebiten.Blend，未知模式按普通 Alpha 混合处理
func BlendFor(mode render.BlendMode) ebiten.Blend {
	switch mode {
	case render.Additive:
		return blendAdditive
	case render.NonPremultiplied:
		return blendNonPremultiplied
	case render.Opaque:
		return ebiten.BlendCopy
	case render.Multiply:
		return blendMultiply
	case render.Subtract:
		return blendSubtract
	default:
		return ebiten.BlendSourceOver
	}
}
