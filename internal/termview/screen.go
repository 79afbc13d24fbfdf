package termview

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/stagefx/pkg/render"
	"github.com/decker502/stagefx/pkg/types"
)

// Screen Present 需要的屏幕能力，tcell.Screen 直接满足
type Screen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// Present 把网格写到屏幕左上角（不调用 Show），返回实际写入的行数
func (c *Canvas) Present(s Screen, top int) int {
	w, h := s.Size()
	rows := min(c.rows, h-top)
	cols := min(c.cols, w)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			cell := c.cells[y*c.cols+x]
			style := tcell.StyleDefault.
				Background(TCellColor(cell.Bg)).
				Foreground(TCellColor(cell.Fg))
			s.SetContent(x, y+top, cell.Rune, nil, style)
		}
	}
	return max(rows, 0)
}

// TCellColor 浮点颜色转 tcell 真彩色
func TCellColor(c types.Color) tcell.Color {
	n := c.NRGBA()
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B))
}

// DrawText 在屏幕上写一行文字，超出宽度截断
func DrawText(s Screen, x, y int, style tcell.Style, text string) {
	w, _ := s.Size()
	for _, r := range text {
		if x >= w {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// builtinPrefix 程序生成贴图的引用前缀
const builtinPrefix = "builtin:"

// 程序生成贴图在终端里的字形，逻辑尺寸与窗口版一致
var builtinGlyphs = map[string]rune{
	"circle": 'o',
	"ring":   'O',
	"spark":  '*',
	"square": '#',
}

// Glyphs 把贴图引用解析为终端字形（实现 particle.ImageResolver）
//
// builtin: 引用映射到固定字形；其余引用按 Register 注册的字形解析。
type Glyphs struct {
	size   int
	custom map[string]Glyph
}

// NewGlyphs 创建解析器，size 为 builtin 贴图的逻辑边长
func NewGlyphs(size int) *Glyphs {
	if size <= 0 {
		size = 64
	}
	return &Glyphs{size: size, custom: make(map[string]Glyph)}
}

// Register 为任意引用登记字形
func (g *Glyphs) Register(ref string, glyph Glyph) {
	g.custom[ref] = glyph
}

// Resolve 实现 particle.ImageResolver
func (g *Glyphs) Resolve(ref string) (render.Image, error) {
	if glyph, ok := g.custom[ref]; ok {
		return glyph, nil
	}
	if name, ok := strings.CutPrefix(ref, builtinPrefix); ok {
		if r, ok := builtinGlyphs[name]; ok {
			return Glyph{Rune: r, W: g.size, H: g.size}, nil
		}
	}
	return nil, fmt.Errorf("no glyph for %q", ref)
}
