package game

import "github.com/decker502/stagefx/pkg/types"

// Camera 二维摄像机，实现 particle.Camera
type Camera struct {
	// Position 视口左上角的世界坐标
	Position types.Vec2
	// Size 视口尺寸
	Size types.Vec2
	// Bounds 世界尺寸，零值表示不限制滚动
	Bounds types.Vec2
}

// NewCamera 创建指定视口尺寸的摄像机
func NewCamera(width, height float64) *Camera {
	return &Camera{Size: types.V(width, height)}
}

func (c *Camera) ScreenPosition() types.Vec2 { return c.Position }
func (c *Camera) ScreenSize() types.Vec2     { return c.Size }

// Pan 平移视口
func (c *Camera) Pan(d types.Vec2) {
	c.Position = c.clamp(c.Position.Add(d))
}

// CenterOn 让视口中心对准世界坐标
func (c *Camera) CenterOn(p types.Vec2) {
	c.Position = c.clamp(p.Sub(c.Size.Scale(0.5)))
}

// ScreenToWorld 屏幕坐标转世界坐标
func (c *Camera) ScreenToWorld(p types.Vec2) types.Vec2 {
	return p.Add(c.Position)
}

// WorldToScreen 世界坐标转屏幕坐标
func (c *Camera) WorldToScreen(p types.Vec2) types.Vec2 {
	return p.Sub(c.Position)
}

func (c *Camera) clamp(p types.Vec2) types.Vec2 {
	if c.Bounds.X > 0 {
		p.X = max(0, min(p.X, c.Bounds.X-c.Size.X))
	}
	if c.Bounds.Y > 0 {
		p.Y = max(0, min(p.Y, c.Bounds.Y-c.Size.Y))
	}
	return p
}
