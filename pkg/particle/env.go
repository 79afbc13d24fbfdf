package particle

//go:generate go tool mockgen -destination=./mocks/env_mock.go -package=mocks . Camera,Lighting

import (
	"math"

	"github.com/decker502/stagefx/pkg/render"
	"github.com/decker502/stagefx/pkg/types"
)

// Camera 宿主摄像机（世界滚动偏移与视口尺寸）
type Camera interface {
	// ScreenPosition 视口左上角的世界坐标
	ScreenPosition() types.Vec2
	// ScreenSize 视口尺寸
	ScreenSize() types.Vec2
}

// Lighting 宿主世界光照网格
type Lighting interface {
	// ColorAt 查询网格单元的光照颜色
	ColorAt(cellX, cellY int) types.Color
	// AddLight 向网格单元叠加光照
	AddLight(cellX, cellY int, c types.Color)
}

// ImageResolver 把图片引用解析为图片句柄
type ImageResolver interface {
	Resolve(ref string) (render.Image, error)
}

// Env 粒子运行时依赖的宿主协作者，由管理器在接纳粒子时绑定。
// 所有字段均可为空：缺少 Camera 时视口视为无限大、滚动偏移为零。
type Env struct {
	Camera   Camera
	Lighting Lighting
	Images   ImageResolver

	// OffscreenRange 液体层离屏缓冲偏移
	OffscreenRange float64
	// CullMargin 离屏剔除额外留白
	CullMargin float64
	// LightCellSize 光照网格单元尺寸（世界像素）
	LightCellSize float64

	// Ticks 已执行的模拟步数，供波动类视觉效果使用
	Ticks uint64
}

// DefaultEnv 返回带默认常量的环境
func DefaultEnv() *Env {
	return &Env{
		OffscreenRange: 192,
		CullMargin:     50,
		LightCellSize:  16,
	}
}

// LightCell 世界坐标所在的光照网格单元
func (e *Env) LightCell(p types.Vec2) (int, int) {
	size := e.LightCellSize
	if size <= 0 {
		size = 16
	}
	return int(math.Floor(p.X / size)), int(math.Floor(p.Y / size))
}

func (e *Env) screenPosition() types.Vec2 {
	if e == nil || e.Camera == nil {
		return types.Vec2{}
	}
	return e.Camera.ScreenPosition()
}
