package stage

import "fmt"

// DrawFunc 阶段绘制回调
type DrawFunc func(s Stage)

// Handle 回调订阅句柄，用于注销
type Handle struct {
	id    uint64
	stage Stage
}

type drawHook struct {
	id uint64
	fn DrawFunc
}

type updateHook struct {
	id uint64
	fn func()
}

// Hooks 宿主绘制阶段注册表
//
// 宿主每个模拟步调用一次 Update，每帧按 Visual 顺序调用各阶段的 Draw。
// 同一阶段的回调按订阅顺序执行。
type Hooks struct {
	nextID  uint64
	draw    [count][]drawHook
	updates []updateHook
}

// NewHooks 创建空注册表
func NewHooks() *Hooks {
	return &Hooks{}
}

// Hook 为可视阶段注册绘制回调
func (h *Hooks) Hook(s Stage, fn DrawFunc) (Handle, error) {
	if !s.IsVisual() {
		return Handle{}, fmt.Errorf("failed to hook stage %v: %w", s, ErrUnknownStage)
	}
	if fn == nil {
		return Handle{}, fmt.Errorf("failed to hook stage %v: nil callback", s)
	}
	h.nextID++
	h.draw[s] = append(h.draw[s], drawHook{id: h.nextID, fn: fn})
	return Handle{id: h.nextID, stage: s}, nil
}

// HookUpdate 注册每个模拟步执行一次的回调
func (h *Hooks) HookUpdate(fn func()) Handle {
	h.nextID++
	h.updates = append(h.updates, updateHook{id: h.nextID, fn: fn})
	return Handle{id: h.nextID, stage: None}
}

// Unhook 注销回调，重复注销无副作用
func (h *Hooks) Unhook(handle Handle) {
	if handle.id == 0 {
		return
	}
	if handle.stage == None {
		for i, u := range h.updates {
			if u.id == handle.id {
				h.updates = append(h.updates[:i], h.updates[i+1:]...)
				return
			}
		}
		return
	}
	if !handle.stage.IsVisual() {
		return
	}
	list := h.draw[handle.stage]
	for i, d := range list {
		if d.id == handle.id {
			h.draw[handle.stage] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Update 执行全部更新回调
func (h *Hooks) Update() {
	for _, u := range h.updates {
		u.fn()
	}
}

// Draw 执行指定阶段的全部绘制回调
func (h *Hooks) Draw(s Stage) {
	if !s.IsVisual() {
		return
	}
	for _, d := range h.draw[s] {
		d.fn(s)
	}
}

// DrawAll 按宿主顺序绘制全部可视阶段
func (h *Hooks) DrawAll() {
	h.DrawAllWith(nil)
}

// DrawAllWith 按宿主顺序绘制全部可视阶段，world 在每个阶段的粒子之前
// 绘制宿主自己的世界内容（背景、图块、实体等）
func (h *Hooks) DrawAllWith(world func(s Stage)) {
	for _, s := range visual {
		if world != nil {
			world(s)
		}
		h.Draw(s)
	}
}

// Len 指定阶段已注册的回调数
func (h *Hooks) Len(s Stage) int {
	if s < 0 || s >= count {
		return 0
	}
	return len(h.draw[s])
}

// UpdateLen 已注册的更新回调数
func (h *Hooks) UpdateLen() int {
	return len(h.updates)
}
