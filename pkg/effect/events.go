package effect

import (
	"github.com/decker502/stagefx/pkg/particle"
	"github.com/decker502/stagefx/pkg/types"
)

// Event 效果粒子生命周期通知
type Event struct {
	Frame       int
	TotalFrames int
	Progress    float64
	Position    types.Vec2
	Particle    particle.Particle
}

// Listener 生命周期通知回调
type Listener func(e Event)

type listenerEntry struct {
	id int
	fn Listener
}

// listenerList 按订阅顺序同步调用的回调列表
type listenerList struct {
	nextID int
	items  []listenerEntry
}

func (ll *listenerList) add(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	ll.nextID++
	id := ll.nextID
	ll.items = append(ll.items, listenerEntry{id: id, fn: fn})
	return func() { ll.remove(id) }
}

func (ll *listenerList) remove(id int) {
	for i, it := range ll.items {
		if it.id == id {
			ll.items = append(ll.items[:i], ll.items[i+1:]...)
			return
		}
	}
}

func (ll *listenerList) fire(e Event) {
	if len(ll.items) == 0 {
		return
	}
	// 回调中可能取消订阅，遍历快照
	snapshot := append([]listenerEntry(nil), ll.items...)
	for _, it := range snapshot {
		it.fn(e)
	}
}
