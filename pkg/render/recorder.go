package render

import "github.com/decker502/stagefx/pkg/types"

// DrawCall 记录的一次绘制
type DrawCall struct {
	Image Image
	Mode  BlendMode
	Op    DrawOptions
}

// Batch 同一混合模式下连续提交的一组绘制
type Batch struct {
	Mode  BlendMode
	Calls []DrawCall
}

// Recorder 内存画布，记录批次与绘制调用。
// 用于无窗口环境（终端监视器）和测试。
type Recorder struct {
	width, height float64
	mode          BlendMode
	batches       []Batch
	// Switches Begin 实际切换模式的次数
	Switches int
}

// NewRecorder 创建指定尺寸的记录画布
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{width: width, height: height}
}

func (r *Recorder) Mode() BlendMode { return r.mode }

func (r *Recorder) Begin(mode BlendMode) {
	if mode == r.mode {
		return
	}
	r.mode = mode
	r.Switches++
	// 空批次不保留，避免统计噪声
	if n := len(r.batches); n > 0 && len(r.batches[n-1].Calls) == 0 {
		r.batches[n-1].Mode = mode
		return
	}
	r.batches = append(r.batches, Batch{Mode: mode})
}

func (r *Recorder) Draw(img Image, op *DrawOptions) {
	if img == nil {
		return
	}
	if len(r.batches) == 0 {
		r.batches = append(r.batches, Batch{Mode: r.mode})
	}
	b := &r.batches[len(r.batches)-1]
	call := DrawCall{Image: img, Mode: r.mode}
	if op != nil {
		call.Op = *op
	}
	b.Calls = append(b.Calls, call)
}

func (r *Recorder) Size() types.Vec2 {
	return types.V(r.width, r.height)
}

// Batches 返回非空批次
func (r *Recorder) Batches() []Batch {
	out := make([]Batch, 0, len(r.batches))
	for _, b := range r.batches {
		if len(b.Calls) > 0 {
			out = append(out, b)
		}
	}
	return out
}

// Calls 按提交顺序返回全部绘制调用
func (r *Recorder) Calls() []DrawCall {
	var out []DrawCall
	for _, b := range r.batches {
		out = append(out, b.Calls...)
	}
	return out
}

// Reset 清空记录并恢复默认模式
func (r *Recorder) Reset() {
	r.batches = r.batches[:0]
	r.mode = AlphaBlend
	r.Switches = 0
}
