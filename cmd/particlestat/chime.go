package main

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const chimeSampleRate = beep.SampleRate(44100)

// chime 爆发提示音，每个预设名映射到固定音高
type chime struct {
	mu          sync.Mutex
	initialized bool
	mixer       *beep.Mixer
}

func newChime() *chime {
	return &chime{mixer: &beep.Mixer{}}
}

// Init 初始化扬声器，失败时提示音静默
func (c *chime) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		return nil
	}
	if err := speaker.Init(chimeSampleRate, chimeSampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Play 播放 name 对应音高的短音
func (c *chime) Play(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	sine, err := generators.SineTone(chimeSampleRate, pitchFor(name))
	if err != nil {
		return
	}
	tone := beep.Take(chimeSampleRate.N(40*time.Millisecond), sine)
	speaker.Lock()
	c.mixer.Add(tone)
	speaker.Unlock()
}

// Close 停止播放并释放扬声器
func (c *chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	speaker.Close()
	c.initialized = false
}

// C 大调五声音阶
var pentatonic = [...]float64{523.25, 587.33, 659.25, 783.99, 880.00}

func pitchFor(name string) float64 {
	h := fnv.New32a()
	h.Write([]byte(name))
	return pentatonic[h.Sum32()%uint32(len(pentatonic))]
}
