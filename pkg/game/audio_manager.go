package game

import (
	"encoding/binary"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioSampleRate 提示音合成与播放使用的采样率
const AudioSampleRate = 48000

// Tone 合成提示音参数
type Tone struct {
	// Frequency 起始频率 Hz
	Frequency float64
	// Sweep 结束频率相对起始频率的倍数，1 表示不滑音
	Sweep    float64
	Duration time.Duration
	// Decay 指数衰减速率，越大越短促
	Decay float64
}

// DefaultTones 预览工具使用的提示音
var DefaultTones = map[string]Tone{
	"spawn": {Frequency: 660, Sweep: 1.5, Duration: 90 * time.Millisecond, Decay: 30},
	"clear": {Frequency: 440, Sweep: 0.5, Duration: 160 * time.Millisecond, Decay: 18},
	"flash": {Frequency: 990, Sweep: 0.7, Duration: 120 * time.Millisecond, Decay: 24},
	"fault": {Frequency: 180, Sweep: 1, Duration: 220 * time.Millisecond, Decay: 8},
}

// AudioManager 音频管理器
// 职责：
//   - 合成并缓存生成/清除等事件的提示音
//   - 按 SettingsManager 中的开关与音量播放
type AudioManager struct {
	context         *audio.Context
	settingsManager *SettingsManager // 可为 nil
	tones           map[string]Tone
	soundPlayers    map[string]*audio.Player // 名称 -> 播放器
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，为 nil 时所有播放请求返回 false
//   - sm: SettingsManager 实例（用于读取开关与音量，可为 nil）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	am := &AudioManager{
		context:         ctx,
		settingsManager: sm,
		tones:           make(map[string]Tone, len(DefaultTones)),
		soundPlayers:    make(map[string]*audio.Player),
	}
	for name, t := range DefaultTones {
		am.tones[name] = t
	}
	return am
}

// RegisterTone 注册或替换提示音，已缓存的播放器会被丢弃
func (am *AudioManager) RegisterTone(name string, t Tone) {
	am.tones[name] = t
	delete(am.soundPlayers, name)
}

// PlaySound 播放提示音
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(name string) bool {
	if am.settingsManager != nil && !am.settingsManager.Settings().SoundEnabled {
		return false
	}

	player := am.getSoundPlayer(name)
	if player == nil {
		return false
	}

	player.SetVolume(am.getSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", name, err)
	}
	player.Play()
	return true
}

// SetSoundVolume 设置音量并立即应用到已缓存的播放器
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
	for _, player := range am.soundPlayers {
		player.SetVolume(am.getSoundVolume())
	}
}

// GetSoundVolume 当前音量
func (am *AudioManager) GetSoundVolume() float64 {
	return am.getSoundVolume()
}

func (am *AudioManager) getSoundPlayer(name string) *audio.Player {
	if player, exists := am.soundPlayers[name]; exists {
		return player
	}
	if am.context == nil {
		return nil
	}
	t, ok := am.tones[name]
	if !ok {
		log.Printf("[AudioManager] Warning: Sound not found: %s", name)
		return nil
	}
	player := am.context.NewPlayerFromBytes(SynthesizeTone(t, AudioSampleRate))
	am.soundPlayers[name] = player
	return player
}

func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.Settings().SoundVolume
	}
	return 0.5
}

// SynthesizeTone 生成 16 位小端立体声 PCM
func SynthesizeTone(t Tone, sampleRate int) []byte {
	n := int(t.Duration.Seconds() * float64(sampleRate))
	if n <= 0 {
		return nil
	}
	sweep := t.Sweep
	if sweep <= 0 {
		sweep = 1
	}
	buf := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		freq := t.Frequency * math.Pow(sweep, progress)
		phase += 2 * math.Pi * freq / float64(sampleRate)
		env := math.Exp(-t.Decay*progress*t.Duration.Seconds()) * (1 - progress)
		v := int16(math.Sin(phase) * env * 0.8 * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}
