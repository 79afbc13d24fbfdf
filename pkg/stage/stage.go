// Package stage 定义宿主渲染管线中的绘制阶段。
//
// 宿主每帧按固定顺序依次通知各个阶段，粒子按所属阶段分桶，
// 从而可以穿插在背景、图块、实体、液体和界面之间绘制。
package stage

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownStage 未知或不可绘制的阶段
var ErrUnknownStage = errors.New("unknown stage")

// Stage 绘制阶段
type Stage int

const (
	// None 哨兵值，已加入管理器的粒子永远不会处于该阶段
	None Stage = iota
	BeforeBackground
	BeforeWalls
	BeforeNonSolidTiles
	BeforeEntitiesBehindTiles
	BeforeSolidTiles
	BeforeActorsBehindEntities
	BeforeEntities
	BeforeProjectiles
	BeforeActors
	BeforeItems
	BeforePrecipitation
	BeforeDebris
	BeforeDust
	AfterDust
	// BeforeLiquids 液体层，绘制位置需要加上离屏缓冲偏移
	BeforeLiquids
	BeforeInterface
	AfterInterface
	// Twist 非可视阶段，仅供屏幕扭曲后处理累积使用
	Twist

	count
)

// Count 阶段总数（含 None 与 Twist）
const Count = int(count)

var names = [...]string{
	None:                       "None",
	BeforeBackground:           "BeforeBackground",
	BeforeWalls:                "BeforeWalls",
	BeforeNonSolidTiles:        "BeforeNonSolidTiles",
	BeforeEntitiesBehindTiles:  "BeforeEntitiesBehindTiles",
	BeforeSolidTiles:           "BeforeSolidTiles",
	BeforeActorsBehindEntities: "BeforeActorsBehindEntities",
	BeforeEntities:             "BeforeEntities",
	BeforeProjectiles:          "BeforeProjectiles",
	BeforeActors:               "BeforeActors",
	BeforeItems:                "BeforeItems",
	BeforePrecipitation:        "BeforePrecipitation",
	BeforeDebris:               "BeforeDebris",
	BeforeDust:                 "BeforeDust",
	AfterDust:                  "AfterDust",
	BeforeLiquids:              "BeforeLiquids",
	BeforeInterface:            "BeforeInterface",
	AfterInterface:             "AfterInterface",
	Twist:                      "Twist",
}

var visual = []Stage{
	BeforeBackground,
	BeforeWalls,
	BeforeNonSolidTiles,
	BeforeEntitiesBehindTiles,
	BeforeSolidTiles,
	BeforeActorsBehindEntities,
	BeforeEntities,
	BeforeProjectiles,
	BeforeActors,
	BeforeItems,
	BeforePrecipitation,
	BeforeDebris,
	BeforeDust,
	AfterDust,
	BeforeLiquids,
	BeforeInterface,
	AfterInterface,
}

// Visual 返回按宿主绘制顺序排列的可视阶段（副本）
func Visual() []Stage {
	return append([]Stage(nil), visual...)
}

// Valid 是否可以作为粒子的所属阶段（排除 None 与越界值）
func (s Stage) Valid() bool {
	return s > None && s < count
}

// IsVisual 是否由宿主每帧通知绘制
func (s Stage) IsVisual() bool {
	return s > None && s < Twist
}

// IsInterface 界面阶段的粒子直接使用屏幕坐标
func (s Stage) IsInterface() bool {
	return s == BeforeInterface || s == AfterInterface
}

func (s Stage) String() string {
	if s < 0 || s >= count {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return names[s]
}

// Parse 按名字（不区分大小写，可带连字符）解析阶段
func Parse(name string) (Stage, error) {
	key := normalize(name)
	for i, n := range names {
		if normalize(n) == key {
			return Stage(i), nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownStage, name)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, "_", "")
}

// MarshalText 以阶段名序列化
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText 从阶段名解析
func (s *Stage) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Summary 按阶段顺序列出非空阶段的计数，如 "BeforeEntities=1 AfterDust=2"，全空返回 "-"
func Summary(counts map[Stage]int) string {
	stages := make([]Stage, 0, len(counts))
	for s, n := range counts {
		if n > 0 {
			stages = append(stages, s)
		}
	}
	if len(stages) == 0 {
		return "-"
	}
	slices.Sort(stages)
	parts := make([]string, len(stages))
	for i, s := range stages {
		parts[i] = fmt.Sprintf("%s=%d", s, counts[s])
	}
	return strings.Join(parts, " ")
}
