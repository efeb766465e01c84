package feed

import (
	"context"

	"github.com/rushteam/feedkit/core"
)

// Reason 是候选来源的 provenance 标记。
type Reason string

const (
	ReasonFollowed   Reason = "followed"   // 关注的创建者
	ReasonConversion Reason = "conversion" // 转化倾向（个性化）
	ReasonImportance Reason = "importance" // 重要度
	ReasonFreshness  Reason = "freshness"  // 新鲜度
	ReasonNone       Reason = ""           // 无来源标记
)

// precedence 返回 Reason 的固定优先级（值越小优先级越高）：
// followed > conversion > importance > freshness > 无。
func precedence(r Reason) int {
	switch r {
	case ReasonFollowed:
		return 0
	case ReasonConversion:
		return 1
	case ReasonImportance:
		return 2
	case ReasonFreshness:
		return 3
	default:
		return 4
	}
}

// Source 表示一个独立产出已排序候选列表的来源
// （关注流 / 转化排序 / 重要度排序 / 新鲜度排序 / 个性化召回 ...）。
// 可并发 fan-out，见 Fanout。
type Source interface {
	Name() string

	// Reason 返回该来源的 provenance 标记
	Reason() Reason

	// Fetch 返回按该来源自身口径降序排好的候选列表，
	// Item.Score 为该来源的相关性分数
	Fetch(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// WeightedSource 是可选扩展：来源自带列表级权重因子
// （如按用户的主题转化权重），参与乘法合成。
type WeightedSource interface {
	Source
	Weight(rctx *core.RecommendContext) float64
}

// CandidateList 是一个来源产出的候选列表。
type CandidateList struct {
	Reason Reason
	Weight float64 // 列表级权重因子；<=0 视为 1
	Items  []*core.Item
}
