package pipeline

import (
	"context"

	"github.com/rushteam/feedkit/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindCandidate   Kind = "candidate"   // 候选阶段：fan-out 各来源并聚合
	KindFilter      Kind = "filter"      // 过滤阶段：剔除排除项（已看过/拉黑/忽略）
	KindPostProcess Kind = "postprocess" // 后处理阶段：截断/结果修饰
)

// Node 是信息流服务链路的最小可扩展单元。
// 统一采用“输入 items -> 输出 items”的形态，方便候选生成、过滤截断等操作。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}
