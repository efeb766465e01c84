package filter

import (
	"context"
	"sync"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pkg/dsl"
)

// RuleFilter 是表达式驱动的过滤器：表达式命中（求值为 true）的候选被剔除。
// 用于运营侧可配置的排除规则，表达式语法见 pkg/dsl。
//
// 示例：
//   - `label.reason == "freshness" && item.score < 0.1`
//   - `item.meta.creator_id == "banned-creator"`
type RuleFilter struct {
	// Expr CEL 表达式；空表达式不过滤任何候选
	Expr string

	once sync.Once
	rule *dsl.Rule
	err  error
}

func (f *RuleFilter) Name() string { return "filter.rule" }

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Expr == "" {
		return false, nil
	}

	f.once.Do(func() {
		f.rule, f.err = dsl.Compile(f.Expr)
	})
	if f.err != nil {
		return false, f.err
	}

	return f.rule.Eval(item, rctx)
}
