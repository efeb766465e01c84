package filter

import (
	"context"

	"github.com/rushteam/feedkit/core"
)

// Filter 是排除项过滤器的抽象接口，用于判断一个候选是否应该被剔除。
// 返回 true 表示应该过滤（移除），false 表示保留。
//
// 排除项（已看过/拉黑/忽略）在候选进入聚合器之前由调用方应用，
// 聚合器本身不做任何过滤。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断候选是否应该被剔除
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}

// Apply 按顺序应用多个过滤器，任一返回 true 即剔除该候选。
func Apply(
	ctx context.Context,
	rctx *core.RecommendContext,
	filters []Filter,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		keep := true
		for _, f := range filters {
			drop, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				return nil, err
			}
			if drop {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out, nil
}
