package filter

import (
	"context"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pipeline"
)

// Node 是过滤 Node，组合多个过滤器接入服务链路。
// 如果任何一个过滤器返回 true，该候选就会被剔除。
type Node struct {
	Filters []Filter
}

func (n *Node) Name() string { return "filter.node" }

func (n *Node) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *Node) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	return Apply(ctx, rctx, n.Filters, items)
}

var _ pipeline.Node = (*Node)(nil)
