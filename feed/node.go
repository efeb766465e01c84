package feed

import (
	"context"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/interest"
	"github.com/rushteam/feedkit/pipeline"
	"github.com/rushteam/feedkit/pkg/conv"
)

// RankNode 是服务链路的候选入口节点：fan-out 全部来源并聚合排序。
// 忽略输入 items（它是链路起点），输出合成分降序的去重候选。
type RankNode struct {
	Fanout     *Fanout
	Aggregator *Aggregator

	// TopicWeights 可选：按用户主题转化均分加权非关注流列表
	// （followed 列表不加权，关注关系与主题兴趣无关）。
	TopicWeights *interest.Service
}

func (n *RankNode) Name() string { return "feed.rank" }

func (n *RankNode) Kind() pipeline.Kind { return pipeline.KindCandidate }

func (n *RankNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	lists, err := n.Fanout.Gather(ctx, rctx)
	if err != nil {
		return nil, err
	}

	if n.TopicWeights != nil && rctx != nil && rctx.UserID != "" {
		avg, err := n.TopicWeights.AverageScore(ctx, rctx.UserID)
		if err != nil {
			return nil, err
		}
		if avg > 0 {
			for i := range lists {
				if lists[i].Reason != ReasonFollowed && lists[i].Weight <= 0 {
					lists[i].Weight = avg
				}
			}
		}
	}

	agg := n.Aggregator
	if agg == nil {
		agg = &Aggregator{}
	}
	return Items(agg.Merge(lists)), nil
}

// TopNNode 截取前 N 个候选，通常放在链路末尾限制返回数量。
// N <= 0 或候选数不足 N 时原样返回。
type TopNNode struct {
	N int
}

func (n *TopNNode) Name() string { return "feed.topn" }

func (n *TopNNode) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}

// RegisterNodes 向 NodeFactory 注册 feed 包的 Node 构建器，
// 供 YAML/JSON 配置驱动的链路使用。Fanout 等依赖通过闭包注入。
func RegisterNodes(f *pipeline.NodeFactory, fanout *Fanout, weights *interest.Service) {
	f.Register("feed.rank", func(_ map[string]interface{}) (pipeline.Node, error) {
		return &RankNode{Fanout: fanout, TopicWeights: weights}, nil
	})
	f.Register("feed.topn", func(cfg map[string]interface{}) (pipeline.Node, error) {
		n, _ := conv.ToInt(cfg["n"])
		return &TopNNode{N: n}, nil
	})
}

var (
	_ pipeline.Node = (*RankNode)(nil)
	_ pipeline.Node = (*TopNNode)(nil)
)
