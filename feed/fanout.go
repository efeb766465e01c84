package feed

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pkg/utils"
)

// Fanout 并发执行多个候选来源，产出 Source 顺序对齐的候选列表集。
//
// 与聚合器的失败语义一致：任一来源取数失败则整体失败并向调用方传播，
// 不静默吞掉部分结果（聚合器只接收已就绪的列表）。
type Fanout struct {
	Sources []Source

	// Timeout 每个来源的超时时间（0 表示不限制）
	Timeout time.Duration

	// MaxConcurrent 最大并发数（0 表示无限制）
	MaxConcurrent int
}

// Gather 拉取全部来源的候选列表。
func (f *Fanout) Gather(ctx context.Context, rctx *core.RecommendContext) ([]CandidateList, error) {
	if len(f.Sources) == 0 {
		return nil, nil
	}

	lists := make([]CandidateList, len(f.Sources))
	eg, egCtx := errgroup.WithContext(ctx)

	var sem chan struct{}
	if f.MaxConcurrent > 0 {
		sem = make(chan struct{}, f.MaxConcurrent)
	}

	for i, src := range f.Sources {
		idx, s := i, src
		eg.Go(func() error {
			if f.MaxConcurrent > 0 {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			fetchCtx := egCtx
			if f.Timeout > 0 {
				var cancel context.CancelFunc
				fetchCtx, cancel = context.WithTimeout(egCtx, f.Timeout)
				defer cancel()
			}

			items, err := s.Fetch(fetchCtx, rctx)
			if err != nil {
				return err
			}

			// 记录候选来源 label，方便 explain / 观测
			for _, it := range items {
				it.PutLabel("candidate_source", utils.Label{Value: s.Name(), Source: "candidate"})
			}

			weight := 0.0
			if ws, ok := s.(WeightedSource); ok {
				weight = ws.Weight(rctx)
			}
			lists[idx] = CandidateList{
				Reason: s.Reason(),
				Weight: weight,
				Items:  items,
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return lists, nil
}
