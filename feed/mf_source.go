package feed

import (
	"context"
	"sort"

	"github.com/rushteam/feedkit/core"
)

// PersonalizedSource 是基于矩阵分解隐向量的个性化候选来源。
//
// 离线训练、在线查表：用户隐向量 · 合约隐向量 = 预测亲和分。
// 用户没有隐向量时返回空列表（不报错），聚合时自然由
// 非个性化来源兜底。
type PersonalizedSource struct {
	Factors core.FactorStore

	// TopK 返回 TopK 个合约，默认 20
	TopK int

	// SourceReason provenance 标记，默认 conversion（转化倾向通道）
	SourceReason Reason
}

func (s *PersonalizedSource) Name() string { return "feed.personalized" }

func (s *PersonalizedSource) Reason() Reason {
	if s.SourceReason == ReasonNone {
		return ReasonConversion
	}
	return s.SourceReason
}

func (s *PersonalizedSource) Fetch(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if s.Factors == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}

	scores, err := UserContractScores(ctx, s.Factors, rctx.UserID)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, nil
	}

	out := make([]*core.Item, 0, len(scores))
	for id, score := range scores {
		it := core.NewItem(id)
		it.Score = score
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})

	topK := s.TopK
	if topK <= 0 {
		topK = 20
	}
	if len(out) > topK {
		out = out[:topK]
	}
	return out, nil
}

var _ Source = (*PersonalizedSource)(nil)
