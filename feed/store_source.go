package feed

import (
	"context"
	"encoding/json"

	"github.com/rushteam/feedkit/core"
)

// scoredID 是存储中的单条排序候选。
type scoredID struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// StoreListSource 从 Store 读取上游预排序好的候选列表
// （关注流 / 重要度 / 新鲜度等由排除层 SQL 产出并落库的列表）。
//
// key 约定：{KeyPrefix}:{reason}:{userID}，值为 JSON 数组
// [{"id": "...", "score": ...}, ...]，已按该口径降序。
// key 不存在视为空列表（新用户没有预排序数据是正常情况）。
type StoreListSource struct {
	Store core.Store

	// KeyPrefix 存储 key 前缀，默认 "feed"
	KeyPrefix string

	// SourceReason 该列表的 provenance 标记（也参与 key 拼接）
	SourceReason Reason
}

func (s *StoreListSource) Name() string { return "feed." + string(s.SourceReason) }

func (s *StoreListSource) Reason() Reason { return s.SourceReason }

func (s *StoreListSource) Fetch(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if s.Store == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}
	prefix := s.KeyPrefix
	if prefix == "" {
		prefix = "feed"
	}

	data, err := s.Store.Get(ctx, prefix+":"+string(s.SourceReason)+":"+rctx.UserID)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []scoredID
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, len(entries))
	for _, e := range entries {
		it := core.NewItem(e.ID)
		it.Score = e.Score
		out = append(out, it)
	}
	return out, nil
}

var _ Source = (*StoreListSource)(nil)
