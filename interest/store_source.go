package interest

import (
	"context"
	"encoding/json"

	"github.com/rushteam/feedkit/core"
)

// StoreSource 从 core.Store 读取用户主题转化分。
//
// key 约定：{KeyPrefix}:topic:{userID}，值为 JSON 对象
// {"groupID": avgConversionScore, ...}。key 不存在视为空（新用户）。
type StoreSource struct {
	store core.Store

	// KeyPrefix 存储 key 前缀，默认 "interest"
	KeyPrefix string
}

func NewStoreSource(s core.Store, keyPrefix string) *StoreSource {
	if keyPrefix == "" {
		keyPrefix = "interest"
	}
	return &StoreSource{store: s, KeyPrefix: keyPrefix}
}

func (s *StoreSource) TopicScores(ctx context.Context, userID string) (map[string]float64, error) {
	data, err := s.store.Get(ctx, s.KeyPrefix+":topic:"+userID)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return make(map[string]float64), nil
		}
		return nil, err
	}

	var scores map[string]float64
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

var _ Source = (*StoreSource)(nil)
