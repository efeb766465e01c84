package interest

import (
	"context"

	"github.com/rushteam/feedkit/core"
)

// Source 是用户主题转化分的取数接口：
// map[groupID]avgConversionScore，作为信息流候选列表的权重输入。
type Source interface {
	TopicScores(ctx context.Context, userID string) (map[string]float64, error)
}

// Service 在 Source 之上加一层显式注入的 TTL 缓存。
//
// 早期实现把这份数据放在包级全局 map 里手动管理过期；
// 这里按缓存服务建模：进程启动构造一次，注入给需要的组件，
// TTL 由缓存实现配置（见 store.NewTTLCache）。
type Service struct {
	source Source
	cache  core.Cache
}

func NewService(source Source, cache core.Cache) *Service {
	return &Service{source: source, cache: cache}
}

// TopicScores 返回用户的主题转化分，命中未过期缓存时不回源。
func (s *Service) TopicScores(ctx context.Context, userID string) (map[string]float64, error) {
	if v, ok := s.cache.Get(userID); ok {
		if scores, ok := v.(map[string]float64); ok {
			return scores, nil
		}
	}

	scores, err := s.source.TopicScores(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(userID, scores)
	return scores, nil
}

// AverageScore 返回用户全部主题转化分的均值（无数据时为 0）。
// 个性化列表的列表级权重用它兜底。
func (s *Service) AverageScore(ctx context.Context, userID string) (float64, error) {
	scores, err := s.TopicScores(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(scores) == 0 {
		return 0, nil
	}
	sum := 0.0
	for _, v := range scores {
		sum += v
	}
	return sum / float64(len(scores)), nil
}
