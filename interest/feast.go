package interest

import (
	"context"
	"fmt"

	feastsdk "github.com/feast-dev/feast/sdk/go"
)

// Feast 特征约定：两个列表型特征按下标对齐，zip 成主题转化分 map。
const (
	defaultGroupsFeature = "user_topic_interests:group_ids"
	defaultScoresFeature = "user_topic_interests:avg_conversion_scores"
	defaultEntityName    = "user_id"
)

// FeastSource 是基于 Feast Feature Store 的主题转化分来源。
//
// 转化分由离线特征工程产出并物化到 Feast 在线存储，
// 这里用官方 Go SDK 的 gRPC 客户端按用户实体取在线特征。
// 通常外面套一层 Service 缓存（Feast 在线查询也有网络往返）。
type FeastSource struct {
	client *feastsdk.GrpcClient

	// Project Feast 项目名称
	Project string

	// GroupsFeature 主题 id 列表特征名
	GroupsFeature string

	// ScoresFeature 转化分列表特征名（与 GroupsFeature 下标对齐）
	ScoresFeature string

	// EntityName 用户实体名
	EntityName string
}

// NewFeastSource 创建一个 Feast 主题转化分来源。
func NewFeastSource(host string, port int, project string) (*FeastSource, error) {
	if port == 0 {
		port = 6565
	}
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, fmt.Errorf("create feast grpc client: %w", err)
	}
	return &FeastSource{
		client:        client,
		Project:       project,
		GroupsFeature: defaultGroupsFeature,
		ScoresFeature: defaultScoresFeature,
		EntityName:    defaultEntityName,
	}, nil
}

func (s *FeastSource) TopicScores(ctx context.Context, userID string) (map[string]float64, error) {
	req := &feastsdk.OnlineFeaturesRequest{
		Features: []string{s.GroupsFeature, s.ScoresFeature},
		Entities: []feastsdk.Row{
			{s.EntityName: feastsdk.StrVal(userID)},
		},
		Project: s.Project,
	}

	resp, err := s.client.GetOnlineFeatures(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("feast get online features: %w", err)
	}

	rows := resp.Rows()
	if len(rows) == 0 {
		return make(map[string]float64), nil
	}
	row := rows[0]

	groups := row[s.GroupsFeature].GetStringListVal().GetVal()
	values := row[s.ScoresFeature].GetDoubleListVal().GetVal()
	return zipTopicScores(groups, values)
}

// zipTopicScores 把两个下标对齐的列表特征 zip 成主题转化分 map。
func zipTopicScores(groups []string, values []float64) (map[string]float64, error) {
	if len(groups) != len(values) {
		return nil, fmt.Errorf("feast feature length mismatch: %d groups, %d scores", len(groups), len(values))
	}
	scores := make(map[string]float64, len(groups))
	for i, g := range groups {
		scores[g] = values[i]
	}
	return scores, nil
}

var _ Source = (*FeastSource)(nil)
