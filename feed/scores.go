package feed

import (
	"context"
	"strings"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/mf"
)

// UserContractScores 是服务侧的同步打分函数：
// 读取批任务落库的隐向量，对滑动通道的全部合约算点积亲和分。
//
// 未知用户（批任务没见过、没有隐向量）返回空 map 而非错误，
// 调用方回退到非个性化来源。
func UserContractScores(ctx context.Context, factors core.FactorStore, userID string) (map[string]float64, error) {
	scores := make(map[string]float64)

	userVector, err := factors.GetUserVector(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(userVector) == 0 {
		return scores, nil
	}

	itemVectors, err := factors.GetAllItemVectors(ctx)
	if err != nil {
		return nil, err
	}

	// 只有 swiped- 通道的列代表合约亲和度；
	// 裸 id 列与 group- 列是分解输入，不参与打分。
	for col, itemVector := range itemVectors {
		if !strings.HasPrefix(col, mf.SwipedPrefix) {
			continue
		}
		scores[strings.TrimPrefix(col, mf.SwipedPrefix)] = dotProduct(userVector, itemVector)
	}
	return scores, nil
}

// dotProduct 计算两个向量的点积。
func dotProduct(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
