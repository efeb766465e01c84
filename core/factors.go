package core

import "context"

// FactorStore 是隐向量的存储接口。
//
// 批任务（batch 包）整体 upsert 训练产物：一行一个用户、一行一个合约，
// 每行 k 维隐向量。产物写入后只读，在线打分（feed 包）不加锁读取。
type FactorStore interface {
	// UpsertUserFactors 幂等写入全部用户隐向量（逐行 upsert）
	UpsertUserFactors(ctx context.Context, vectors map[string][]float64) error

	// UpsertItemFactors 幂等写入全部合约隐向量
	UpsertItemFactors(ctx context.Context, vectors map[string][]float64) error

	// GetUserVector 获取单个用户的隐向量；未知用户返回空切片而非错误
	GetUserVector(ctx context.Context, userID string) ([]float64, error)

	// GetItemVector 获取单个合约的隐向量
	GetItemVector(ctx context.Context, itemID string) ([]float64, error)

	// GetAllItemVectors 获取全部合约隐向量（在线召回：一次点积打全量分）
	GetAllItemVectors(ctx context.Context) (map[string][]float64, error)
}
