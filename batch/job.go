package batch

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/mf"
	"github.com/rushteam/feedkit/signal"
)

// Job 是离线分解批任务：
//
//	拉取交互记录 → 建稀疏矩阵 → SGD 分解 → 隐向量整体 upsert
//
// 单次 Run 不携带跨轮状态，失败后下一轮调度整体重跑即可
// （每轮都是当前数据的覆盖写，天然幂等，不做断点续传）。
// 调度（如每小时一次）由嵌入方负责。
type Job struct {
	Signals core.SignalStore
	Factors core.FactorStore
	Config  Config

	// Logger 结构化日志；零值为静默
	Logger zerolog.Logger

	// Rand 随机源（合成零 + 隐向量初始化）；为 nil 时按时间播种。
	// 测试注入固定种子获得可复现的产物。
	Rand *rand.Rand
}

// Run 执行一轮批任务。训练发散时不落库并返回错误（可用 core.IsDiverged 判别）。
func (j *Job) Run(ctx context.Context) error {
	cfg := j.Config
	if cfg.Iterations <= 0 {
		cfg.Iterations = DefaultConfig().Iterations
	}
	if cfg.BudgetSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.BudgetSeconds)*time.Second)
		defer cancel()
	}

	started := time.Now()

	loader := &signal.Loader{
		Signals:       j.Signals,
		MaxConcurrent: cfg.MaxConcurrent,
		Logger:        j.Logger,
	}
	records, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load interaction records: %w", err)
	}

	builder := &mf.Builder{
		SyntheticZeros: cfg.SyntheticZeros,
		Rand:           j.Rand,
	}
	matrix := builder.Build(records)
	j.Logger.Info().
		Int("rows", matrix.NumRows()).
		Int("columns", matrix.NumColumns()).
		Msg("interaction matrix built")

	factors, err := mf.Factorize(ctx, matrix, mf.Options{
		K:               cfg.LatentFeatures,
		Iterations:      cfg.Iterations,
		LearningRate:    cfg.LearningRate,
		Regularization:  cfg.Regularization,
		DivergenceLimit: cfg.DivergenceLimit,
		LossThreshold:   cfg.LossThreshold,
		Rand:            j.Rand,
	})
	if err != nil {
		return fmt.Errorf("factorize: %w", err)
	}
	j.Logger.Info().
		Dur("elapsed", time.Since(started)).
		Int("loss_points", len(factors.Loss)).
		Msg("factorization finished")

	userVecs := make(map[string][]float64, len(factors.Users))
	for i, userID := range factors.Users {
		userVecs[userID] = factors.User[i]
	}
	itemVecs := make(map[string][]float64, len(factors.Columns))
	for idx, col := range factors.Columns {
		itemVecs[col] = factors.Item[idx]
	}

	if err := j.Factors.UpsertUserFactors(ctx, userVecs); err != nil {
		return fmt.Errorf("upsert user factors: %w", err)
	}
	if err := j.Factors.UpsertItemFactors(ctx, itemVecs); err != nil {
		return fmt.Errorf("upsert item factors: %w", err)
	}

	j.Logger.Info().
		Int("user_rows", len(userVecs)).
		Int("item_rows", len(itemVecs)).
		Dur("elapsed", time.Since(started)).
		Msg("batch run completed")
	return nil
}
