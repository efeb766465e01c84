package signal

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/feedkit/core"
)

// Loader 并发拉取全量用户的交互记录（批任务的 I/O 边界）。
//
// 每个用户的历史相互独立，按用户 fan-out、有界并发；
// 拉完整体交给 mf 包做纯计算，后续不再有 I/O。
//
// 容错：单个用户的拉取失败或记录校验失败只跳过该用户并记日志，
// 不中止整批（坏记录不应拖垮一小时一次的全量重算）。
type Loader struct {
	Signals core.SignalStore

	// MaxConcurrent 最大并发数（<=0 时取 8）
	MaxConcurrent int

	// Logger 结构化日志；零值为静默
	Logger zerolog.Logger
}

// Load 拉取全部用户的记录，保持用户列表顺序（矩阵行号与输入顺序一致）。
func (l *Loader) Load(ctx context.Context) ([]*core.InteractionRecord, error) {
	userIDs, err := l.Signals.UserIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(userIDs) == 0 {
		return nil, nil
	}

	maxConcurrent := l.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}

	results := make([]*core.InteractionRecord, len(userIDs))
	eg, egCtx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, maxConcurrent)

	for i, userID := range userIDs {
		idx, uid := i, userID
		eg.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			rec, err := l.Signals.UserRecord(egCtx, uid)
			if err != nil {
				l.Logger.Warn().Err(err).Str("user_id", uid).Msg("skip user: fetch failed")
				return nil
			}
			if err := rec.Validate(); err != nil {
				l.Logger.Warn().Err(err).Str("user_id", uid).Msg("skip user: malformed record")
				return nil
			}
			results[idx] = rec
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := make([]*core.InteractionRecord, 0, len(results))
	for _, rec := range results {
		if rec != nil {
			out = append(out, rec)
		}
	}
	l.Logger.Info().Int("users", len(userIDs)).Int("records", len(out)).Msg("interaction records loaded")
	return out, nil
}
