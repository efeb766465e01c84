package core

import "context"

// InteractionRecord 是单个用户的原始交互信号聚合（隐式反馈）。
//
// 各字段对应不同强度的信号（见 mf 包的建矩阵规则）：
//   - BetOnIDs / PurchasedIDs：下注/购买过的合约，强正信号
//   - LikedIDs：点赞过的合约，强正信号
//   - ViewedCardIDs：在低参与度卡片流里曝光过的合约，中性/负信号（0）
//   - ViewedPageIDs：点开过详情页的合约，弱正信号（0.25）
//   - SwipedIDs：在滑动流里曝光过的合约，独立的平行信号通道（"swiped-" 列）
//   - GroupIDs：加入的主题群组，作为额外特征列（"group-" 列）
type InteractionRecord struct {
	UserID        string
	BetOnIDs      []string
	PurchasedIDs  []string
	LikedIDs      []string
	ViewedCardIDs []string
	ViewedPageIDs []string
	SwipedIDs     []string
	GroupIDs      []string
}

// ErrSignalMissingUserID 表示交互记录缺失用户 id。
var ErrSignalMissingUserID = NewDomainError(ModuleSignal, ErrorCodeInvalidInput, "signal: record missing user id")

// Validate 校验记录的基本形态。单条坏记录不应中止整个批任务：
// 调用方（signal.Loader）对校验失败的记录做跳过 + 记日志处理。
func (r *InteractionRecord) Validate() error {
	if r == nil || r.UserID == "" {
		return ErrSignalMissingUserID
	}
	return nil
}

// SignalStore 是交互信号的读取接口，由外部事件/日志存储适配实现。
// 核心不关心信号如何落库与分页，只要求产出 InteractionRecord 形态。
type SignalStore interface {
	// UserIDs 返回需要参与本次批任务的用户 id 列表
	UserIDs(ctx context.Context) ([]string, error)

	// UserRecord 拉取单个用户的全部信号集合（实现内部自行分页）
	UserRecord(ctx context.Context, userID string) (*InteractionRecord, error)
}
