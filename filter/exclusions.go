package filter

import (
	"context"
	"encoding/json"

	"github.com/rushteam/feedkit/core"
)

// SeenFilter 剔除用户已经看过的合约。
// 曝光历史从 Store 读取：{KeyPrefix}:seen:{userID}，JSON id 数组。
type SeenFilter struct {
	Store core.Store

	// KeyPrefix 存储 key 前缀，默认 "feed"
	KeyPrefix string
}

func (f *SeenFilter) Name() string { return "filter.seen" }

func (f *SeenFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Store == nil || rctx == nil || rctx.UserID == "" || item == nil {
		return item == nil, nil
	}
	prefix := f.KeyPrefix
	if prefix == "" {
		prefix = "feed"
	}

	data, err := f.Store.Get(ctx, prefix+":seen:"+rctx.UserID)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return false, nil
		}
		return false, err
	}
	var seen []string
	if err := json.Unmarshal(data, &seen); err != nil {
		return false, err
	}
	for _, id := range seen {
		if item.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// BlockedFilter 剔除来自拉黑对象的合约：
// 拉黑的创建者（item.Meta["creator_id"]）、拉黑的群组
// （item.Meta["group_ids"]）、直接拉黑的合约 id。
type BlockedFilter struct {
	// CreatorIDs 拉黑的创建者 id 列表
	CreatorIDs []string

	// GroupIDs 拉黑的群组 id 列表
	GroupIDs []string

	// ContractIDs 拉黑的合约 id 列表
	ContractIDs []string
}

func (f *BlockedFilter) Name() string { return "filter.blocked" }

func (f *BlockedFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	for _, id := range f.ContractIDs {
		if item.ID == id {
			return true, nil
		}
	}
	if creator, ok := item.Meta["creator_id"].(string); ok {
		for _, id := range f.CreatorIDs {
			if creator == id {
				return true, nil
			}
		}
	}
	if groups, ok := item.Meta["group_ids"].([]string); ok {
		for _, g := range groups {
			for _, id := range f.GroupIDs {
				if g == id {
					return true, nil
				}
			}
		}
	}
	return false, nil
}

// IgnoredFilter 剔除请求里显式忽略的合约 id
// （rctx.Params["ignore_contract_ids"]，或构造时注入的 IDs）。
type IgnoredFilter struct {
	IDs []string
}

func (f *IgnoredFilter) Name() string { return "filter.ignored" }

func (f *IgnoredFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	for _, id := range f.IDs {
		if item.ID == id {
			return true, nil
		}
	}
	if rctx == nil || rctx.Params == nil {
		return false, nil
	}
	if ids, ok := rctx.Params["ignore_contract_ids"].([]string); ok {
		for _, id := range ids {
			if item.ID == id {
				return true, nil
			}
		}
	}
	return false, nil
}
