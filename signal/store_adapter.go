package signal

import (
	"context"
	"encoding/json"

	"github.com/rushteam/feedkit/core"
)

// 信号集合的存储 key 后缀。
const (
	kindBets      = "bets"
	kindPurchases = "purchases"
	kindLikes     = "likes"
	kindCardViews = "card_views"
	kindPageViews = "page_views"
	kindSwipes    = "swipes"
	kindGroups    = "groups"
)

// zset 分页读取的单页大小。
const pageSize = 1000

// StoreAdapter 是基于 core.Store 的 SignalStore 实现。
//
// key 约定：
//   - 用户列表：{KeyPrefix}:users（JSON 数组）
//   - 信号集合：{KeyPrefix}:{kind}:{userID}
//     后端实现了 KeyValueStore 时按 zset 分页读取（按时间降序落库的日志），
//     否则读取 JSON 数组。
type StoreAdapter struct {
	store core.Store

	// KeyPrefix 是存储 key 的前缀，默认 "signal"
	KeyPrefix string
}

// NewStoreAdapter 创建一个基于 core.Store 的信号适配器。
func NewStoreAdapter(s core.Store, keyPrefix string) *StoreAdapter {
	if keyPrefix == "" {
		keyPrefix = "signal"
	}
	return &StoreAdapter{store: s, KeyPrefix: keyPrefix}
}

func (a *StoreAdapter) UserIDs(ctx context.Context) ([]string, error) {
	data, err := a.store.Get(ctx, a.KeyPrefix+":users")
	if err != nil {
		if core.IsStoreNotFound(err) {
			return []string{}, nil
		}
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (a *StoreAdapter) UserRecord(ctx context.Context, userID string) (*core.InteractionRecord, error) {
	rec := &core.InteractionRecord{UserID: userID}

	kinds := []struct {
		kind string
		dst  *[]string
	}{
		{kindBets, &rec.BetOnIDs},
		{kindPurchases, &rec.PurchasedIDs},
		{kindLikes, &rec.LikedIDs},
		{kindCardViews, &rec.ViewedCardIDs},
		{kindPageViews, &rec.ViewedPageIDs},
		{kindSwipes, &rec.SwipedIDs},
		{kindGroups, &rec.GroupIDs},
	}
	for _, k := range kinds {
		ids, err := a.readIDs(ctx, a.KeyPrefix+":"+k.kind+":"+userID)
		if err != nil {
			return nil, err
		}
		*k.dst = ids
	}
	return rec, nil
}

// readIDs 读取一个信号集合：优先 zset 分页，退化为 JSON 数组。
func (a *StoreAdapter) readIDs(ctx context.Context, key string) ([]string, error) {
	if kv, ok := a.store.(core.KeyValueStore); ok {
		var all []string
		for offset := int64(0); ; offset += pageSize {
			page, err := kv.ZRange(ctx, key, offset, offset+pageSize-1)
			if err != nil {
				return nil, err
			}
			all = append(all, page...)
			if int64(len(page)) < pageSize {
				break
			}
		}
		if len(all) > 0 {
			return all, nil
		}
		// zset 为空时继续尝试 JSON 数组（兼容两种落库方式）
	}

	data, err := a.store.Get(ctx, key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

var _ core.SignalStore = (*StoreAdapter)(nil)
