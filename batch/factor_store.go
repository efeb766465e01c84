package batch

import (
	"context"
	"encoding/json"

	"github.com/rushteam/feedkit/core"
)

// StoreFactorAdapter 是基于 core.Store 的隐向量存储适配器。
//
// key 约定（后端实现 KeyValueStore 时用 hash，单次 HGetAll 取全量）：
//   - 用户隐向量：hash {KeyPrefix}:user，field 为 userID
//   - 列隐向量：  hash {KeyPrefix}:item，field 为列键（含 swiped-/group- 前缀）
//
// 普通 Store 退化为平铺 key：
//   - {KeyPrefix}:user:{userID} / {KeyPrefix}:item:{columnKey}
//   - id 索引：{KeyPrefix}:users / {KeyPrefix}:items（JSON 数组）
//
// 向量序列化为 JSON 数组（k 个值，f0..f4 语义按下标对应）。
// 每轮批任务整体覆盖写入，天然幂等。
type StoreFactorAdapter struct {
	store core.Store

	// KeyPrefix 是存储 key 的前缀，默认 "mf"
	KeyPrefix string
}

// NewStoreFactorAdapter 创建一个基于 core.Store 的隐向量适配器。
func NewStoreFactorAdapter(s core.Store, keyPrefix string) *StoreFactorAdapter {
	if keyPrefix == "" {
		keyPrefix = "mf"
	}
	return &StoreFactorAdapter{store: s, KeyPrefix: keyPrefix}
}

func (a *StoreFactorAdapter) UpsertUserFactors(ctx context.Context, vectors map[string][]float64) error {
	return a.upsert(ctx, "user", "users", vectors)
}

func (a *StoreFactorAdapter) UpsertItemFactors(ctx context.Context, vectors map[string][]float64) error {
	return a.upsert(ctx, "item", "items", vectors)
}

func (a *StoreFactorAdapter) upsert(ctx context.Context, entity, indexKey string, vectors map[string][]float64) error {
	if kv, ok := a.store.(core.KeyValueStore); ok {
		hashKey := a.KeyPrefix + ":" + entity
		for id, vec := range vectors {
			data, err := json.Marshal(vec)
			if err != nil {
				return err
			}
			if err := kv.HSet(ctx, hashKey, id, data); err != nil {
				return err
			}
		}
		return nil
	}

	kvs := make(map[string][]byte, len(vectors))
	ids := make([]string, 0, len(vectors))
	for id, vec := range vectors {
		data, err := json.Marshal(vec)
		if err != nil {
			return err
		}
		kvs[a.KeyPrefix+":"+entity+":"+id] = data
		ids = append(ids, id)
	}
	if err := a.store.BatchSet(ctx, kvs); err != nil {
		return err
	}
	idx, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, a.KeyPrefix+":"+indexKey, idx)
}

func (a *StoreFactorAdapter) GetUserVector(ctx context.Context, userID string) ([]float64, error) {
	return a.getVector(ctx, "user", userID)
}

func (a *StoreFactorAdapter) GetItemVector(ctx context.Context, itemID string) ([]float64, error) {
	return a.getVector(ctx, "item", itemID)
}

func (a *StoreFactorAdapter) getVector(ctx context.Context, entity, id string) ([]float64, error) {
	var data []byte
	var err error
	if kv, ok := a.store.(core.KeyValueStore); ok {
		data, err = kv.HGet(ctx, a.KeyPrefix+":"+entity, id)
	} else {
		data, err = a.store.Get(ctx, a.KeyPrefix+":"+entity+":"+id)
	}
	if err != nil {
		if core.IsStoreNotFound(err) {
			return []float64{}, nil
		}
		return nil, err
	}

	var vec []float64
	if err := json.Unmarshal(data, &vec); err != nil {
		return nil, err
	}
	return vec, nil
}

func (a *StoreFactorAdapter) GetAllItemVectors(ctx context.Context) (map[string][]float64, error) {
	if kv, ok := a.store.(core.KeyValueStore); ok {
		fields, err := kv.HGetAll(ctx, a.KeyPrefix+":item")
		if err != nil {
			return nil, err
		}
		result := make(map[string][]float64, len(fields))
		for id, data := range fields {
			var vec []float64
			if err := json.Unmarshal(data, &vec); err != nil {
				continue
			}
			if len(vec) > 0 {
				result[id] = vec
			}
		}
		return result, nil
	}

	idxData, err := a.store.Get(ctx, a.KeyPrefix+":items")
	if err != nil {
		if core.IsStoreNotFound(err) {
			return make(map[string][]float64), nil
		}
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(idxData, &ids); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, a.KeyPrefix+":item:"+id)
	}
	kvs, err := a.store.BatchGet(ctx, keys)
	if err != nil {
		return nil, err
	}
	result := make(map[string][]float64, len(ids))
	for _, id := range ids {
		data, ok := kvs[a.KeyPrefix+":item:"+id]
		if !ok {
			continue
		}
		var vec []float64
		if err := json.Unmarshal(data, &vec); err != nil {
			continue
		}
		if len(vec) > 0 {
			result[id] = vec
		}
	}
	return result, nil
}

var _ core.FactorStore = (*StoreFactorAdapter)(nil)
