package core

import "github.com/rushteam/feedkit/pkg/utils"

// Item 是信息流链路中的统一承载结构：合约（市场）候选的分数、元信息、标签。
// Score 在候选源内表示该源的相关性分数，聚合之后表示乘法合成分；
// Labels 用于解释与策略驱动（provenance reason、来源权重等）。
type Item struct {
	ID     string
	Score  float64
	Meta   map[string]any
	Labels map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:     id,
		Score:  0,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// SetLabel 覆盖写入 Label，不做 merge。
// provenance reason 等“赋值一次、之后不再重算”的标签使用此方法。
func (it *Item) SetLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	it.Labels[key] = lbl
}
