package core

import "github.com/rushteam/feedkit/pkg/utils"

// RecommendContext 承载用户/场景/请求信息，贯穿整个信息流链路透传。
type RecommendContext struct {
	UserID string
	Scene  string // feed / swipe / related ...

	// Labels 是用户级标签，可驱动链路行为（新用户、无个性化数据等）。
	Labels map[string]utils.Label

	// Params 请求级上下文参数：limit、offset、ignore_contract_ids 等。
	Params map[string]any
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
