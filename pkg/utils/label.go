package utils

// Label 是信息流链路中的一等公民：可解释、可追踪、可透传。
// 典型用法是候选来源（followed / conversion / importance / freshness）
// 的 provenance 标记；Value 与 Source 的语义由业务自定义，
// Feedkit 只提供标准化的合并规则。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // candidate / filter / aggregate / rule ...
}

// MergeLabel 用于合并同名 Label，遵循“保留历史、可追踪”的默认策略。
// - Value: 以 '|' 累积
// - Source: 以 ',' 累积
//
// 注意：provenance reason 不走 merge（见 feed 包，reason 只在合并时
// 按固定优先级赋值一次）；merge 规则服务于 explain / 观测场景。
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "":
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}
