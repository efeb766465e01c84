package feed

import (
	"sort"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pkg/utils"
)

// RankedItem 是聚合输出：候选 + 乘法合成分 + provenance 标记。
// Reason 在合并时赋值一次，之后不再重算。
type RankedItem struct {
	Item          *core.Item
	CombinedScore float64
	Reason        Reason
}

// Aggregator 把多个独立排序的候选列表合并为一个去重的最终排序列表。
//
// 合并规则（与线上口径对齐，改动会破坏分数一致性）：
//   - 按合约 id 去重，保留首次出现的条目
//   - 合成分 = 该合约在所有出现过的列表里的分数（乘以列表权重）的连乘，
//     乘法合成而非加法
//   - 全局按合成分降序
//   - provenance 按固定优先级取最高：followed > conversion > importance > freshness
//
// 纯同步合并，无状态无重试；上游取数失败应在调用方（Fanout）处传播，
// 本组件只接收已就绪的列表。排除项（已看过/拉黑/忽略）由上游过滤，
// 见 filter 包。
type Aggregator struct{}

// Merge 合并候选列表。入参列表顺序只影响去重时保留哪个条目实例，
// 不影响合成分与 provenance。
func (a *Aggregator) Merge(lists []CandidateList) []*RankedItem {
	type merged struct {
		item     *core.Item
		combined float64
		prec     int
	}

	index := make(map[string]*merged)
	var order []*merged

	for _, list := range lists {
		weight := list.Weight
		if weight <= 0 {
			weight = 1
		}
		p := precedence(list.Reason)

		for _, it := range list.Items {
			if it == nil {
				continue
			}
			m, ok := index[it.ID]
			if !ok {
				m = &merged{item: it, combined: 1, prec: precedence(ReasonNone)}
				index[it.ID] = m
				order = append(order, m)
			}
			m.combined *= it.Score * weight
			if p < m.prec {
				m.prec = p
			}
		}
	}

	out := make([]*RankedItem, 0, len(order))
	for _, m := range order {
		reason := reasonByPrecedence(m.prec)
		m.item.SetLabel("reason", utils.Label{Value: string(reason), Source: "aggregate"})
		out = append(out, &RankedItem{
			Item:          m.item,
			CombinedScore: m.combined,
			Reason:        reason,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CombinedScore > out[j].CombinedScore
	})
	return out
}

func reasonByPrecedence(p int) Reason {
	switch p {
	case 0:
		return ReasonFollowed
	case 1:
		return ReasonConversion
	case 2:
		return ReasonImportance
	case 3:
		return ReasonFreshness
	default:
		return ReasonNone
	}
}

// Items 把聚合结果转回 []*core.Item（Score 置为合成分），
// 便于接入 pipeline.Node 链。
func Items(ranked []*RankedItem) []*core.Item {
	out := make([]*core.Item, 0, len(ranked))
	for _, r := range ranked {
		r.Item.Score = r.CombinedScore
		out = append(out, r.Item)
	}
	return out
}
