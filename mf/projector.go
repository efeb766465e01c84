package mf

import "strings"

// Projector 基于训练好的隐向量计算用户×合约亲和分。
//
// 只投影 "swiped-" 通道的列：这是合约亲和度的规范输出通道，
// 裸 id 列与 "group-" 列只作为分解输入存在，不参与在线打分。
//
// 构造一次后只读，无锁并发安全；UserScores 单次调用 O(合约数 × k)，
// 可以按请求高频调用。
type Projector struct {
	k         int
	userIndex map[string]int
	userF     [][]float64

	itemIDs []string    // swiped- 列去前缀后的合约 id
	itemF   [][]float64 // 与 itemIDs 对齐的隐向量行
}

// NewProjector 从分解产物构建投影器。
func NewProjector(f *Factors) *Projector {
	p := &Projector{
		k:         f.K(),
		userIndex: make(map[string]int, len(f.Users)),
		userF:     f.User,
	}
	for i, userID := range f.Users {
		p.userIndex[userID] = i
	}
	for j, col := range f.Columns {
		if !strings.HasPrefix(col, SwipedPrefix) {
			continue
		}
		p.itemIDs = append(p.itemIDs, strings.TrimPrefix(col, SwipedPrefix))
		p.itemF = append(p.itemF, f.Item[j])
	}
	return p
}

// UserScores 返回用户对全部合约的亲和分（点积）。
// 未知用户返回空 map 而非错误：没有个性化数据时由调用方回退到
// 非个性化候选源。
func (p *Projector) UserScores(userID string) map[string]float64 {
	scores := make(map[string]float64)
	row, ok := p.userIndex[userID]
	if !ok {
		return scores
	}
	uv := p.userF[row]
	for idx, itemID := range p.itemIDs {
		iv := p.itemF[idx]
		s := 0.0
		for d := 0; d < p.k; d++ {
			s += uv[d] * iv[d]
		}
		scores[itemID] = s
	}
	return scores
}

// ItemIDs 返回可打分的合约 id 列表（滑动通道列集合）。
func (p *Projector) ItemIDs() []string { return p.itemIDs }
