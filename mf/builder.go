package mf

import (
	"math/rand"
	"strings"
	"time"

	"github.com/rushteam/feedkit/core"
)

// 列命名空间前缀。
const (
	// SwipedPrefix 标记滑动流信号通道的列。
	// 该通道是合约亲和度的规范输出通道：在线打分只读这些列对应的隐向量。
	SwipedPrefix = "swiped-"

	// GroupPrefix 标记主题群组特征列，
	// 让分解在关注同一主题的用户之间共享信息。
	GroupPrefix = "group-"
)

// DefaultSyntheticZeros 是每行/每列注入的合成零单元格数量。
// 观测信号几乎全为正时分解会退化成处处预测 1，补零用来压住这种退化。
const DefaultSyntheticZeros = 10

// Builder 把每个用户的原始交互记录转换为稀疏的加权信号矩阵
// （含合成负采样）。无状态，可复用；每次 Build 产出全新矩阵。
type Builder struct {
	// SyntheticZeros 每行/每列的合成零数量；<=0 时取 DefaultSyntheticZeros。
	SyntheticZeros int

	// Rand 合成零的随机源；为 nil 时按时间播种。
	// 测试通过注入固定种子获得确定性输出。
	Rand *rand.Rand
}

// Build 构建交互矩阵。
//
// 信号权重规则（按处理顺序）：
//  1. 卡片流曝光（ViewedCardIDs）→ 裸 id 列 = 0
//  2. 详情页浏览（ViewedPageIDs）→ 裸 id 列 = 0.25
//  3. 点赞/下注/购买 → 仅当裸 id 列已被浏览信号注册过时 = 1
//  4. 滑动流曝光（SwipedIDs）→ "swiped-" 列 = 0
//  5. 点赞/下注/购买 → "swiped-" 列 = 1（无条件，独立于规则 3 的门控）
//  6. 群组成员 → "group-" 列 = 1
//
// 规则 3 的“浏览门控”几乎可以肯定是上游实现的迭代顺序副作用而非
// 有意设计：没有浏览记录的正信号会被直接丢弃。这里为行为对齐而保留；
// 若要修订需要产品侧确认。注意门控检查的是全局列集合（所有行的并集），
// 所以其他用户先注册过的列也会放行。
//
// 校验失败的记录（缺失 userId）被跳过，不中止整批。
func (b *Builder) Build(records []*core.InteractionRecord) *SparseMatrix {
	m := NewSparseMatrix()

	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			continue
		}
		row := m.AddRow(rec.UserID)

		for _, id := range rec.ViewedCardIDs {
			m.Set(row, id, 0)
		}
		for _, id := range rec.ViewedPageIDs {
			m.Set(row, id, 0.25)
		}

		likedOrTransacted := uniqueUnion(rec.LikedIDs, rec.BetOnIDs, rec.PurchasedIDs)
		for _, id := range likedOrTransacted {
			// 浏览门控，见函数注释。
			if m.HasColumn(id) {
				m.Set(row, id, 1)
			}
		}

		for _, id := range rec.SwipedIDs {
			m.Set(row, SwipedPrefix+id, 0)
		}
		for _, id := range likedOrTransacted {
			m.Set(row, SwipedPrefix+id, 1)
		}

		for _, id := range rec.GroupIDs {
			m.Set(row, GroupPrefix+id, 1)
		}
	}

	b.padZeros(m)
	return m
}

// padZeros 注入合成零：每行在随机的合约/群组列上补 n 个，
// 每个合约/群组列在随机行上补 n 个。滑动通道列不参与补零，
// 已观测的单元格（包括显式 0）不覆盖。
func (b *Builder) padZeros(m *SparseMatrix) {
	n := b.SyntheticZeros
	if n <= 0 {
		n = DefaultSyntheticZeros
	}
	rng := b.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// 合约列与群组列（排除滑动通道）
	padCols := make([]string, 0, m.NumColumns())
	for _, c := range m.Columns() {
		if strings.HasPrefix(c, SwipedPrefix) {
			continue
		}
		padCols = append(padCols, c)
	}
	rows := m.NumRows()
	if rows == 0 || len(padCols) == 0 {
		return
	}

	for row := 0; row < rows; row++ {
		for i := 0; i < n; i++ {
			c := padCols[rng.Intn(len(padCols))]
			if !m.Has(row, c) {
				m.Set(row, c, 0)
			}
		}
	}
	for _, c := range padCols {
		for i := 0; i < n; i++ {
			row := rng.Intn(rows)
			if !m.Has(row, c) {
				m.Set(row, c, 0)
			}
		}
	}
}

// uniqueUnion 按出现顺序去重合并多个 id 列表。
func uniqueUnion(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
