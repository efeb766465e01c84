package mf

import (
	"context"
	"math/rand"
	"time"

	"github.com/rushteam/feedkit/core"
)

// 分解超参数默认值（批任务调用点把 Iterations 降到 2000，见 batch 包）。
const (
	DefaultLatentFeatures = 5
	DefaultIterations     = 5000
	DefaultLearningRate   = 0.0002
	DefaultRegularization = 0.02
)

// ErrFactorDiverged 表示损失连续上升、训练中止（学习率配置错误等）。
// 批任务收到该错误后不落库，避免持久化垃圾隐向量。
var ErrFactorDiverged = core.NewDomainError(core.ModuleFactor, core.ErrorCodeDiverged, "factor: loss diverged, aborting run")

// ErrMalformedMatrix 表示矩阵内部形态不一致（行列映射错位）。
var ErrMalformedMatrix = core.NewDomainError(core.ModuleFactor, core.ErrorCodeInvalidInput, "factor: malformed matrix shape")

// Options 是矩阵分解的配置。零值字段取默认超参数。
type Options struct {
	// K 隐向量维度
	K int

	// Iterations 全量遍历轮数
	Iterations int

	// LearningRate 学习率
	LearningRate float64

	// Regularization 正则化系数
	Regularization float64

	// TrackLoss 记录每轮总损失（Factors.Loss），用于观测与测试
	TrackLoss bool

	// LossThreshold >0 时启用早停：总损失低于阈值即结束训练
	LossThreshold float64

	// DivergenceLimit >0 时启用发散保护：
	// 损失连续上升 DivergenceLimit 轮则返回 ErrFactorDiverged
	DivergenceLimit int

	// Rand 隐向量初始化的随机源；为 nil 时按时间播种。
	Rand *rand.Rand
}

// Factors 是分解产物：两个只读的稠密隐向量矩阵。
type Factors struct {
	Users   []string // 行顺序的用户 id
	Columns []string // 行顺序的信号列键

	// User 用户隐向量，len(Users) × k
	User [][]float64

	// Item 信号列隐向量，len(Columns) × k
	Item [][]float64

	// Loss 每轮总损失（仅 TrackLoss / 早停 / 发散保护开启时记录）
	Loss []float64
}

// K 返回隐向量维度。
func (f *Factors) K() int {
	if len(f.User) > 0 {
		return len(f.User[0])
	}
	if len(f.Item) > 0 {
		return len(f.Item[0])
	}
	return 0
}

// Factorize 对稀疏交互矩阵做正则化 SGD 矩阵分解（Funk-SVD 风格）。
//
// 训练语义（必须与上游行为对齐，移植时容易搞错）：
//   - 只遍历每行“被观测”的单元格，缺失单元格不产生梯度
//   - 值 <=0 的单元格整体跳过更新。显式 0（负/中性信号与合成补零）
//     存在的意义就是作为“跳过”占位，不是方向相反的负训练样本
//   - 每个单元格的两侧更新都读取更新前的旧值（无行内读后写）
//   - 物品侧维护 k×columns 的转置视图参与训练，结束时转置回来
//
// 退化输入（零行或零列）返回空的 Factors，错误为 nil；
// 调用方拿到空产物后打分自然得到空结果。
//
// ctx 到期是安全停止而非失败：当前轮跑完后立即返回已训练的隐向量
// （SGD 可随时中断，近似收敛场景下按轮中断无脏数据风险）。
func Factorize(ctx context.Context, m *SparseMatrix, opts Options) (*Factors, error) {
	k := opts.K
	if k <= 0 {
		k = DefaultLatentFeatures
	}
	iterations := opts.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	lr := opts.LearningRate
	if lr == 0 {
		lr = DefaultLearningRate
	}
	reg := opts.Regularization
	if reg == 0 {
		reg = DefaultRegularization
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	out := &Factors{
		Users:   append([]string(nil), m.Users()...),
		Columns: append([]string(nil), m.Columns()...),
	}

	rows := m.NumRows()
	cols := m.NumColumns()
	if rows == 0 || cols == 0 {
		out.User = [][]float64{}
		out.Item = [][]float64{}
		return out, nil
	}
	if !m.validate() {
		return nil, ErrMalformedMatrix
	}

	// 均匀 [0,1) 随机初始化：先用户矩阵、后物品转置视图，顺序固定，
	// 保证同种子下输出可复现。
	userF := make([][]float64, rows)
	for i := range userF {
		userF[i] = make([]float64, k)
		for d := range userF[i] {
			userF[i][d] = rng.Float64()
		}
	}
	itemT := make([][]float64, k)
	for d := range itemT {
		itemT[d] = make([]float64, cols)
		for j := range itemT[d] {
			itemT[d][j] = rng.Float64()
		}
	}

	trackLoss := opts.TrackLoss || opts.LossThreshold > 0 || opts.DivergenceLimit > 0
	divergeStreak := 0
	prevLoss := 0.0

	columns := m.Columns()
training:
	for it := 0; it < iterations; it++ {
		select {
		case <-ctx.Done():
			break training
		default:
		}

		for i := 0; i < rows; i++ {
			// 列按注册顺序遍历并跳过未观测项，
			// 等价于“只遍历本行存在的键”，且顺序确定（map 遍历不可复现）。
			for j := 0; j < cols; j++ {
				trueValue, ok := m.Get(i, columns[j])
				if !ok || trueValue <= 0 {
					continue
				}

				predicted := 0.0
				for d := 0; d < k; d++ {
					predicted += userF[i][d] * itemT[d][j]
				}
				err := trueValue - predicted

				for d := 0; d < k; d++ {
					uOld := userF[i][d]
					iOld := itemT[d][j]
					userF[i][d] = uOld + lr*(2*err*iOld-reg*uOld)
					itemT[d][j] = iOld + lr*(2*err*uOld-reg*iOld)
				}
			}
		}

		if !trackLoss {
			continue
		}
		loss := totalLoss(m, columns, userF, itemT, k, reg)
		out.Loss = append(out.Loss, loss)

		if opts.LossThreshold > 0 && loss < opts.LossThreshold {
			break
		}
		if opts.DivergenceLimit > 0 {
			if it > 0 && loss > prevLoss {
				divergeStreak++
				if divergeStreak >= opts.DivergenceLimit {
					return nil, ErrFactorDiverged
				}
			} else {
				divergeStreak = 0
			}
		}
		prevLoss = loss
	}

	out.User = userF
	out.Item = transpose(itemT, cols, k)
	return out, nil
}

// totalLoss 计算全部正值单元格的平方误差与正则惩罚之和。
func totalLoss(m *SparseMatrix, columns []string, userF, itemT [][]float64, k int, reg float64) float64 {
	loss := 0.0
	for i := 0; i < m.NumRows(); i++ {
		for j := range columns {
			trueValue, ok := m.Get(i, columns[j])
			if !ok || trueValue <= 0 {
				continue
			}
			predicted := 0.0
			for d := 0; d < k; d++ {
				predicted += userF[i][d] * itemT[d][j]
			}
			e := trueValue - predicted
			loss += e * e
			for d := 0; d < k; d++ {
				loss += reg / 2 * (userF[i][d]*userF[i][d] + itemT[d][j]*itemT[d][j])
			}
		}
	}
	return loss
}

// transpose 把 k×cols 的训练视图转回 cols×k。
func transpose(itemT [][]float64, cols, k int) [][]float64 {
	item := make([][]float64, cols)
	for j := 0; j < cols; j++ {
		item[j] = make([]float64, k)
		for d := 0; d < k; d++ {
			item[j][d] = itemT[d][j]
		}
	}
	return item
}
