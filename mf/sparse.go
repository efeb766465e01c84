package mf

// SparseMatrix 是用户×信号列的稀疏交互矩阵。
//
// 行是用户（按加入顺序分配行号），列是带命名空间的信号键：
//   - 裸合约 id 列：用户是否接触过该合约（0 / 0.25 / 1）
//   - "swiped-" 前缀列：滑动流的独立平行信号通道
//   - "group-" 前缀列：主题群组成员特征
//
// 关键语义：缺失的单元格是“未知”，不是 0。稀疏表示必须区分
// 显式 0（中性/负信号或合成补零）与未观测（训练时直接跳过）。
// 列集合是全部行写过的键的并集，追加式注册；一次分解运行期间
// 每个列键的下标固定不变。
type SparseMatrix struct {
	users    []string
	rowIndex map[string]int
	rows     []map[string]float64

	columns  []string
	colIndex map[string]int
}

func NewSparseMatrix() *SparseMatrix {
	return &SparseMatrix{
		rowIndex: make(map[string]int),
		colIndex: make(map[string]int),
	}
}

// AddRow 为用户分配行号（幂等：已存在则返回原行号）。
func (m *SparseMatrix) AddRow(userID string) int {
	if i, ok := m.rowIndex[userID]; ok {
		return i
	}
	i := len(m.users)
	m.users = append(m.users, userID)
	m.rows = append(m.rows, make(map[string]float64))
	m.rowIndex[userID] = i
	return i
}

// RegisterColumn 注册列键并返回下标（幂等）。
func (m *SparseMatrix) RegisterColumn(key string) int {
	if j, ok := m.colIndex[key]; ok {
		return j
	}
	j := len(m.columns)
	m.columns = append(m.columns, key)
	m.colIndex[key] = j
	return j
}

// HasColumn 检查列键是否已被任何行注册过。
func (m *SparseMatrix) HasColumn(key string) bool {
	_, ok := m.colIndex[key]
	return ok
}

// Set 写入单元格并注册列。
func (m *SparseMatrix) Set(row int, key string, value float64) {
	m.RegisterColumn(key)
	m.rows[row][key] = value
}

// Get 读取单元格；第二个返回值为 false 表示未观测（不是 0）。
func (m *SparseMatrix) Get(row int, key string) (float64, bool) {
	if row < 0 || row >= len(m.rows) {
		return 0, false
	}
	v, ok := m.rows[row][key]
	return v, ok
}

// Has 检查单元格是否被观测过（显式 0 也算观测）。
func (m *SparseMatrix) Has(row int, key string) bool {
	_, ok := m.Get(row, key)
	return ok
}

// RowOf 返回用户的行号。
func (m *SparseMatrix) RowOf(userID string) (int, bool) {
	i, ok := m.rowIndex[userID]
	return i, ok
}

// Users 返回行顺序的用户 id 列表。调用方不应修改。
func (m *SparseMatrix) Users() []string { return m.users }

// Columns 返回注册顺序的列键列表。调用方不应修改。
func (m *SparseMatrix) Columns() []string { return m.columns }

func (m *SparseMatrix) NumRows() int    { return len(m.rows) }
func (m *SparseMatrix) NumColumns() int { return len(m.columns) }

// validate 校验内部形态一致性（行数/行号映射/列注册），
// 分解入口在计算前 fail fast，避免静默产出垃圾隐向量。
func (m *SparseMatrix) validate() bool {
	if len(m.users) != len(m.rows) || len(m.users) != len(m.rowIndex) {
		return false
	}
	if len(m.columns) != len(m.colIndex) {
		return false
	}
	for _, row := range m.rows {
		for key := range row {
			if _, ok := m.colIndex[key]; !ok {
				return false
			}
		}
	}
	return true
}
