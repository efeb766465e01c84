package core

// Cache 是进程内缓存的领域接口，带 TTL 语义。
//
// 背景：早期实现把用户主题转化分等放在包级全局 map 里手动管理过期，
// 难以测试也无法按场景配置。这里改为显式注入的缓存服务：
// 进程启动时构造一次，传给需要它的组件（见 interest 包）。
//
// 约定：
//   - Get 只返回未过期的值；过期条目视为不存在
//   - TTL 在构造实现时配置（如 store.NewTTLCache(ttl)）
type Cache interface {
	// Get 读取缓存值；第二个返回值为 false 表示不存在或已过期
	Get(key string) (any, bool)

	// Set 写入缓存值，按构造时配置的 TTL 计时
	Set(key string, value any)

	// Expired 检查 key 是否存在但已过期（用于“过期后台刷新、先返回旧值”策略）
	Expired(key string) bool

	// Delete 删除缓存值
	Delete(key string)
}
