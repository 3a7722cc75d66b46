package core

import "context"

// Store 是存储的领域接口。
//
// 定义在领域层（core），由基础设施层（store 包）实现，避免循环依赖。
// 画像快照、目录快照、黑名单、分析事件都可以落在任意 Store 实现上。
type Store interface {
	// Name 返回存储后端名称（用于观测）
	Name() string

	// Get 读取单个 key 的值
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 写入单个 key-value
	Set(ctx context.Context, key string, value []byte, ttl ...int) error

	// Delete 删除单个 key
	Delete(ctx context.Context, key string) error

	// BatchGet 批量读取（减少网络往返）
	BatchGet(ctx context.Context, keys []string) (map[string][]byte, error)

	// BatchSet 批量写入
	BatchSet(ctx context.Context, kvs map[string][]byte, ttl ...int) error

	// Close 关闭连接/释放资源
	Close() error
}

// KeyValueStore 是 Store 的扩展接口，支持有序集合与哈希表。
// 有序集合用于按时间排序的分析事件流；哈希表用于商品元数据。
// 后端不支持某操作时返回 ErrStoreNotSupported。
type KeyValueStore interface {
	Store

	ZAdd(ctx context.Context, key string, score float64, member string) error
	ZRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	ZScore(ctx context.Context, key string, member string) (float64, error)

	HGet(ctx context.Context, key, field string) ([]byte, error)
	HSet(ctx context.Context, key, field string, value []byte) error
	HGetAll(ctx context.Context, key string) (map[string][]byte, error)
}

// Store 错误定义（使用统一的 DomainError）
var (
	// ErrStoreNotFound 表示 key 不存在
	ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: key not found")

	// ErrStoreNotSupported 表示操作不支持
	ErrStoreNotSupported = NewDomainError(ModuleStore, ErrorCodeNotSupported, "store: operation not supported")
)

// IsStoreNotFound 检查错误是否为 key 不存在。
func IsStoreNotFound(err error) bool {
	domainErr := GetDomainError(err)
	return domainErr != nil && domainErr.Module == ModuleStore && domainErr.Code == ErrorCodeNotFound
}
