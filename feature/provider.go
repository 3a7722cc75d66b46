package feature

import "context"

// Provider 是外部特征源的抽象：按用户 ID 拉取一组数值特征。
//
// 典型用途：画像快照缺少互动统计（邮件打开率、点击率）时，
// 从在线特征库（如 Feast）补齐，再交给 Extractor 做 overrides。
// 引擎不强依赖 Provider；为 nil 时打分器直接使用画像字段。
type Provider interface {
	UserFeatures(ctx context.Context, userID string) (map[string]float64, error)
}
