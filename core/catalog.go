package core

import "context"

// Catalog 是商品目录的读取接口（外部协作者，引擎只做全量扫描与按 ID 查找）。
//
// AllProducts 返回的切片顺序必须对固定数据集稳定：
// 各打分器的同分并列顺序由它决定。
type Catalog interface {
	GetProduct(ctx context.Context, id string) (*Product, error)
	AllProducts(ctx context.Context) ([]*Product, error)
}

// ProfileStore 是用户画像的读取接口。
// AllProfiles 只有 UserCF 需要；其余打分器只用目标画像。
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)
	AllProfiles(ctx context.Context) ([]*UserProfile, error)
}
