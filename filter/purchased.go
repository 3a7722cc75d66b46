package filter

import (
	"context"

	"github.com/rushteam/shoprec/core"
)

// PurchasedFilter 过滤掉用户已购买的商品。
//
// 协同过滤打分器自身已排除已购商品，这个过滤器兜住内容打分和
// 学习打分两条路径（它们对全目录打分，不看购买历史）。
type PurchasedFilter struct {
	// Profiles 可选；rctx.User 缺失时从画像库读取购买历史。
	Profiles core.ProfileStore
}

func (f *PurchasedFilter) Name() string {
	return "filter.purchased"
}

func (f *PurchasedFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if rctx == nil {
		return false, nil
	}

	user := rctx.User
	if user == nil && f.Profiles != nil && rctx.UserID != "" {
		p, err := f.Profiles.GetProfile(ctx, rctx.UserID)
		if err != nil {
			// 画像缺失时不过滤，宁可多推不可误杀
			return false, nil
		}
		user = p
	}
	if user == nil {
		return false, nil
	}

	return user.HasPurchased(item.ID), nil
}
