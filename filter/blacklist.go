package filter

import (
	"context"
	"encoding/json"

	"github.com/rushteam/shoprec/core"
)

// BlacklistFilter 是黑名单过滤器，过滤掉黑名单中的商品（下架、违规等）。
type BlacklistFilter struct {
	// ItemIDs 是内存中的黑名单商品 ID 列表
	ItemIDs []string

	// Store 用于从存储中读取黑名单（可选）
	Store BlacklistStore

	// Key 是 Store 中的黑名单 key（可选）
	Key string
}

// BlacklistStore 是黑名单存储接口。
type BlacklistStore interface {
	// GetBlacklist 获取黑名单商品 ID 列表
	GetBlacklist(ctx context.Context, key string) ([]string, error)
}

// NewBlacklistFilter 创建一个黑名单过滤器。
func NewBlacklistFilter(itemIDs []string, storeAdapter *StoreAdapter, key string) *BlacklistFilter {
	var store BlacklistStore
	if storeAdapter != nil {
		store = storeAdapter
	}
	return &BlacklistFilter{
		ItemIDs: itemIDs,
		Store:   store,
		Key:     key,
	}
}

func (f *BlacklistFilter) Name() string {
	return "filter.blacklist"
}

func (f *BlacklistFilter) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	for _, id := range f.ItemIDs {
		if item.ID == id {
			return true, nil
		}
	}

	if f.Store != nil && f.Key != "" {
		blacklist, err := f.Store.GetBlacklist(ctx, f.Key)
		if err == nil {
			for _, id := range blacklist {
				if item.ID == id {
					return true, nil
				}
			}
		}
	}

	return false, nil
}

// StoreAdapter 将 core.Store 适配为过滤器所需的存储接口。
// 黑名单按 JSON 字符串数组存储。
type StoreAdapter struct {
	store core.Store
}

// NewStoreAdapter 创建一个 core.Store 适配器。
func NewStoreAdapter(s core.Store) *StoreAdapter {
	return &StoreAdapter{store: s}
}

// GetBlacklist 从 Store 读取黑名单。
func (a *StoreAdapter) GetBlacklist(ctx context.Context, key string) ([]string, error) {
	data, err := a.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}

	return ids, nil
}
