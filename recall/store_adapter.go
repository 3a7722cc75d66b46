package recall

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/rushteam/shoprec/core"
)

// MemoryCatalog 是进程内商品目录，AllProducts 按插入顺序返回。
// 适合单测和小目录场景。
type MemoryCatalog struct {
	mu       sync.RWMutex
	order    []string
	products map[string]*core.Product
}

var _ core.Catalog = (*MemoryCatalog)(nil)

func NewMemoryCatalog(products ...*core.Product) *MemoryCatalog {
	c := &MemoryCatalog{products: make(map[string]*core.Product)}
	for _, p := range products {
		c.Put(p)
	}
	return c
}

func (c *MemoryCatalog) Put(p *core.Product) {
	if p == nil || p.ID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.products[p.ID]; !ok {
		c.order = append(c.order, p.ID)
	}
	c.products[p.ID] = p
}

func (c *MemoryCatalog) GetProduct(_ context.Context, id string) (*core.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[id]
	if !ok {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeNotFound,
			fmt.Sprintf("catalog: product %q not found", id))
	}
	return p, nil
}

func (c *MemoryCatalog) AllProducts(_ context.Context) ([]*core.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*core.Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.products[id])
	}
	return out, nil
}

// MemoryProfiles 是进程内画像库，AllProfiles 按插入顺序返回。
type MemoryProfiles struct {
	mu       sync.RWMutex
	order    []string
	profiles map[string]*core.UserProfile
}

var _ core.ProfileStore = (*MemoryProfiles)(nil)

func NewMemoryProfiles(profiles ...*core.UserProfile) *MemoryProfiles {
	s := &MemoryProfiles{profiles: make(map[string]*core.UserProfile)}
	for _, p := range profiles {
		s.Put(p)
	}
	return s
}

func (s *MemoryProfiles) Put(p *core.UserProfile) {
	if p == nil || p.UserID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[p.UserID]; !ok {
		s.order = append(s.order, p.UserID)
	}
	s.profiles[p.UserID] = p
}

func (s *MemoryProfiles) GetProfile(_ context.Context, userID string) (*core.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, core.NewDomainError(core.ModuleProfile, core.ErrorCodeNotFound,
			fmt.Sprintf("profile: user %q not found", userID))
	}
	return p, nil
}

func (s *MemoryProfiles) AllProfiles(_ context.Context) ([]*core.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*core.UserProfile, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.profiles[id])
	}
	return out, nil
}

// StoreCatalog 把 core.Store 适配成 Catalog。
//
// 存储布局：
//
//	catalog:product:{id}  JSON(core.Product)
//	catalog:index         JSON([]string)，按 ID 字典序维护
//
// 索引保证 AllProducts 的顺序对固定数据集稳定。
type StoreCatalog struct {
	Store core.Store
}

var _ core.Catalog = (*StoreCatalog)(nil)

const (
	storeCatalogKeyPrefix = "catalog:product:"
	storeCatalogIndexKey  = "catalog:index"
)

func NewStoreCatalog(store core.Store) *StoreCatalog {
	return &StoreCatalog{Store: store}
}

// SaveProduct 写入商品并维护索引。
func (c *StoreCatalog) SaveProduct(ctx context.Context, p *core.Product) error {
	if p == nil || p.ID == "" {
		return core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput, "catalog: empty product id")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("catalog: marshal product: %w", err)
	}
	if err := c.Store.Set(ctx, storeCatalogKeyPrefix+p.ID, data); err != nil {
		return err
	}
	ids, err := c.index(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == p.ID {
			return nil
		}
	}
	ids = append(ids, p.ID)
	sort.Strings(ids)
	return c.saveIndex(ctx, ids)
}

func (c *StoreCatalog) GetProduct(ctx context.Context, id string) (*core.Product, error) {
	data, err := c.Store.Get(ctx, storeCatalogKeyPrefix+id)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeNotFound,
				fmt.Sprintf("catalog: product %q not found", id))
		}
		return nil, err
	}
	var p core.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("catalog: unmarshal product %q: %w", id, err)
	}
	return &p, nil
}

func (c *StoreCatalog) AllProducts(ctx context.Context) ([]*core.Product, error) {
	ids, err := c.index(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, storeCatalogKeyPrefix+id)
	}
	kvs, err := c.Store.BatchGet(ctx, keys)
	if err != nil {
		return nil, err
	}
	out := make([]*core.Product, 0, len(ids))
	for _, id := range ids {
		data, ok := kvs[storeCatalogKeyPrefix+id]
		if !ok {
			continue
		}
		var p core.Product
		if err := json.Unmarshal(data, &p); err != nil {
			continue
		}
		out = append(out, &p)
	}
	return out, nil
}

func (c *StoreCatalog) index(ctx context.Context) ([]string, error) {
	data, err := c.Store.Get(ctx, storeCatalogIndexKey)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("catalog: unmarshal index: %w", err)
	}
	return ids, nil
}

func (c *StoreCatalog) saveIndex(ctx context.Context, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("catalog: marshal index: %w", err)
	}
	return c.Store.Set(ctx, storeCatalogIndexKey, data)
}

// StoreProfiles 把 core.Store 适配成 ProfileStore。
//
// 存储布局：
//
//	profile:user:{id}  JSON(core.UserProfile)
//	profile:index      JSON([]string)，按 ID 字典序维护
type StoreProfiles struct {
	Store core.Store
}

var _ core.ProfileStore = (*StoreProfiles)(nil)

const (
	storeProfileKeyPrefix = "profile:user:"
	storeProfileIndexKey  = "profile:index"
)

func NewStoreProfiles(store core.Store) *StoreProfiles {
	return &StoreProfiles{Store: store}
}

// SaveProfile 写入画像并维护索引。
func (s *StoreProfiles) SaveProfile(ctx context.Context, p *core.UserProfile) error {
	if p == nil || p.UserID == "" {
		return core.NewDomainError(core.ModuleProfile, core.ErrorCodeInvalidInput, "profile: empty user id")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("profile: marshal: %w", err)
	}
	if err := s.Store.Set(ctx, storeProfileKeyPrefix+p.UserID, data); err != nil {
		return err
	}
	ids, err := s.index(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == p.UserID {
			return nil
		}
	}
	ids = append(ids, p.UserID)
	sort.Strings(ids)
	out, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("profile: marshal index: %w", err)
	}
	return s.Store.Set(ctx, storeProfileIndexKey, out)
}

func (s *StoreProfiles) GetProfile(ctx context.Context, userID string) (*core.UserProfile, error) {
	data, err := s.Store.Get(ctx, storeProfileKeyPrefix+userID)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, core.NewDomainError(core.ModuleProfile, core.ErrorCodeNotFound,
				fmt.Sprintf("profile: user %q not found", userID))
		}
		return nil, err
	}
	var p core.UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("profile: unmarshal %q: %w", userID, err)
	}
	return &p, nil
}

func (s *StoreProfiles) AllProfiles(ctx context.Context) ([]*core.UserProfile, error) {
	ids, err := s.index(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*core.UserProfile, 0, len(ids))
	for _, id := range ids {
		p, err := s.GetProfile(ctx, id)
		if err != nil {
			if core.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *StoreProfiles) index(ctx context.Context) ([]string, error) {
	data, err := s.Store.Get(ctx, storeProfileIndexKey)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("profile: unmarshal index: %w", err)
	}
	return ids, nil
}
