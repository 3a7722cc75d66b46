package recall

import (
	"context"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/similarity"
	"github.com/rushteam/shoprec/pkg/utils"
)

// ItemCF 是基于物品的协同过滤打分器（Item-based Collaborative Filtering）。
//
// 核心思想："你买过这个，还可能要什么"
//
// 算法流程：
//  1. 对用户买过的每个商品，在目录中找属性相似度最高的 TopK 个商品
//     （排除已购买的）
//  2. 相似度逐候选累积
//  3. 累积分 ÷ 用户购买总数，使不同历史长度下的分数可比
//
// 复杂度：朴素实现对每个已购商品做一次 O(n) 的全目录相似度扫描。
// BucketThreshold > 0 且目录超过该规模时，先按类目/品牌分桶，只在
// 同桶候选内算相似度，桶为空时回退全扫描；top-k 输出在常规目录
// 规模下保持等价。
type ItemCF struct {
	Catalog core.Catalog

	// Profiles 可选；rctx.User 缺失时从画像库读取目标画像。
	Profiles core.ProfileStore

	// TopKSimilar 每个已购商品取的最相似候选数，默认 10。
	TopKSimilar int

	// TopK 是 Recall 形态下返回的结果数，默认 20。
	TopK int

	// BucketThreshold 触发类目/品牌分桶索引的目录规模；0 表示总是全扫描。
	BucketThreshold int

	// Confidence 是该算法的固定置信度，默认 0.8。
	Confidence float64
}

// ReasonPurchaseHistory 是 ItemCF 的固定推荐理由。
const ReasonPurchaseHistory = "based on products you purchased"

func (r *ItemCF) Name() string { return "recall.item_cf" }

// Recall 实现 Source 接口。
func (r *ItemCF) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}
	return r.Score(ctx, rctx, topK)
}

// Score 实现 Scorer 接口。
func (r *ItemCF) Score(ctx context.Context, rctx *core.RecommendContext, k int) ([]*core.Item, error) {
	if k <= 0 || r.Catalog == nil || rctx == nil {
		return nil, nil
	}

	target, err := targetProfile(ctx, rctx, r.Profiles)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, nil
	}

	purchased := dedup(target.PurchasedProducts)
	if len(purchased) == 0 {
		return nil, nil
	}
	purchasedSet := make(map[string]struct{}, len(purchased))
	for _, id := range purchased {
		purchasedSet[id] = struct{}{}
	}

	catalog, err := r.Catalog.AllProducts(ctx)
	if err != nil {
		return nil, err
	}

	var index *bucketIndex
	if r.BucketThreshold > 0 && len(catalog) >= r.BucketThreshold {
		index = buildBucketIndex(catalog)
	}

	topSimilar := r.TopKSimilar
	if topSimilar <= 0 {
		topSimilar = 10
	}

	// score[id] = Σ productSimilarity(已购商品, 候选)
	scores := make(map[string]float64)
	products := make(map[string]*core.Product)

	for _, ownedID := range purchased {
		owned, err := r.Catalog.GetProduct(ctx, ownedID)
		if err != nil || !owned.Valid() {
			// 目录里找不到或数据残缺：跳过该商品，不中断整次调用
			continue
		}

		candidates := catalog
		if index != nil {
			if bucketed := index.candidates(owned); len(bucketed) > 0 {
				candidates = bucketed
			}
		}

		similar := make([]*core.Item, 0, len(candidates))
		for _, p := range candidates {
			if !p.Valid() {
				continue
			}
			if _, ownedAlready := purchasedSet[p.ID]; ownedAlready {
				continue
			}
			sim := similarity.Products(owned, p)
			if sim <= 0 {
				continue
			}
			it := core.NewItem(p.ID)
			it.Score = sim
			similar = append(similar, it)
			products[p.ID] = p
		}

		for _, it := range sortAndTrim(similar, topSimilar) {
			scores[it.ID] += it.Score
		}
	}

	confidence := r.Confidence
	if confidence == 0 {
		confidence = 0.8
	}

	out := make([]*core.Item, 0, len(scores))
	for id, score := range scores {
		it := core.NewProductItem(products[id])
		it.Score = score / float64(len(purchased))
		it.Confidence = confidence
		it.Reason = ReasonPurchaseHistory
		it.PutLabel("algorithm", utils.Label{Value: "item_cf", Source: "recall"})
		out = append(out, it)
	}

	return sortAndTrim(out, k), nil
}

// bucketIndex 是类目/品牌倒排，用于大目录下收窄相似度扫描范围。
type bucketIndex struct {
	byCategory map[string][]*core.Product
	byBrand    map[string][]*core.Product
}

func buildBucketIndex(catalog []*core.Product) *bucketIndex {
	idx := &bucketIndex{
		byCategory: make(map[string][]*core.Product),
		byBrand:    make(map[string][]*core.Product),
	}
	for _, p := range catalog {
		if !p.Valid() {
			continue
		}
		if p.Category != "" {
			idx.byCategory[p.Category] = append(idx.byCategory[p.Category], p)
		}
		if p.Brand != "" {
			idx.byBrand[p.Brand] = append(idx.byBrand[p.Brand], p)
		}
	}
	return idx
}

// candidates 返回与商品同类目或同品牌的候选并集（保持目录顺序的相对稳定）。
func (idx *bucketIndex) candidates(p *core.Product) []*core.Product {
	seen := make(map[string]struct{})
	out := make([]*core.Product, 0)
	for _, c := range idx.byCategory[p.Category] {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	for _, c := range idx.byBrand[p.Brand] {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}
