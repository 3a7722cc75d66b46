package recall

import (
	"context"
	"sort"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/similarity"
	"github.com/rushteam/shoprec/pkg/utils"
)

// UserCF 是基于用户的协同过滤打分器（User-based Collaborative Filtering）。
//
// 核心思想："购买行为相似的顾客，会买相似的商品"
//
// 算法流程：
//  1. 目标用户购买集合 vs 其他每个用户的购买集合，算 Jaccard 相似度
//  2. 取 TopK 个最相似邻居（同分按画像迭代顺序，对固定输入确定）
//  3. 把邻居买过、目标用户没买过的商品按相似度加权累积
//  4. 累积分 ÷ 邻居数，使不同邻居规模下的分数可比
//
// 边界：目标用户购买历史为空 ⇒ 与所有人相似度为 0 ⇒ 空结果（不是错误）。
type UserCF struct {
	Profiles core.ProfileStore

	// Catalog 可选；设置后用于跳过目录中不存在/残缺的候选，
	// 并为下游节点补齐商品 Meta。
	Catalog core.Catalog

	// TopKNeighbors 参与聚合的最相似邻居数，默认 20。
	TopKNeighbors int

	// TopK 是 Recall 形态下返回的结果数，默认 20。
	TopK int

	// Confidence 是该算法的固定置信度，默认 0.75（不做逐项置信度计算）。
	Confidence float64
}

// ReasonSimilarCustomers 是 UserCF 的固定推荐理由。
const ReasonSimilarCustomers = "similar customers also purchased"

func (r *UserCF) Name() string { return "recall.user_cf" }

// Recall 实现 Source 接口，使用 TopK 字段作为结果上限。
func (r *UserCF) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}
	return r.Score(ctx, rctx, topK)
}

// Score 实现 Scorer 接口。
func (r *UserCF) Score(ctx context.Context, rctx *core.RecommendContext, k int) ([]*core.Item, error) {
	if k <= 0 || r.Profiles == nil {
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

	all, err := r.Profiles.AllProfiles(ctx)
	if err != nil {
		return nil, err
	}

	type neighbor struct {
		profile *core.UserProfile
		sim     float64
	}
	neighbors := make([]neighbor, 0, len(all))
	for _, p := range all {
		if p == nil || p.UserID == target.UserID {
			continue
		}
		sim := similarity.Jaccard(purchased, p.PurchasedProducts)
		if sim > 0 {
			neighbors = append(neighbors, neighbor{profile: p, sim: sim})
		}
	}
	if len(neighbors) == 0 {
		return nil, nil
	}

	topN := r.TopKNeighbors
	if topN <= 0 {
		topN = 20
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].sim > neighbors[j].sim
	})
	if len(neighbors) > topN {
		neighbors = neighbors[:topN]
	}

	// 累积邻居购买的未见商品：score[id] = Σ similarity
	scores := make(map[string]float64)
	for _, n := range neighbors {
		for _, id := range dedup(n.profile.PurchasedProducts) {
			if _, owned := purchasedSet[id]; owned {
				continue
			}
			scores[id] += n.sim
		}
	}

	confidence := r.Confidence
	if confidence == 0 {
		confidence = 0.75
	}

	out := make([]*core.Item, 0, len(scores))
	for id, score := range scores {
		it := r.newItem(ctx, id)
		if it == nil {
			continue
		}
		it.Score = score / float64(len(neighbors))
		it.Confidence = confidence
		it.Reason = ReasonSimilarCustomers
		it.PutLabel("algorithm", utils.Label{Value: "user_cf", Source: "recall"})
		out = append(out, it)
	}

	return sortAndTrim(out, k), nil
}

// newItem 构建候选 Item；目录可用时跳过不存在/残缺的商品并补齐 Meta。
func (r *UserCF) newItem(ctx context.Context, id string) *core.Item {
	if r.Catalog == nil {
		return core.NewItem(id)
	}
	p, err := r.Catalog.GetProduct(ctx, id)
	if err != nil || !p.Valid() {
		return nil
	}
	return core.NewProductItem(p)
}
