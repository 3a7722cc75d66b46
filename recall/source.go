package recall

import (
	"context"
	"sort"

	"github.com/rushteam/shoprec/core"
)

// Source 表示一个可复用的召回源（UserCF/ItemCF/内容/学习打分/...）。
// 你可以把它理解为"可并发 fan-out 的策略单元"。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// Scorer 是带结果数上限的打分器契约，集成层（engine.Hybrid）用它
// 向每个算法索要 2k 个候选。k <= 0 时返回空列表而不是错误。
type Scorer interface {
	Name() string
	Score(ctx context.Context, rctx *core.RecommendContext, k int) ([]*core.Item, error)
}

// sortAndTrim 按分数降序排序并截断到 k。
// 同分并列以商品 ID 字典序升序为次序键，保证跨平台确定性。
func sortAndTrim(items []*core.Item, k int) []*core.Item {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].ID < items[j].ID
	})
	if k >= 0 && len(items) > k {
		items = items[:k]
	}
	return items
}

// targetProfile 解析目标用户画像：优先 rctx.User，否则从 ProfileStore 读取。
// 找不到画像属于输入性缺陷，返回 (nil, nil) 让打分器降级为空结果。
func targetProfile(ctx context.Context, rctx *core.RecommendContext, profiles core.ProfileStore) (*core.UserProfile, error) {
	if rctx == nil {
		return nil, nil
	}
	if rctx.User != nil {
		return rctx.User, nil
	}
	if profiles == nil || rctx.UserID == "" {
		return nil, nil
	}
	p, err := profiles.GetProfile(ctx, rctx.UserID)
	if err != nil {
		if core.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// dedup 返回去重后的集合（保序）。画像中的行为字段按集合语义处理。
func dedup(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
