package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/pkg/utils"
	"github.com/rushteam/shoprec/recall"
)

// WeightedScorer 把一个打分器和它在集成中的权重绑在一起。
type WeightedScorer struct {
	Scorer recall.Scorer
	Weight float64
}

// Hybrid 是多信号集成器：并发调用各打分器，按权重加权合并候选。
//
// 合并规则：
//   - 每个打分器索要 2k 个候选，给重叠商品留出加权空间
//   - finalScore[id] = Σ weight(algo) × score(algo, id)
//   - 推荐理由保序去重，以 " | " 连接
//   - 集成置信度是固定常量 0.85，不做跨算法一致性聚合
//
// 失败语义：单个打分器报错、panic 或返回空，都不中断整次推荐；
// 只有一个算法命中的商品依然是合法候选，只是累积分较低。
// 降级情况记录在 rctx 的 "degraded" 标签上。
type Hybrid struct {
	Scorers []WeightedScorer

	// K 是 Node 形态下的结果数，默认 20。
	K int

	// Confidence 是集成结果的固定置信度，默认 0.85。
	Confidence float64
}

// ReasonSeparator 连接多个算法的推荐理由。
const ReasonSeparator = " | "

// New 用默认的四个打分器和默认权重构建集成器。
func New(catalog core.Catalog, profiles core.ProfileStore, weights Weights) *Hybrid {
	return &Hybrid{
		Scorers: []WeightedScorer{
			{Scorer: &recall.UserCF{Profiles: profiles, Catalog: catalog}, Weight: weights.UserCF},
			{Scorer: &recall.ItemCF{Catalog: catalog, Profiles: profiles}, Weight: weights.ItemCF},
			{Scorer: &recall.ContentScorer{Catalog: catalog, Profiles: profiles}, Weight: weights.Content},
			{Scorer: &recall.DeepScorer{Catalog: catalog, Profiles: profiles}, Weight: weights.Deep},
		},
	}
}

func (h *Hybrid) Name() string { return "engine.hybrid" }

func (h *Hybrid) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 pipeline.Node：作为召回阶段节点使用，忽略上游 items。
func (h *Hybrid) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	k := h.K
	if k <= 0 {
		k = 20
	}
	return h.Recommend(ctx, rctx, k)
}

// Recommend 返回加权合并后的 Top-K 推荐。
func (h *Hybrid) Recommend(ctx context.Context, rctx *core.RecommendContext, k int) ([]*core.Item, error) {
	if k <= 0 {
		return nil, nil
	}
	if rctx == nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "engine: nil context")
	}
	if rctx.User != nil {
		if err := rctx.User.Validate(); err != nil {
			return nil, err
		}
	}

	// 并发 fan-out：每个打分器独立失败，结果与降级原因都按下标归位，
	// 保证合并顺序确定且不并发写 rctx
	results := make([][]*core.Item, len(h.Scorers))
	degraded := make([]string, len(h.Scorers))
	var g errgroup.Group
	for i, ws := range h.Scorers {
		i, ws := i, ws
		if ws.Scorer == nil || ws.Weight <= 0 {
			continue
		}
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					degraded[i] = fmt.Sprintf("%s: panic: %v", ws.Scorer.Name(), r)
				}
			}()
			items, err := ws.Scorer.Score(ctx, rctx, 2*k)
			if err != nil {
				degraded[i] = ws.Scorer.Name() + ": " + err.Error()
				return nil
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, cause := range degraded {
		if cause != "" {
			rctx.PutLabel("degraded", utils.Label{Value: cause, Source: "engine"})
		}
	}

	confidence := h.Confidence
	if confidence == 0 {
		confidence = 0.85
	}

	// 串行合并：按打分器声明顺序遍历，保证对固定输入输出确定
	merged := make(map[string]*mergedItem)
	order := make([]string, 0)
	for i, ws := range h.Scorers {
		for _, it := range results[i] {
			if it == nil || it.ID == "" {
				continue
			}
			m, ok := merged[it.ID]
			if !ok {
				m = &mergedItem{item: it}
				merged[it.ID] = m
				order = append(order, it.ID)
			}
			m.score += ws.Weight * it.Score
			m.reasons = utils.AppendDistinct(m.reasons, it.Reason)
			if m.item != it {
				mergeLabels(m.item, it)
				mergeMeta(m.item, it)
			}
		}
	}

	out := make([]*core.Item, 0, len(order))
	for _, id := range order {
		m := merged[id]
		m.item.Score = m.score
		m.item.Confidence = confidence
		m.item.Reason = strings.Join(m.reasons, ReasonSeparator)
		out = append(out, m.item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}

type mergedItem struct {
	item    *core.Item
	score   float64
	reasons []string
}

// mergeLabels 把后到 Item 的标签并入首个 Item（同名按 Merge 规则累积）。
func mergeLabels(dst, src *core.Item) {
	for key, lbl := range src.Labels {
		if old, ok := dst.Labels[key]; ok && old == lbl {
			continue
		}
		dst.PutLabel(key, lbl)
	}
}

// mergeMeta 补齐首个 Item 缺失的 Meta 字段（目录信息以先到为准）。
func mergeMeta(dst, src *core.Item) {
	for key, v := range src.Meta {
		if _, ok := dst.Meta[key]; !ok {
			dst.Meta[key] = v
		}
	}
}
