package rank

import (
	"context"
	"sort"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/model"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/pkg/utils"
)

// ModelNode 是使用 RankModel 重打分的排序 Node（不限定模型类型，
// 线性模型只是默认实现之一）。
// - 依赖上游（学习打分器）写入的 item.Features
// - 写入 labels：rank_model
// - 更新 item.Score 并按分数降序排序
type ModelNode struct {
	Model model.RankModel
}

func (n *ModelNode) Name() string        { return "rank.model" }
func (n *ModelNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *ModelNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Model == nil || len(items) == 0 {
		return items, nil
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		score, err := n.Model.Predict(it.Features)
		if err != nil {
			return nil, err
		}
		it.Score = score
		it.PutLabel("rank_model", utils.Label{Value: n.Model.Name(), Source: "rank"})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i] == nil {
			return false
		}
		if items[j] == nil {
			return true
		}
		return items[i].Score > items[j].Score
	})
	return items, nil
}
