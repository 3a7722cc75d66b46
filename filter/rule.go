package filter

import (
	"context"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/dsl"
)

// RuleFilter 是规则过滤器：命中 CEL 表达式的商品被过滤掉。
//
// 用于配置驱动的运营规则，例如：
//   - "item.meta.price > 500.0"           过滤高价商品
//   - "label.algorithm == 'content'"      过滤纯内容召回
//   - "rctx.device == 'mobile' && item.meta.price > 200.0"
type RuleFilter struct {
	rule *dsl.Rule
}

// NewRuleFilter 编译表达式并创建规则过滤器。
// 表达式为空时恒不过滤。
func NewRuleFilter(expr string) (*RuleFilter, error) {
	if expr == "" {
		return &RuleFilter{}, nil
	}
	rule, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &RuleFilter{rule: rule}, nil
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.rule == nil || item == nil {
		return false, nil
	}
	return f.rule.Eval(item, rctx)
}
