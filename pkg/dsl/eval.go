// Package dsl 提供基于 CEL (Common Expression Language) 的规则求值，
// 用于配置驱动的过滤/运营规则（例如 "item.meta.price < 100.0"）。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/shoprec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Rule 是一条编译后的布尔规则，可对任意 (item, rctx) 重复求值。
//
// 表达式语法（CEL 标准语法）：
//   - label.algorithm == "content"       标签匹配
//   - item.score > 0.7                   分数阈值
//   - item.meta.price < 100.0            商品属性
//   - label.algorithm.contains("cf") && item.score > 0.5
//
// 注意：CEL 访问不存在的 key 会报错，存在性检查用 label.key != null。
type Rule struct {
	expr string
	prg  cel.Program
}

// Compile 编译一条规则表达式。表达式为空时规则恒为 true。
func Compile(expr string) (*Rule, error) {
	if expr == "" {
		return &Rule{}, nil
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}

	return &Rule{expr: expr, prg: prg}, nil
}

// Expr 返回规则的原始表达式。
func (r *Rule) Expr() string { return r.expr }

// Eval 对一个 (item, rctx) 求值。表达式必须返回布尔值。
func (r *Rule) Eval(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	if r.prg == nil {
		return true, nil
	}

	out, _, err := r.prg.Eval(buildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", r.expr, err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression %q must return boolean, got %T", r.expr, out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据。
// label 作为顶层变量暴露（label.algorithm 直接取 Value），方便写规则。
func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]any {
	labels := make(map[string]any)
	labelValues := make(map[string]any)
	if item != nil {
		for k, v := range item.Labels {
			labels[k] = map[string]any{"value": v.Value, "source": v.Source}
			labelValues[k] = v.Value
		}
	}

	itemInput := map[string]any{}
	if item != nil {
		itemInput = map[string]any{
			"id":       item.ID,
			"score":    item.Score,
			"reason":   item.Reason,
			"features": item.Features,
			"meta":     item.Meta,
			"labels":   labels,
		}
	}

	rctxInput := map[string]any{}
	if rctx != nil {
		rctxInput = map[string]any{
			"user_id": rctx.UserID,
			"scene":   rctx.Scene,
			"params":  rctx.Params,
		}
		if sit := rctx.Situation; sit != nil {
			rctxInput["device"] = string(sit.Device)
			rctxInput["season"] = string(sit.Season)
			rctxInput["holiday"] = sit.Holiday
		}
	}

	return map[string]any{
		"item":  itemInput,
		"label": labelValues,
		"rctx":  rctxInput,
	}
}
