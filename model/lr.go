package model

import (
	"encoding/json"
	"math"
	"os"
)

// LRModel 实现了逻辑回归 (Logistic Regression) 模型。
// 作为 RankModel 的另一种实现保留：它与 LinearModel 共享同一特征契约，
// 用于验证学习打分器的模型可替换性。
//
// 预测原理：
//  1. 线性加权求和: z = Bias + sum(Weight_i * Feature_i)
//  2. Sigmoid 变换: P = 1 / (1 + exp(-z))
//
// 输出值 P 天然落在 (0, 1)。
type LRModel struct {
	Bias    float64            // 偏置项
	Weights map[string]float64 // 特征权重
}

func LoadLRModel(path string) (*LRModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw struct {
		Bias    float64            `json:"bias"`
		Weights map[string]float64 `json:"weights"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &LRModel{Bias: raw.Bias, Weights: raw.Weights}, nil
}

func (m *LRModel) Name() string { return "lr" }

func (m *LRModel) Predict(features map[string]float64) (float64, error) {
	score := m.Bias
	for k, v := range features {
		if w, ok := m.Weights[k]; ok {
			score += w * v
		}
	}
	return 1 / (1 + math.Exp(-score)), nil
}
