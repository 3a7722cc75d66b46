package model

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LinearModel 是定权线性模型：分数 = Σ(weight_i × feature_i)，收敛到 [0,1]。
//
// 它是真实训练模型的占位实现。必须保持的契约是特征顺序与权重向量
// 本身（作为可加载的数据，而非硬编码算法）：未来换成训练产出的模型
// 时，只要实现同一特征契约即可无缝替换。
type LinearModel struct {
	// Features 是特征名的固定顺序；Predict 按此顺序取值求点积。
	Features []string

	// Weights 与 Features 一一对应。
	Weights []float64

	// ModelName 用于观测，默认 "linear"。
	ModelName string
}

// 学习打分器的默认特征契约（归一化后的 7 维向量）与权重。
// 权重之和为 1.0：全部特征为 1.0 时裸分恰为 1.0。
var (
	defaultFeatures = []string{
		"avg_order_value",
		"purchase_frequency",
		"email_open_rate",
		"click_rate",
		"popularity",
		"rating",
		"price",
	}
	defaultWeights = []float64{0.15, 0.12, 0.08, 0.08, 0.25, 0.22, 0.10}
)

// NewLinearModel 返回带默认特征契约与权重的线性模型。
func NewLinearModel() *LinearModel {
	return &LinearModel{
		Features:  append([]string(nil), defaultFeatures...),
		Weights:   append([]float64(nil), defaultWeights...),
		ModelName: "linear",
	}
}

// LoadLinearModel 从 JSON 或 YAML 文件加载权重配置。
// 文件格式：{"features": [...], "weights": [...]}
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw struct {
		Name     string    `json:"name" yaml:"name"`
		Features []string  `json:"features" yaml:"features"`
		Weights  []float64 `json:"weights" yaml:"weights"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		if yerr := yaml.Unmarshal(data, &raw); yerr != nil {
			return nil, fmt.Errorf("parse model config: %w", err)
		}
	}

	m := &LinearModel{Features: raw.Features, Weights: raw.Weights, ModelName: raw.Name}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *LinearModel) validate() error {
	if len(m.Features) == 0 {
		return fmt.Errorf("linear model: empty feature list")
	}
	if len(m.Features) != len(m.Weights) {
		return fmt.Errorf("linear model: %d features but %d weights", len(m.Features), len(m.Weights))
	}
	return nil
}

func (m *LinearModel) Name() string {
	if m.ModelName == "" {
		return "linear"
	}
	return m.ModelName
}

// Predict 计算点积并收敛到 [0,1]。缺失的特征按 0 处理。
func (m *LinearModel) Predict(features map[string]float64) (float64, error) {
	if err := m.validate(); err != nil {
		return 0, err
	}

	var score float64
	for i, name := range m.Features {
		score += m.Weights[i] * features[name]
	}

	if score < 0 {
		return 0, nil
	}
	if score > 1 {
		return 1, nil
	}
	return score, nil
}
