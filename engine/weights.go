package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Weights 是集成层的算法权重配置。
//
// 显式不可变配置对象，构建时传入 Hybrid，运行期只读。
// 权重不要求归一化，但默认值之和为 1，便于解读最终分数。
type Weights struct {
	UserCF  float64 `yaml:"user_cf" json:"user_cf"`
	ItemCF  float64 `yaml:"item_cf" json:"item_cf"`
	Content float64 `yaml:"content" json:"content"`
	Deep    float64 `yaml:"deep" json:"deep"`
}

// DefaultWeights 返回默认权重：学习打分器占比最高，内容打分最低。
func DefaultWeights() Weights {
	return Weights{
		UserCF:  0.25,
		ItemCF:  0.25,
		Content: 0.20,
		Deep:    0.30,
	}
}

// LoadWeights 从 YAML 文件加载权重；缺省字段落回默认值。
func LoadWeights(path string) (Weights, error) {
	w := DefaultWeights()
	data, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("read weights: %w", err)
	}
	if err := yaml.Unmarshal(data, &w); err != nil {
		return w, fmt.Errorf("parse weights: %w", err)
	}
	return w, nil
}
