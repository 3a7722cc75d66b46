package model

// RankModel 是打分模型的最小抽象：输入特征，输出一个可比较的分数。
// 学习打分器通过它与具体模型解耦：把 LinearModel 换成任何
// 实现了同一特征契约的模型，引擎侧无需改动。
type RankModel interface {
	Name() string
	Predict(features map[string]float64) (float64, error)
}
