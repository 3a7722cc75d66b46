// Package shoprec 是一个多信号商品推荐引擎（Shop Recommender）。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → Rank → ReRank → PostProcess）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
// - 多信号集成: UserCF / ItemCF / 内容匹配 / 学习打分四路并发召回，权重合并
// - Node 可扩展: 自定义 Node 即可插拔扩展（本地或在线特征源均可）
package shoprec

import "github.com/rushteam/shoprec/pipeline"

// 轻量 facade：便于用户直接 import "shoprec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
