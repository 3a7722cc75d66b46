package analytics

import (
	"context"
	"sort"
	"strings"
)

// AlgorithmStats 是单个算法的聚合指标。
type AlgorithmStats struct {
	Algorithm   string  `json:"algorithm"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Conversions int     `json:"conversions"`
	CTR         float64 `json:"ctr"` // clicks / impressions
	CVR         float64 `json:"cvr"` // conversions / clicks
}

// Aggregate 按算法聚合事件。
//
// 合并标签（"user_cf|content"）按 '|' 拆开逐算法归因：
// 一次点击同时计入每个贡献过该商品的算法。
// 无曝光的 CTR、无点击的 CVR 定义为 0。
func Aggregate(events []Event) []*AlgorithmStats {
	byAlgo := make(map[string]*AlgorithmStats)
	for _, e := range events {
		for _, algo := range splitAlgorithms(e.Algorithm) {
			stats, ok := byAlgo[algo]
			if !ok {
				stats = &AlgorithmStats{Algorithm: algo}
				byAlgo[algo] = stats
			}
			switch e.Type {
			case EventImpression:
				stats.Impressions++
			case EventClick:
				stats.Clicks++
			case EventConversion:
				stats.Conversions++
			}
		}
	}

	out := make([]*AlgorithmStats, 0, len(byAlgo))
	for _, stats := range byAlgo {
		if stats.Impressions > 0 {
			stats.CTR = float64(stats.Clicks) / float64(stats.Impressions)
		}
		if stats.Clicks > 0 {
			stats.CVR = float64(stats.Conversions) / float64(stats.Clicks)
		}
		out = append(out, stats)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Algorithm < out[j].Algorithm
	})
	return out
}

func splitAlgorithms(label string) []string {
	if label == "" {
		return []string{"unknown"}
	}
	parts := strings.Split(label, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"unknown"}
	}
	return out
}

// Report 从事件存储读取并聚合，是离线报表的入口。
func Report(ctx context.Context, collector *StoreCollector, limit int64) ([]*AlgorithmStats, error) {
	events, err := collector.Events(ctx, limit)
	if err != nil {
		return nil, err
	}
	return Aggregate(events), nil
}
