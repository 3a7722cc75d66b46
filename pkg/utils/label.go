package utils

// Label 是推荐链路中的一等公民：可解释、可追踪、可透传。
// 引擎用它记录算法来源（algorithm）、降级情况（degraded）、过滤原因等；
// Value 与 Source 的语义由业务自定义。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // recall / engine / rerank / filter ...
}

// MergeLabel 用于合并同名 Label，遵循"保留历史、可追踪"的默认策略。
// - Value: 以 '|' 累积
// - Source: 以 ',' 累积
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "":
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}

// AppendDistinct 向切片追加元素，已存在时原样返回。
// 用于理由去重：集成层合并多个算法的 Reason 时保序去重。
func AppendDistinct(list []string, v string) []string {
	if v == "" {
		return list
	}
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
