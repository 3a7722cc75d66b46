package analytics

import "time"

// EventType 是推荐事件类型。
type EventType string

const (
	EventImpression EventType = "impression" // 推荐被展示
	EventClick      EventType = "click"      // 推荐被点击
	EventConversion EventType = "conversion" // 推荐转化为购买
)

// Event 是一条推荐事件，由调用方在曝光/点击/转化时上报。
//
// Algorithm 取自推荐 Item 的 "algorithm" 标签。集成结果的标签是
// 多算法以 '|' 连接的合并值，聚合时会拆开逐算法归因。
type Event struct {
	Type      EventType `json:"type"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Algorithm string    `json:"algorithm"`
	Timestamp time.Time `json:"timestamp"`
}
