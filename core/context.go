package core

import (
	"time"

	"github.com/rushteam/shoprec/pkg/utils"
)

// Device 是设备类型。
type Device string

const (
	DeviceMobile  Device = "mobile"
	DeviceDesktop Device = "desktop"
	DeviceTablet  Device = "tablet"
)

// Season 是季节枚举。
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// Situation 承载一次请求的情境信息（时间、设备、季节、节日）。
// 每次调用新建，引擎不存储。
type Situation struct {
	Timestamp time.Time
	Device    Device
	Location  string // 可选
	Weather   string // 可选
	Season    Season
	Weekday   time.Weekday
	Holiday   bool
}

// IsNight 判断是否夜间时段（>= 20 点或 <= 6 点）。
func (s *Situation) IsNight() bool {
	h := s.Timestamp.Hour()
	return h >= 20 || h <= 6
}

// RecommendContext 承载用户/场景/情境信息，贯穿整条推荐链路透传。
type RecommendContext struct {
	UserID string
	Scene  string

	// User 是强类型用户画像。为空时各打分器自行从 ProfileStore 读取。
	User *UserProfile

	// Situation 是可选的情境信息，驱动情境调权；为空时情境节点直接透传。
	Situation *Situation

	// Labels 是用户级标签，可驱动整条链路的行为（新用户、价格敏感等）。
	Labels map[string]utils.Label

	// Params 是请求级上下文参数（query、实验参数等）。
	Params map[string]any
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
