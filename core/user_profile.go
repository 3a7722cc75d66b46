package core

// UserProfile 是用户画像的核心抽象。
//
// 一句话定义：用户画像 = 推荐引擎的"行为快照 + 偏好信号 + 互动统计"
//
// 它由调用方维护，按引用传入引擎，引擎在一次调用内只读：
//   - 行为维度驱动 UserCF / ItemCF
//   - 偏好维度驱动内容打分
//   - 互动维度是学习打分器的特征来源
//
// 设计要点：
//  维度          作用
//  静态属性      冷启动 / 情境调权
//  行为集合      协同过滤核心
//  偏好信号      内容匹配
//  互动统计      学习打分器特征
type UserProfile struct {
	UserID string

	// 静态属性（可选，仅内容/情境打分器使用，从不是必填项）
	Age      int
	Gender   string
	Location string

	// 行为（集合语义：调用方负责去重，引擎按集合处理）
	ViewedProducts       []string
	PurchasedProducts    []string
	SearchHistory        []string
	InteractedCategories []string
	AvgOrderValue        float64 // 非负
	PurchaseFrequency    float64 // 单位时间购买次数，非负

	// 偏好
	PreferredBrands []string
	PriceRange      PriceRange
	PreferredTags   []string // 颜色/材质等自由标签

	// 互动统计（学习打分器特征，比率字段读取时收敛到 [0,1]）
	EmailOpenRate      float64
	ClickRate          float64
	AvgSessionTime     float64
	AvgPagesPerSession float64
}

// PriceRange 是用户声明的价格区间，Min <= Max，均非负。
// Max 为 0 视为未声明。
type PriceRange struct {
	Min float64
	Max float64
}

// Contains 判断价格是否落在区间内；未声明区间时恒为 false。
func (r PriceRange) Contains(price float64) bool {
	if r.Max <= 0 {
		return false
	}
	return price >= r.Min && price <= r.Max
}

func NewUserProfile(userID string) *UserProfile {
	return &UserProfile{UserID: userID}
}

// Validate 检查画像的结构合法性。引擎只对结构性错误快速失败
// （价格区间 Min > Max、负值统计），其余缺失数据一律降级处理。
func (p *UserProfile) Validate() error {
	if p == nil {
		return nil
	}
	if p.PriceRange.Min < 0 || p.PriceRange.Max < 0 {
		return NewDomainError(ModuleProfile, ErrorCodeInvalidInput, "profile: negative price range")
	}
	if p.PriceRange.Max > 0 && p.PriceRange.Min > p.PriceRange.Max {
		return NewDomainError(ModuleProfile, ErrorCodeInvalidInput, "profile: price range min > max")
	}
	if p.AvgOrderValue < 0 || p.PurchaseFrequency < 0 {
		return NewDomainError(ModuleProfile, ErrorCodeInvalidInput, "profile: negative behavior stats")
	}
	return nil
}

// HasPurchased 判断用户是否购买过某商品。
func (p *UserProfile) HasPurchased(productID string) bool {
	return contains(p.PurchasedProducts, productID)
}

// HasCategory 判断某类目是否在用户互动类目集合中。
func (p *UserProfile) HasCategory(category string) bool {
	return contains(p.InteractedCategories, category)
}

// PrefersBrand 判断某品牌是否在用户偏好品牌集合中。
func (p *UserProfile) PrefersBrand(brand string) bool {
	return contains(p.PreferredBrands, brand)
}

// EmailOpenRateClamped 返回收敛到 [0,1] 的邮件打开率。
func (p *UserProfile) EmailOpenRateClamped() float64 {
	return clamp(p.EmailOpenRate, 0, 1)
}

// ClickRateClamped 返回收敛到 [0,1] 的点击率。
func (p *UserProfile) ClickRateClamped() float64 {
	return clamp(p.ClickRate, 0, 1)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
