package feature

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	feastsdk "github.com/feast-dev/feast/sdk/go"
)

// FeastProvider 是基于官方 Feast Go SDK 的在线特征源。
//
// Feast 是开源 Feature Store，在线存储面向实时预测。这里只用到
// GetOnlineFeatures：按用户实体拉取互动统计特征，供学习打分器补齐
// 画像中缺失的字段。
//
// 特征引用形如 "user_engagement:email_open_rate"；返回时会剥掉
// FeatureView 前缀，与 Extractor 的特征名对齐。
type FeastProvider struct {
	client  *feastsdk.GrpcClient
	project string

	// EntityKey 是实体列名，默认 "user_id"。
	EntityKey string

	// FeatureRefs 是要拉取的特征引用，默认为四个互动统计特征。
	FeatureRefs []string

	// Timeout 是单次拉取的超时时间，默认 2s。
	Timeout time.Duration
}

var _ Provider = (*FeastProvider)(nil)

// NewFeastProvider 连接 Feast Feature Server（gRPC，默认端口 6565）。
func NewFeastProvider(host string, port int, project string) (*FeastProvider, error) {
	if port == 0 {
		port = 6565
	}
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, fmt.Errorf("feast grpc client: %w", err)
	}
	return &FeastProvider{
		client:    client,
		project:   project,
		EntityKey: "user_id",
		FeatureRefs: []string{
			"user_engagement:email_open_rate",
			"user_engagement:click_rate",
			"user_engagement:avg_session_time",
			"user_engagement:avg_pages_per_session",
		},
		Timeout: 2 * time.Second,
	}, nil
}

// UserFeatures 实现 Provider：拉取单个用户的互动统计特征。
func (f *FeastProvider) UserFeatures(ctx context.Context, userID string) (map[string]float64, error) {
	if userID == "" {
		return nil, fmt.Errorf("feast: empty user id")
	}

	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	req := &feastsdk.OnlineFeaturesRequest{
		Features: f.FeatureRefs,
		Entities: []feastsdk.Row{
			{f.EntityKey: feastsdk.StrVal(userID)},
		},
		Project: f.project,
	}

	resp, err := f.client.GetOnlineFeatures(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("feast get online features: %w", err)
	}

	rows := resp.Rows()
	if len(rows) == 0 {
		return map[string]float64{}, nil
	}

	features := make(map[string]float64, len(f.FeatureRefs))
	for _, ref := range f.FeatureRefs {
		val, ok := rows[0][ref]
		if !ok || val == nil {
			continue
		}
		if num, ok := toFloat(val); ok {
			features[localName(ref)] = num
		}
	}
	return features, nil
}

// localName 剥掉 "feature_view:" 前缀，对齐 Extractor 的特征名。
func localName(ref string) string {
	if i := strings.LastIndex(ref, ":"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

// toFloat 把 Feast 的特征值转为 float64。
// SDK 返回的是 protobuf Value（oneof）；除常见数值类型外，
// 兜底按文本形式解析（"double_val:0.42" 形态取冒号后部分）。
func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case int:
		return float64(val), true
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	default:
		text := strings.TrimSpace(fmt.Sprintf("%v", v))
		if i := strings.LastIndex(text, ":"); i >= 0 {
			text = strings.TrimSpace(text[i+1:])
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
}
