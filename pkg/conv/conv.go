// Package conv 提供类型转换与 config map 读取工具，用于简化各模块中的重复逻辑。
package conv

import "fmt"

// ToFloat64 将 any 转为 float64。
// 支持 float64、float32、int、int64、int32；bool 视为 1.0/0.0。
func ToFloat64(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case bool:
		if val {
			return 1.0, true
		}
		return 0.0, true
	default:
		return 0, false
	}
}

// ConvertMap 将 map[K]V1 按 convert 转为 map[K]V2，convert 返回 false 的条目被跳过。
func ConvertMap[K comparable, V1, V2 any](m map[K]V1, convert func(V1) (V2, bool)) map[K]V2 {
	if m == nil {
		return nil
	}
	out := make(map[K]V2, len(m))
	for k, v := range m {
		if v2, ok := convert(v); ok {
			out[k] = v2
		}
	}
	return out
}

// MapToFloat64 将 map[string]any 转为 map[string]float64，仅保留可转为 float64 的 value。
func MapToFloat64(m map[string]any) map[string]float64 {
	return ConvertMap(m, func(v any) (float64, bool) { return ToFloat64(v) })
}

// ConvertSlice 将 []T 按 convert 转为 []U，convert 返回 false 的元素被跳过。
func ConvertSlice[T, U any](s []T, convert func(T) (U, bool)) []U {
	if s == nil {
		return nil
	}
	out := make([]U, 0, len(s))
	for _, v := range s {
		if u, ok := convert(v); ok {
			out = append(out, u)
		}
	}
	return out
}

// SliceAnyToString 将 []any（即 []interface{}）转为 []string。
// 元素为 string 直接保留，为数字时格式化为 "%.0f"。
func SliceAnyToString(v any) []string {
	if v == nil {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	return ConvertSlice(raw, func(e any) (string, bool) {
		if s, ok := e.(string); ok {
			return s, true
		}
		if f, ok := ToFloat64(e); ok {
			return fmt.Sprintf("%.0f", f), true
		}
		return "", false
	})
}

// ConfigGet 从 map[string]any（如 YAML/JSON 解析结果）按 key 取 T，取不到或类型不符时返回 defaultVal。
func ConfigGet[T any](m map[string]any, key string, defaultVal T) T {
	if m == nil {
		return defaultVal
	}
	v, ok := m[key]
	if !ok {
		return defaultVal
	}
	t, ok := v.(T)
	if !ok {
		return defaultVal
	}
	return t
}

// ConfigGetFloat 从 config 取 float64。YAML/JSON 常得到 int，此处兼容并统一为 float64。
func ConfigGetFloat(m map[string]any, key string, defaultVal float64) float64 {
	if m == nil {
		return defaultVal
	}
	v, ok := m[key]
	if !ok {
		return defaultVal
	}
	if f, ok := ToFloat64(v); ok {
		return f
	}
	return defaultVal
}

// ConfigGetInt 从 config 取 int，兼容 int64/float64。
func ConfigGetInt(m map[string]any, key string, defaultVal int) int {
	if m == nil {
		return defaultVal
	}
	v, ok := m[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	default:
		return defaultVal
	}
}
