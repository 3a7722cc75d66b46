package core

// DomainError 是领域层的统一错误类型。
//
// 引擎的错误策略（见各打分器）：
//   - 输入性缺陷（未知用户、空目录）降级为空结果，不报错
//   - 只有结构性非法输入（价格区间 min > max 等）才快速失败
//   - 存储 miss 用 NOT_FOUND 表达，调用方可用 IsNotFound 判断
type DomainError struct {
	Module  string // 模块名称（如 "store", "profile", "engine"）
	Code    string // 错误代码（如 "NOT_FOUND", "INVALID_INPUT"）
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError 创建新的领域错误。
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{Module: module, Code: code, Message: message}
}

// GetDomainError 获取 DomainError，如果不是则返回 nil。
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// 错误代码常量
const (
	ErrorCodeNotFound     = "NOT_FOUND"      // 资源不存在
	ErrorCodeNotSupported = "NOT_SUPPORTED"  // 操作不支持
	ErrorCodeInvalidInput = "INVALID_INPUT"  // 输入结构非法
	ErrorCodeInternal     = "INTERNAL_ERROR" // 内部错误
)

// 模块名称常量
const (
	ModuleStore   = "store"
	ModuleProfile = "profile"
	ModuleCatalog = "catalog"
	ModuleEngine  = "engine"
)

// IsNotFound 检查错误是否为 NOT_FOUND。
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsInvalidInput 检查错误是否为 INVALID_INPUT。
func IsInvalidInput(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidInput
	}
	return false
}
