package achievement

import "fmt"

// ErrorCode 錯誤代碼類型
type ErrorCode string

const (
	ErrCodeUnknownBadge    ErrorCode = "BADGE_UNKNOWN"
	ErrCodeDuplicateBadge  ErrorCode = "BADGE_DUPLICATE_DEFINITION"
	ErrCodeInvalidBadge    ErrorCode = "BADGE_DEFINITION_INVALID"
	ErrCodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	ErrCodeRepositoryError ErrorCode = "REPOSITORY_ERROR"
)

// DomainError 成就領域錯誤
type DomainError struct {
	Code    ErrorCode
	Message string
	Context map[string]interface{}
}

// Error 實現 error 接口
func (e *DomainError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s (context: %+v)", e.Code, e.Message, e.Context)
}

// WithContext 添加上下文信息（返回新的錯誤實例）
func (e *DomainError) WithContext(keyValues ...interface{}) error {
	if len(keyValues)%2 != 0 {
		panic("WithContext requires even number of arguments (key-value pairs)")
	}
	ctx := make(map[string]interface{}, len(e.Context)+len(keyValues)/2)
	for k, v := range e.Context {
		ctx[k] = v
	}
	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			panic(fmt.Sprintf("context key must be string, got %T", keyValues[i]))
		}
		ctx[key] = keyValues[i+1]
	}
	return &DomainError{Code: e.Code, Message: e.Message, Context: ctx}
}

// Is 依錯誤代碼判斷
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

var (
	ErrUnknownBadge = &DomainError{
		Code:    ErrCodeUnknownBadge,
		Message: "未知的徽章",
	}

	ErrDuplicateBadge = &DomainError{
		Code:    ErrCodeDuplicateBadge,
		Message: "徽章 ID 已註冊",
	}

	ErrInvalidBadgeDefinition = &DomainError{
		Code:    ErrCodeInvalidBadge,
		Message: "徽章定義缺少 ID 或判定條件",
	}

	// ErrUnauthenticated 需要登入的操作（查詢徽章、捐款歷史）
	// 與倉儲錯誤區分，對應 HTTP 401。
	ErrUnauthenticated = &DomainError{
		Code:    ErrCodeUnauthenticated,
		Message: "需要登入",
	}

	ErrRepositoryError = &DomainError{
		Code:    ErrCodeRepositoryError,
		Message: "倉儲操作失敗",
	}
)
