package donation

import "fmt"

// ===========================
// 錯誤代碼定義
// ===========================

// ErrorCode 錯誤代碼類型
type ErrorCode string

const (
	// 輸入驗證
	ErrCodeInvalidDonationID    ErrorCode = "DONATION_ID_INVALID"
	ErrCodeInvalidGoalID        ErrorCode = "GOAL_ID_INVALID"
	ErrCodeInvalidUserID        ErrorCode = "USER_ID_INVALID"
	ErrCodeInvalidAssociationID ErrorCode = "ASSOCIATION_ID_INVALID"
	ErrCodeInvalidAmount        ErrorCode = "AMOUNT_INVALID"
	ErrCodeInvalidDonationType  ErrorCode = "DONATION_TYPE_INVALID"
	ErrCodeInvalidStatus        ErrorCode = "DONATION_STATUS_INVALID"
	ErrCodeInvalidReceipt       ErrorCode = "RECEIPT_PREFERENCES_INVALID"

	// 目標狀態
	ErrCodeGoalAlreadyCompleted ErrorCode = "GOAL_ALREADY_COMPLETED"

	// 權限
	ErrCodeNotDonationOwner ErrorCode = "DONATION_NOT_OWNER"

	// 倉儲
	ErrCodeDonationNotFound      ErrorCode = "DONATION_NOT_FOUND"
	ErrCodeDonationAlreadyExists ErrorCode = "DONATION_ALREADY_EXISTS"
	ErrCodeGoalNotFound          ErrorCode = "GOAL_NOT_FOUND"
	ErrCodeGoalAlreadyExists     ErrorCode = "GOAL_ALREADY_EXISTS"
	ErrCodeRepositoryError       ErrorCode = "REPOSITORY_ERROR"
	ErrCodeCorruptedData         ErrorCode = "DATA_CORRUPTED"
)

// ===========================
// DomainError 結構
// ===========================

// DomainError 領域錯誤
//
// Code 用於 HTTP 狀態碼映射，Context 用於日誌。建立後不可修改。
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

	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Context: ctx,
	}
}

// Is 依錯誤代碼判斷（errors.Is）
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// ===========================
// 預定義錯誤
// ===========================

var (
	ErrInvalidDonationID = &DomainError{
		Code:    ErrCodeInvalidDonationID,
		Message: "無效的捐款 ID",
	}

	ErrInvalidGoalID = &DomainError{
		Code:    ErrCodeInvalidGoalID,
		Message: "無效的募款目標 ID",
	}

	ErrInvalidUserID = &DomainError{
		Code:    ErrCodeInvalidUserID,
		Message: "無效的使用者 ID",
	}

	ErrInvalidAssociationID = &DomainError{
		Code:    ErrCodeInvalidAssociationID,
		Message: "必須指定受贈協會",
	}

	ErrInvalidAmount = &DomainError{
		Code:    ErrCodeInvalidAmount,
		Message: "捐款金額必須為正整數",
	}

	ErrInvalidDonationType = &DomainError{
		Code:    ErrCodeInvalidDonationType,
		Message: "捐款類型必須為 single 或 recurrent",
	}

	ErrInvalidStatus = &DomainError{
		Code:    ErrCodeInvalidStatus,
		Message: "無效的捐款狀態",
	}

	ErrInvalidReceiptPreferences = &DomainError{
		Code:    ErrCodeInvalidReceipt,
		Message: "每月收據僅適用於定期捐款",
	}
)

var (
	ErrGoalAlreadyCompleted = &DomainError{
		Code:    ErrCodeGoalAlreadyCompleted,
		Message: "募款目標已完成",
	}

	ErrNotDonationOwner = &DomainError{
		Code:    ErrCodeNotDonationOwner,
		Message: "只有捐款人可以修改此捐款",
	}
)

var (
	ErrDonationNotFound = &DomainError{
		Code:    ErrCodeDonationNotFound,
		Message: "捐款不存在",
	}

	ErrDonationAlreadyExists = &DomainError{
		Code:    ErrCodeDonationAlreadyExists,
		Message: "捐款已存在",
	}

	ErrGoalNotFound = &DomainError{
		Code:    ErrCodeGoalNotFound,
		Message: "協會沒有募款目標",
	}

	ErrGoalAlreadyExists = &DomainError{
		Code:    ErrCodeGoalAlreadyExists,
		Message: "協會已有募款目標",
	}

	ErrRepositoryError = &DomainError{
		Code:    ErrCodeRepositoryError,
		Message: "倉儲操作失敗",
	}

	// ErrCorruptedData 資料庫資料違反不變條件
	ErrCorruptedData = &DomainError{
		Code:    ErrCodeCorruptedData,
		Message: "資料已損壞",
	}
)
