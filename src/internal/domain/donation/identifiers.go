package donation

import (
	"strings"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/shared"
)

// ===========================
// 實體 ID（UUID）
// ===========================

// DonationMarker 是 DonationID 的標記類型
type DonationMarker struct{}

// DonationID 捐款的唯一標識符（由本服務生成）
type DonationID = shared.EntityID[DonationMarker]

// NewDonationID 生成新的捐款 ID
func NewDonationID() DonationID {
	return shared.NewEntityID[DonationMarker]()
}

// DonationIDFromString 從字串解析捐款 ID
func DonationIDFromString(s string) (DonationID, error) {
	return shared.EntityIDFromString[DonationMarker](s, ErrInvalidDonationID)
}

// GoalMarker 是 GoalID 的標記類型
type GoalMarker struct{}

// GoalID 募款目標的唯一標識符
type GoalID = shared.EntityID[GoalMarker]

// NewGoalID 生成新的募款目標 ID
func NewGoalID() GoalID {
	return shared.NewEntityID[GoalMarker]()
}

// GoalIDFromString 從字串解析募款目標 ID
func GoalIDFromString(s string) (GoalID, error) {
	return shared.EntityIDFromString[GoalMarker](s, ErrInvalidGoalID)
}

// ===========================
// 外部系統 ID（字串）
// ===========================

// maxExternalIDLength 身分提供者與協會目錄的 ID 長度上限
const maxExternalIDLength = 128

// UserID 使用者 ID（由身分提供者發出，例如 uid）
//
// 零值代表匿名捐款。
type UserID struct {
	value string
}

// NewUserID 建構函數（checked）
func NewUserID(s string) (UserID, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxExternalIDLength {
		return UserID{}, ErrInvalidUserID.WithContext("input", s)
	}
	return UserID{value: s}, nil
}

// AnonymousUser 匿名捐款者
func AnonymousUser() UserID {
	return UserID{}
}

// String 字串表示
func (u UserID) String() string {
	return u.value
}

// IsAnonymous 是否為匿名
func (u UserID) IsAnonymous() bool {
	return u.value == ""
}

// Equals 比較
func (u UserID) Equals(other UserID) bool {
	return u.value == other.value
}

// AssociationID 受贈協會 ID（來自協會目錄）
type AssociationID struct {
	value string
}

// NewAssociationID 建構函數（checked）
func NewAssociationID(s string) (AssociationID, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxExternalIDLength {
		return AssociationID{}, ErrInvalidAssociationID.WithContext("input", s)
	}
	return AssociationID{value: s}, nil
}

// String 字串表示
func (a AssociationID) String() string {
	return a.value
}

// IsEmpty 是否為零值
func (a AssociationID) IsEmpty() bool {
	return a.value == ""
}

// Equals 比較
func (a AssociationID) Equals(other AssociationID) bool {
	return a.value == other.value
}
