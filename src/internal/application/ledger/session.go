package ledger

import (
	"time"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/achievement"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/donation"
)

// ===========================
// Session 呼叫者身分
// ===========================

// RoleAdmin 可以建立募款目標的角色
const RoleAdmin = "admin"

// Session 由身分提供者解析出的呼叫者
//
// 以參數明確傳入每個 Use Case，不使用全域的「目前使用者」。
// UserID 為空代表匿名。
type Session struct {
	UserID string
	Email  string
	Role   string
}

// AnonymousSession 未登入的呼叫者
func AnonymousSession() Session {
	return Session{}
}

// IsAnonymous 是否未登入
func (s Session) IsAnonymous() bool {
	return s.UserID == ""
}

// IsAdmin 是否為管理員
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// donor 轉為捐款人 ID；匿名時返回零值
func (s Session) donor() (donation.UserID, error) {
	if s.IsAnonymous() {
		return donation.AnonymousUser(), nil
	}
	return donation.NewUserID(s.UserID)
}

// requireUser 需要登入的操作使用
func (s Session) requireUser() (donation.UserID, error) {
	if s.IsAnonymous() {
		return donation.UserID{}, achievement.ErrUnauthenticated
	}
	return donation.NewUserID(s.UserID)
}

// Clock 可替換的時間來源
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}
