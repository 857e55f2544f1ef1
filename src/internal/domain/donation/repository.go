package donation

import (
	"context"
	"time"
)

// ===========================
// Repository 介面
// ===========================

// DonationRepository 捐款倉儲（附加寫入 + 歷史查詢）
//
// 寫操作不跨文件事務；ctx 中若帶有 shared.TransactionContext 則參與該事務。
// 實作不重試，I/O 錯誤以 ErrRepositoryError 返回。
type DonationRepository interface {
	// Save 附加寫入新捐款
	// 錯誤：ErrDonationAlreadyExists（ID 重複）
	Save(ctx context.Context, d *Donation) error

	// FindByID 查詢單筆捐款
	// 錯誤：ErrDonationNotFound
	FindByID(ctx context.Context, id DonationID) (*Donation, error)

	// FindByUserID 使用者的完整捐款歷史（依 createdAt 遞增）
	FindByUserID(ctx context.Context, userID UserID) ([]*Donation, error)

	// FindByAssociationID 協會在 since（含）之後收到的捐款；since 為零值時返回全部
	FindByAssociationID(ctx context.Context, associationID AssociationID, since time.Time) ([]*Donation, error)

	// UpdateStatus 只更新狀態與收據偏好欄位
	// 錯誤：ErrDonationNotFound
	UpdateStatus(ctx context.Context, d *Donation) error
}

// GoalRepository 募款目標倉儲
type GoalRepository interface {
	// Save 建立目標（每個協會只能有一個）
	// 錯誤：ErrGoalAlreadyExists
	Save(ctx context.Context, g *Goal) error

	// FindByAssociationID 查詢協會的目標
	// 錯誤：ErrGoalNotFound（協會沒有目標，不是 I/O 錯誤）
	FindByAssociationID(ctx context.Context, associationID AssociationID) (*Goal, error)

	// MarkCompleted 條件寫入：只有在存儲中 completed == false 時才寫入
	// g.CompletedBy()/g.CompletedAt()。
	//
	// 返回 true 表示本次呼叫完成了 false → true 的轉換；
	// 返回 false 表示其他請求已先完成（first writer wins）。
	MarkCompleted(ctx context.Context, g *Goal) (bool, error)
}
