package persistence

import (
	"time"
)

// ===========================
// GORM Model 定義
// ===========================

// DonationModel 捐款資料表
//
// 附加寫入；只有 status 與收據欄位會被更新。
// user_id 為 NULL 代表匿名捐款。
type DonationModel struct {
	ID             string    `gorm:"column:id;type:varchar(36);primaryKey"`
	UserID         *string   `gorm:"column:user_id;type:varchar(128);index:idx_donations_user_created,priority:1"`
	AssociationID  string    `gorm:"column:association_id;type:varchar(128);not null;index:idx_donations_assoc_created,priority:1"`
	Amount         int64     `gorm:"column:amount;not null"`
	Type           string    `gorm:"column:type;type:varchar(16);not null"`
	Status         string    `gorm:"column:status;type:varchar(16);not null"`
	WantReceipt    bool      `gorm:"column:want_receipt;not null"`
	MonthlyReceipt bool      `gorm:"column:monthly_receipt;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;index:idx_donations_user_created,priority:2;index:idx_donations_assoc_created,priority:2"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (DonationModel) TableName() string {
	return "donations"
}

// GoalModel 協會募款目標資料表（每個協會一筆）
type GoalModel struct {
	ID            string     `gorm:"column:id;type:varchar(36);primaryKey"`
	AssociationID string     `gorm:"column:association_id;type:varchar(128);uniqueIndex;not null"`
	TargetAmount  int64      `gorm:"column:target_amount;not null"`
	Completed     bool       `gorm:"column:completed;not null"`
	CompletedAt   *time.Time `gorm:"column:completed_at"`
	CompletedBy   *string    `gorm:"column:completed_by;type:varchar(128)"`
	CreatedAt     time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (GoalModel) TableName() string {
	return "goals"
}

// UserBadgeModel 使用者徽章（集合的每個成員一列）
//
// 複合主鍵保證同一徽章只會存在一次。
type UserBadgeModel struct {
	UserID    string    `gorm:"column:user_id;type:varchar(128);primaryKey"`
	BadgeID   string    `gorm:"column:badge_id;type:varchar(64);primaryKey"`
	AwardedAt time.Time `gorm:"column:awarded_at;not null"`
}

// TableName 指定表名
func (UserBadgeModel) TableName() string {
	return "user_badges"
}

// allModels AutoMigrate 使用
func allModels() []interface{} {
	return []interface{}{&DonationModel{}, &GoalModel{}, &UserBadgeModel{}}
}
