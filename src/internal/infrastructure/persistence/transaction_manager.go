package persistence

import (
	"context"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/shared"
	"gorm.io/gorm"
)

// GORMTransactionManager 以 GORM 實作 shared.TransactionManager
//
// - fn 返回錯誤：回滾並返回該錯誤
// - fn panic：回滾後重新 panic
// - ctx 已在事務中：直接在同一事務執行（不建立巢狀事務）
type GORMTransactionManager struct {
	db *gorm.DB
}

// NewGORMTransactionManager 建構函數
func NewGORMTransactionManager(db *gorm.DB) *GORMTransactionManager {
	return &GORMTransactionManager{db: db}
}

// InTransaction 實現 shared.TransactionManager
func (m *GORMTransactionManager) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx, ok := shared.TransactionFromContext(ctx); ok {
		if _, isGORM := tx.(*gormTransactionContext); isGORM {
			return fn(ctx)
		}
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(shared.ContextWithTransaction(ctx, NewGORMTransactionContext(tx)))
	})
}
