package persistence

import (
	"context"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORM TransactionContext 實作
// ===========================

// gormTransactionContext GORM 事務上下文實作
//
// 封裝 *gorm.DB，避免洩漏到 Domain Layer。
// GetDB 不在 shared.TransactionContext 介面中，只有本套件能取得事務 DB。
type gormTransactionContext struct {
	db *gorm.DB
}

// NewGORMTransactionContext 創建 GORM 事務上下文
func NewGORMTransactionContext(db *gorm.DB) shared.TransactionContext {
	return &gormTransactionContext{db: db}
}

// GetDB 獲取 GORM DB 連接（僅供 Infrastructure Layer 內部使用）
func (tc *gormTransactionContext) GetDB() *gorm.DB {
	return tc.db
}

// dbFromContext 取得應該使用的 DB
//
// ctx 帶有 GORM 事務時返回事務 DB，否則返回 fallback（auto-commit）。
// 兩者都綁定 ctx，取消請求時查詢會中止。
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := shared.TransactionFromContext(ctx); ok {
		if gormCtx, ok := tx.(*gormTransactionContext); ok {
			return gormCtx.GetDB().WithContext(ctx)
		}
	}
	return fallback.WithContext(ctx)
}
