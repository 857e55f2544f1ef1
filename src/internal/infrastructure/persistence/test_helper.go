package persistence

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ===========================
// 測試輔助函數
// ===========================

// setupTestDB 創建測試用的 SQLite in-memory 資料庫
//
// 每個測試使用獨立的 in-memory DB，使用真實 SQL 引擎而非 Mock。
// :memory: 資料庫屬於單一連線，因此限制連線數為 1。
func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	cleanup := func() {
		_ = sqlDB.Close()
	}
	return db, cleanup
}
