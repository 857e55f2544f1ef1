package persistence

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isUniqueConstraintError 檢查是否為唯一約束錯誤
//
// 開啟 TranslateError 時 GORM 會轉為 gorm.ErrDuplicatedKey；
// 未開啟時依資料庫錯誤訊息判斷：
// - SQLite: "UNIQUE constraint failed"
// - PostgreSQL: "duplicate key value violates unique constraint"
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return containsAny(err.Error(),
		"UNIQUE constraint failed",
		"duplicate key value",
		"violates unique constraint",
	)
}

// isNotFoundError 查無資料
func isNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func containsAny(s string, substrs ...string) bool {
	for _, substr := range substrs {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
