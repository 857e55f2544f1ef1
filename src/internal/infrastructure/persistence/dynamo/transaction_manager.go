package dynamo

import (
	"context"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/shared"
)

// TransactionManager DynamoDB 後端的事務管理器
//
// 直接執行 fn，不提供回滾。單一項目的一致性由條件寫入保證
// （donation_id 不存在、completed = false、字串集合 ADD）。
type TransactionManager struct{}

// NewTransactionManager 建構函數
func NewTransactionManager() shared.TransactionManager {
	return TransactionManager{}
}

// InTransaction 實現 shared.TransactionManager
func (TransactionManager) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
