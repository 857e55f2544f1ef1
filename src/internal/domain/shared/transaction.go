package shared

import "context"

// TransactionContext 事務上下文（標記介面）
//
// Infrastructure Layer 負責具體實作（GORM 的 *gorm.DB 事務、DynamoDB 的無事務實作），
// Domain 與 Application Layer 只依賴此介面。
//
// 事務透過 context.Context 傳遞：
//   - ctx 中帶有 TransactionContext：Repository 在該事務中執行
//   - ctx 中沒有：Repository 使用 auto-commit 模式
//
// 原則：寫操作與需要一致性的讀操作放進 InTransaction，獨立查詢直接使用 ctx。
type TransactionContext interface {
	// 標記介面：不暴露方法
}

// TransactionManager 事務管理器介面
//
// fn 收到的 ctx 已附帶事務；fn 返回錯誤或 panic 時回滾。
type TransactionManager interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type transactionKey struct{}

// ContextWithTransaction 將事務附加到 ctx
func ContextWithTransaction(ctx context.Context, tx TransactionContext) context.Context {
	return context.WithValue(ctx, transactionKey{}, tx)
}

// TransactionFromContext 取出 ctx 中的事務（沒有則返回 nil, false）
func TransactionFromContext(ctx context.Context) (TransactionContext, bool) {
	if ctx == nil {
		return nil, false
	}
	tx, ok := ctx.Value(transactionKey{}).(TransactionContext)
	return tx, ok && tx != nil
}
