package achievement

import (
	"context"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/donation"
)

// AchievementRepository 使用者徽章集合倉儲
//
// 沒有刪除操作：徽章集合只增不減。
type AchievementRepository interface {
	// AddBadge 冪等的集合加入
	//
	// 返回 true 表示本次呼叫是第一次寫入；已存在時返回 false 且不產生重複資料。
	AddBadge(ctx context.Context, userID donation.UserID, badgeID BadgeID) (bool, error)

	// FindBadges 使用者目前持有的徽章（沒有任何徽章時返回空集合）
	FindBadges(ctx context.Context, userID donation.UserID) (BadgeSet, error)
}
