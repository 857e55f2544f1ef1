package ledger

import (
	"context"
	"log/slog"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/achievement"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/donation"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/shared"
)

// UnlockedBadge 新解鎖徽章的顯示資料（前端依序播放）
type UnlockedBadge struct {
	ID          achievement.BadgeID
	DisplayName string
	ImageRef    string
}

// AchievementUnlocker 將判定結果寫入使用者的徽章集合
//
// 只有 AddBadge 回報首次寫入的徽章才會被返回，
// 兩個並發請求不會對同一個徽章都顯示解鎖。
type AchievementUnlocker struct {
	repo      achievement.AchievementRepository
	catalog   *achievement.Catalog
	publisher shared.EventPublisher
	logger    *slog.Logger
}

// NewAchievementUnlocker 建構函數
func NewAchievementUnlocker(
	repo achievement.AchievementRepository,
	catalog *achievement.Catalog,
	publisher shared.EventPublisher,
	logger *slog.Logger,
) *AchievementUnlocker {
	return &AchievementUnlocker{
		repo:      repo,
		catalog:   catalog,
		publisher: publisher,
		logger:    logger,
	}
}

// Unlock 依序寫入徽章，返回本次真正新增的徽章
//
// 單一徽章寫入失敗只記錄日誌，其餘徽章繼續處理。
func (u *AchievementUnlocker) Unlock(ctx context.Context, userID donation.UserID, ids []achievement.BadgeID) []UnlockedBadge {
	unlocked := make([]UnlockedBadge, 0, len(ids))
	if userID.IsAnonymous() {
		return unlocked
	}

	events := make([]shared.DomainEvent, 0, len(ids))
	for _, id := range ids {
		def, err := u.catalog.Lookup(id)
		if err != nil {
			u.logger.WarnContext(ctx, "skipping unknown badge", slog.String("badge_id", string(id)))
			continue
		}

		inserted, err := u.repo.AddBadge(ctx, userID, id)
		if err != nil {
			u.logger.ErrorContext(ctx, "failed to add badge",
				slog.String("user_id", userID.String()),
				slog.String("badge_id", string(id)),
				slog.Any("error", err),
			)
			continue
		}
		if !inserted {
			continue
		}

		unlocked = append(unlocked, UnlockedBadge{
			ID:          def.ID,
			DisplayName: def.DisplayName,
			ImageRef:    def.ImageRef,
		})
		events = append(events, achievement.NewBadgeUnlockedEvent(userID, id))
	}

	if len(events) > 0 {
		if err := u.publisher.PublishBatch(ctx, events); err != nil {
			u.logger.WarnContext(ctx, "failed to publish badge events", slog.Any("error", err))
		}
	}
	return unlocked
}
