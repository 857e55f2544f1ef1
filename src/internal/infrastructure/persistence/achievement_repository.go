package persistence

import (
	"context"
	"time"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/achievement"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/donation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMAchievementRepository GORM 實作的徽章集合倉儲
type GORMAchievementRepository struct {
	db *gorm.DB
}

// NewAchievementRepository 建構函數
func NewAchievementRepository(db *gorm.DB) achievement.AchievementRepository {
	return &GORMAchievementRepository{db: db}
}

// AddBadge INSERT ... ON CONFLICT DO NOTHING
//
// 衝突時 RowsAffected 為 0，返回 false；不會產生重複列，也不會返回錯誤。
func (r *GORMAchievementRepository) AddBadge(ctx context.Context, userID donation.UserID, badgeID achievement.BadgeID) (bool, error) {
	db := dbFromContext(ctx, r.db)

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&UserBadgeModel{
		UserID:    userID.String(),
		BadgeID:   string(badgeID),
		AwardedAt: time.Now().UTC(),
	})
	if result.Error != nil {
		return false, achievement.ErrRepositoryError.WithContext(
			"user_id", userID.String(),
			"badge_id", string(badgeID),
			"database_error", result.Error.Error(),
		)
	}
	return result.RowsAffected == 1, nil
}

// FindBadges 使用者持有的徽章
func (r *GORMAchievementRepository) FindBadges(ctx context.Context, userID donation.UserID) (achievement.BadgeSet, error) {
	db := dbFromContext(ctx, r.db)

	var ids []string
	err := db.Model(&UserBadgeModel{}).
		Where("user_id = ?", userID.String()).
		Pluck("badge_id", &ids).Error
	if err != nil {
		return nil, achievement.ErrRepositoryError.WithContext(
			"user_id", userID.String(),
			"database_error", err.Error(),
		)
	}

	set := achievement.NewBadgeSet()
	for _, id := range ids {
		set.Add(achievement.BadgeID(id))
	}
	return set, nil
}
