package persistence

import (
	"context"
	"time"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/donation"
	"gorm.io/gorm"
)

// GORMGoalRepository GORM 實作的募款目標倉儲
type GORMGoalRepository struct {
	db *gorm.DB
}

// NewGoalRepository 建構函數
func NewGoalRepository(db *gorm.DB) donation.GoalRepository {
	return &GORMGoalRepository{db: db}
}

// Save 建立目標；association_id 唯一索引保證每個協會只有一個
func (r *GORMGoalRepository) Save(ctx context.Context, g *donation.Goal) error {
	db := dbFromContext(ctx, r.db)

	if err := db.Create(toGoalModel(g)).Error; err != nil {
		if isUniqueConstraintError(err) {
			return donation.ErrGoalAlreadyExists.WithContext("association_id", g.AssociationID().String())
		}
		return donation.ErrRepositoryError.WithContext("database_error", err.Error())
	}
	return nil
}

// FindByAssociationID 查詢協會的目標
func (r *GORMGoalRepository) FindByAssociationID(ctx context.Context, associationID donation.AssociationID) (*donation.Goal, error) {
	db := dbFromContext(ctx, r.db)

	var model GoalModel
	if err := db.Where("association_id = ?", associationID.String()).First(&model).Error; err != nil {
		if isNotFoundError(err) {
			return nil, donation.ErrGoalNotFound.WithContext("association_id", associationID.String())
		}
		return nil, donation.ErrRepositoryError.WithContext("database_error", err.Error())
	}
	return toDomainGoal(&model)
}

// MarkCompleted 條件寫入
//
// UPDATE goals SET completed = true, ... WHERE id = ? AND completed = false
// RowsAffected == 1 表示本次寫入完成了轉換。
func (r *GORMGoalRepository) MarkCompleted(ctx context.Context, g *donation.Goal) (bool, error) {
	if !g.IsCompleted() || g.CompletedAt() == nil {
		return false, donation.ErrRepositoryError.WithContext(
			"goal_id", g.GoalID().String(),
			"reason", "goal must be marked completed before persisting",
		)
	}
	db := dbFromContext(ctx, r.db)

	result := db.Model(&GoalModel{}).
		Where("id = ? AND completed = ?", g.GoalID().String(), false).
		Updates(map[string]interface{}{
			"completed":    true,
			"completed_at": g.CompletedAt().UTC(),
			"completed_by": userIDPtr(g.CompletedBy()),
			"updated_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return false, donation.ErrRepositoryError.WithContext("database_error", result.Error.Error())
	}
	if result.RowsAffected == 1 {
		return true, nil
	}

	// 0 列：已被其他請求完成，或目標不存在
	var count int64
	if err := db.Model(&GoalModel{}).Where("id = ?", g.GoalID().String()).Count(&count).Error; err != nil {
		return false, donation.ErrRepositoryError.WithContext("database_error", err.Error())
	}
	if count == 0 {
		return false, donation.ErrGoalNotFound.WithContext("goal_id", g.GoalID().String())
	}
	return false, nil
}
