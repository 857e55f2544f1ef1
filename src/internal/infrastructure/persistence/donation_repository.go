package persistence

import (
	"context"
	"time"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/donation"
	"gorm.io/gorm"
)

// ===========================
// GORM DonationRepository 實作
// ===========================

// GORMDonationRepository GORM 實作的捐款倉儲
//
// 職責：
// - 調用 Mapper 進行 Domain ↔ GORM 轉換
// - 將 GORM 錯誤映射為 DomainError
// - 不包含業務邏輯
type GORMDonationRepository struct {
	db *gorm.DB
}

// NewDonationRepository 建構函數
func NewDonationRepository(db *gorm.DB) donation.DonationRepository {
	return &GORMDonationRepository{db: db}
}

// Save 附加寫入新捐款
func (r *GORMDonationRepository) Save(ctx context.Context, d *donation.Donation) error {
	db := dbFromContext(ctx, r.db)

	if err := db.Create(toDonationModel(d)).Error; err != nil {
		return r.mapError(err, d.DonationID().String())
	}
	return nil
}

// FindByID 查詢單筆捐款
func (r *GORMDonationRepository) FindByID(ctx context.Context, id donation.DonationID) (*donation.Donation, error) {
	db := dbFromContext(ctx, r.db)

	var model DonationModel
	if err := db.First(&model, "id = ?", id.String()).Error; err != nil {
		return nil, r.mapError(err, id.String())
	}
	return toDomainDonation(&model)
}

// FindByUserID 使用者的完整歷史（createdAt 遞增）
//
// 使用 idx_donations_user_created 索引。
func (r *GORMDonationRepository) FindByUserID(ctx context.Context, userID donation.UserID) ([]*donation.Donation, error) {
	if userID.IsAnonymous() {
		return []*donation.Donation{}, nil
	}
	db := dbFromContext(ctx, r.db)

	var models []DonationModel
	err := db.Where("user_id = ?", userID.String()).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, r.mapError(err, "")
	}
	return toDomainDonations(models)
}

// FindByAssociationID 協會在 since（含）之後的捐款
func (r *GORMDonationRepository) FindByAssociationID(ctx context.Context, associationID donation.AssociationID, since time.Time) ([]*donation.Donation, error) {
	db := dbFromContext(ctx, r.db)

	query := db.Where("association_id = ?", associationID.String())
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since.UTC())
	}

	var models []DonationModel
	if err := query.Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, r.mapError(err, "")
	}
	return toDomainDonations(models)
}

// UpdateStatus 只更新狀態與收據欄位
//
// 其他欄位不在 UPDATE 中，寫入後不可變的欄位不會被覆蓋。
func (r *GORMDonationRepository) UpdateStatus(ctx context.Context, d *donation.Donation) error {
	db := dbFromContext(ctx, r.db)

	result := db.Model(&DonationModel{}).
		Where("id = ?", d.DonationID().String()).
		Updates(map[string]interface{}{
			"status":          string(d.Status()),
			"want_receipt":    d.ReceiptPreferences().WantReceipt,
			"monthly_receipt": d.ReceiptPreferences().MonthlyReceipt,
			"updated_at":      time.Now().UTC(),
		})
	if result.Error != nil {
		return r.mapError(result.Error, d.DonationID().String())
	}
	if result.RowsAffected == 0 {
		return donation.ErrDonationNotFound.WithContext("donation_id", d.DonationID().String())
	}
	return nil
}

// mapError 映射 GORM 錯誤
//
// - gorm.ErrRecordNotFound → ErrDonationNotFound
// - 唯一約束違反 → ErrDonationAlreadyExists
// - 其他錯誤 → ErrRepositoryError
func (r *GORMDonationRepository) mapError(err error, id string) error {
	if isNotFoundError(err) {
		return donation.ErrDonationNotFound.WithContext("donation_id", id)
	}
	if isUniqueConstraintError(err) {
		return donation.ErrDonationAlreadyExists.WithContext("donation_id", id)
	}
	return donation.ErrRepositoryError.WithContext("database_error", err.Error())
}

func toDomainDonations(models []DonationModel) ([]*donation.Donation, error) {
	out := make([]*donation.Donation, 0, len(models))
	for i := range models {
		d, err := toDomainDonation(&models[i])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
