package persistence

import (
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/donation"
)

// ===========================
// Domain ↔ GORM Model 轉換函數
// ===========================

// toDomainDonation 將 GORM Model 轉換為 Domain 聚合根
//
// 即使資料來自資料庫也完整驗證（透過 ReconstructDonation），
// 損壞的資料返回 ErrCorruptedData 而不是 panic。
func toDomainDonation(model *DonationModel) (*donation.Donation, error) {
	id, err := donation.DonationIDFromString(model.ID)
	if err != nil {
		return nil, donation.ErrCorruptedData.WithContext(
			"id", model.ID,
			"reason", "invalid UUID format in database",
		)
	}

	userID := donation.AnonymousUser()
	if model.UserID != nil {
		userID, err = donation.NewUserID(*model.UserID)
		if err != nil {
			return nil, donation.ErrCorruptedData.WithContext(
				"id", model.ID,
				"user_id", *model.UserID,
			)
		}
	}

	associationID, err := donation.NewAssociationID(model.AssociationID)
	if err != nil {
		return nil, donation.ErrCorruptedData.WithContext(
			"id", model.ID,
			"association_id", model.AssociationID,
		)
	}

	return donation.ReconstructDonation(
		id,
		userID,
		associationID,
		model.Amount,
		model.Type,
		model.Status,
		donation.ReceiptPreferences{
			WantReceipt:    model.WantReceipt,
			MonthlyReceipt: model.MonthlyReceipt,
		},
		model.CreatedAt,
	)
}

// toDonationModel 將 Domain 聚合根轉換為 GORM Model
func toDonationModel(d *donation.Donation) *DonationModel {
	return &DonationModel{
		ID:             d.DonationID().String(),
		UserID:         userIDPtr(d.UserID()),
		AssociationID:  d.AssociationID().String(),
		Amount:         d.Amount().Value(),
		Type:           string(d.Type()),
		Status:         string(d.Status()),
		WantReceipt:    d.ReceiptPreferences().WantReceipt,
		MonthlyReceipt: d.ReceiptPreferences().MonthlyReceipt,
		CreatedAt:      d.CreatedAt().UTC(),
		UpdatedAt:      d.CreatedAt().UTC(),
	}
}

// toDomainGoal 將 GoalModel 轉換為 Goal 聚合
func toDomainGoal(model *GoalModel) (*donation.Goal, error) {
	id, err := donation.GoalIDFromString(model.ID)
	if err != nil {
		return nil, donation.ErrCorruptedData.WithContext(
			"id", model.ID,
			"reason", "invalid UUID format in database",
		)
	}
	associationID, err := donation.NewAssociationID(model.AssociationID)
	if err != nil {
		return nil, donation.ErrCorruptedData.WithContext(
			"id", model.ID,
			"association_id", model.AssociationID,
		)
	}

	completedBy := donation.AnonymousUser()
	if model.CompletedBy != nil && *model.CompletedBy != "" {
		completedBy, err = donation.NewUserID(*model.CompletedBy)
		if err != nil {
			return nil, donation.ErrCorruptedData.WithContext(
				"id", model.ID,
				"completed_by", *model.CompletedBy,
			)
		}
	}

	return donation.ReconstructGoal(
		id,
		associationID,
		model.TargetAmount,
		model.CreatedAt,
		model.Completed,
		model.CompletedAt,
		completedBy,
	)
}

// toGoalModel 將 Goal 聚合轉換為 GoalModel
func toGoalModel(g *donation.Goal) *GoalModel {
	return &GoalModel{
		ID:            g.GoalID().String(),
		AssociationID: g.AssociationID().String(),
		TargetAmount:  g.TargetAmount().Value(),
		Completed:     g.IsCompleted(),
		CompletedAt:   g.CompletedAt(),
		CompletedBy:   userIDPtr(g.CompletedBy()),
		CreatedAt:     g.CreatedAt().UTC(),
		UpdatedAt:     g.CreatedAt().UTC(),
	}
}

// userIDPtr 匿名 → NULL
func userIDPtr(u donation.UserID) *string {
	if u.IsAnonymous() {
		return nil
	}
	s := u.String()
	return &s
}
