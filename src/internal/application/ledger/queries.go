package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/achievement"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/donation"
)

// ===========================
// GetUserAchievements Use Case
// ===========================

// UserAchievementsResult 使用者持有的徽章（目錄順序）
type UserAchievementsResult struct {
	UserID string
	Badges []UnlockedBadge
}

// GetUserAchievementsUseCase 查詢徽章
type GetUserAchievementsUseCase struct {
	repo    achievement.AchievementRepository
	catalog *achievement.Catalog
}

// NewGetUserAchievementsUseCase 建構函數
func NewGetUserAchievementsUseCase(repo achievement.AchievementRepository, catalog *achievement.Catalog) *GetUserAchievementsUseCase {
	return &GetUserAchievementsUseCase{repo: repo, catalog: catalog}
}

// Execute 需要登入；匿名返回 ErrUnauthenticated（與存儲錯誤區分）
func (uc *GetUserAchievementsUseCase) Execute(ctx context.Context, session Session) (*UserAchievementsResult, error) {
	userID, err := session.requireUser()
	if err != nil {
		return nil, err
	}

	held, err := uc.repo.FindBadges(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load badges: %w", err)
	}

	defs := uc.catalog.Ordered(held)
	badges := make([]UnlockedBadge, 0, len(defs))
	for _, def := range defs {
		badges = append(badges, UnlockedBadge{ID: def.ID, DisplayName: def.DisplayName, ImageRef: def.ImageRef})
	}
	return &UserAchievementsResult{UserID: userID.String(), Badges: badges}, nil
}

// ===========================
// ListUserDonations Use Case
// ===========================

// DonationView 捐款的查詢 DTO
type DonationView struct {
	DonationID     string
	AssociationID  string
	Amount         int64
	Type           string
	Status         string
	WantReceipt    bool
	MonthlyReceipt bool
	CreatedAt      time.Time
}

// UserDonationsResult 捐款歷史與帳本合計
type UserDonationsResult struct {
	Donations          []DonationView
	TotalAmount        int64
	DonationCount      int
	TotalByAssociation map[string]int64
}

// ListUserDonationsUseCase 查詢使用者捐款歷史
type ListUserDonationsUseCase struct {
	donationRepo  donation.DonationRepository
	ledgerService *donation.LedgerCalculationService
}

// NewListUserDonationsUseCase 建構函數
func NewListUserDonationsUseCase(donationRepo donation.DonationRepository) *ListUserDonationsUseCase {
	return &ListUserDonationsUseCase{
		donationRepo:  donationRepo,
		ledgerService: donation.NewLedgerCalculationService(),
	}
}

// Execute 需要登入
func (uc *ListUserDonationsUseCase) Execute(ctx context.Context, session Session) (*UserDonationsResult, error) {
	userID, err := session.requireUser()
	if err != nil {
		return nil, err
	}

	history, err := uc.donationRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load donation history: %w", err)
	}

	ledger := uc.ledgerService.Calculate(history)
	result := &UserDonationsResult{
		Donations:          make([]DonationView, 0, len(history)),
		TotalAmount:        ledger.TotalAmount.Value(),
		DonationCount:      ledger.DonationCount,
		TotalByAssociation: make(map[string]int64, len(ledger.TotalByAssociation)),
	}
	for assoc, total := range ledger.TotalByAssociation {
		result.TotalByAssociation[assoc.String()] = total.Value()
	}
	for _, d := range history {
		result.Donations = append(result.Donations, toDonationView(d))
	}
	return result, nil
}

func toDonationView(d *donation.Donation) DonationView {
	return DonationView{
		DonationID:     d.DonationID().String(),
		AssociationID:  d.AssociationID().String(),
		Amount:         d.Amount().Value(),
		Type:           string(d.Type()),
		Status:         string(d.Status()),
		WantReceipt:    d.ReceiptPreferences().WantReceipt,
		MonthlyReceipt: d.ReceiptPreferences().MonthlyReceipt,
		CreatedAt:      d.CreatedAt(),
	}
}
