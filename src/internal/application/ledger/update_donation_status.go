package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/donation"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/shared"
)

// UpdateDonationStatusCommand 變更捐款狀態與收據偏好
//
// Status 為空表示不變更狀態；收據欄位為 nil 表示沿用原值。
type UpdateDonationStatusCommand struct {
	DonationID     string
	Status         string
	WantReceipt    *bool
	MonthlyReceipt *bool
}

// UpdateDonationStatusUseCase 捐款人修改自己的捐款
//
// 捐款寫入後只有狀態與收據偏好可以變更；金額、協會、時間不可變。
type UpdateDonationStatusUseCase struct {
	donationRepo donation.DonationRepository
	txManager    shared.TransactionManager
	publisher    shared.EventPublisher
	logger       *slog.Logger
}

// NewUpdateDonationStatusUseCase 建構函數
func NewUpdateDonationStatusUseCase(
	donationRepo donation.DonationRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	logger *slog.Logger,
) *UpdateDonationStatusUseCase {
	return &UpdateDonationStatusUseCase{
		donationRepo: donationRepo,
		txManager:    txManager,
		publisher:    publisher,
		logger:       logger,
	}
}

// Execute 執行變更
//
// 錯誤處理：
// - ErrUnauthenticated：未登入
// - ErrInvalidDonationID / ErrDonationNotFound
// - ErrNotDonationOwner：不是捐款人（匿名捐款沒有擁有者）
// - ErrInvalidStatus / ErrInvalidReceiptPreferences
func (uc *UpdateDonationStatusUseCase) Execute(ctx context.Context, session Session, cmd UpdateDonationStatusCommand) (*DonationView, error) {
	userID, err := session.requireUser()
	if err != nil {
		return nil, err
	}
	donationID, err := donation.DonationIDFromString(cmd.DonationID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse donation ID: %w", err)
	}

	var (
		updated *donation.Donation
		events  []shared.DomainEvent
	)
	err = uc.txManager.InTransaction(ctx, func(ctx context.Context) error {
		d, err := uc.donationRepo.FindByID(ctx, donationID)
		if err != nil {
			return fmt.Errorf("failed to load donation: %w", err)
		}
		if !d.IsOwnedBy(userID) {
			return donation.ErrNotDonationOwner.WithContext(
				"donation_id", donationID.String(),
				"user_id", userID.String(),
			)
		}

		if cmd.Status != "" {
			status, err := donation.ParseDonationStatus(cmd.Status)
			if err != nil {
				return err
			}
			if err := d.ChangeStatus(status); err != nil {
				return err
			}
		}

		prefs := d.ReceiptPreferences()
		if cmd.WantReceipt != nil {
			prefs.WantReceipt = *cmd.WantReceipt
		}
		if cmd.MonthlyReceipt != nil {
			prefs.MonthlyReceipt = *cmd.MonthlyReceipt
		}
		if err := d.UpdateReceiptPreferences(prefs); err != nil {
			return err
		}

		if err := uc.donationRepo.UpdateStatus(ctx, d); err != nil {
			return fmt.Errorf("failed to update donation: %w", err)
		}
		updated = d
		events = d.PullEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 發布失敗不影響已提交的變更
	if err := uc.publisher.PublishBatch(ctx, events); err != nil {
		uc.logger.WarnContext(ctx, "failed to publish donation status events", slog.Any("error", err))
	}

	view := toDonationView(updated)
	return &view, nil
}
