package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/donation"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/shared"
)

// ===========================
// GoalCompletionDetector
// ===========================

// GoalCompletionDetector 判斷本次捐款是否完成了協會的募款目標
//
// 讀取與條件寫入在同一個事務中執行。
// 只有條件寫入回報「本次完成了 false → true 轉換」時才返回 true，
// 同時抵達的兩筆捐款只有一筆會被記為完成者。
type GoalCompletionDetector struct {
	goalRepo     donation.GoalRepository
	donationRepo donation.DonationRepository
	txManager    shared.TransactionManager
	publisher    shared.EventPublisher
	logger       *slog.Logger
	clock        Clock
}

// NewGoalCompletionDetector 建構函數
func NewGoalCompletionDetector(
	goalRepo donation.GoalRepository,
	donationRepo donation.DonationRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	logger *slog.Logger,
) *GoalCompletionDetector {
	return &GoalCompletionDetector{
		goalRepo:     goalRepo,
		donationRepo: donationRepo,
		txManager:    txManager,
		publisher:    publisher,
		logger:       logger,
		clock:        systemClock,
	}
}

// WithClock 替換時間來源（測試用）
func (d *GoalCompletionDetector) WithClock(clock Clock) *GoalCompletionDetector {
	d.clock = clock
	return d
}

// Detect 返回本次捐款是否完成了目標
//
// 匿名捐款、協會沒有目標、目標已完成、尚未達標都返回 false。
// 匿名捐款仍計入總額，由下一筆具名捐款完成轉換。
// 任何讀寫錯誤只記錄日誌並返回 false，不影響已寫入的捐款。
func (d *GoalCompletionDetector) Detect(ctx context.Context, dn *donation.Donation) bool {
	if dn.IsAnonymous() {
		return false
	}

	var goal *donation.Goal
	completed := false

	err := d.txManager.InTransaction(ctx, func(ctx context.Context) error {
		g, err := d.goalRepo.FindByAssociationID(ctx, dn.AssociationID())
		if errors.Is(err, donation.ErrGoalNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load goal: %w", err)
		}
		if g.IsCompleted() {
			return nil
		}

		contributions, err := d.donationRepo.FindByAssociationID(ctx, dn.AssociationID(), g.CreatedAt())
		if err != nil {
			return fmt.Errorf("failed to load goal contributions: %w", err)
		}
		contributions = donation.MergeDonation(contributions, dn)

		if !g.IsSatisfiedBy(contributions) {
			return nil
		}

		if err := g.MarkCompleted(dn.UserID(), d.clock()); err != nil {
			return err
		}
		won, err := d.goalRepo.MarkCompleted(ctx, g)
		if err != nil {
			return fmt.Errorf("failed to mark goal completed: %w", err)
		}
		if won {
			goal = g
			completed = true
		}
		return nil
	})
	if err != nil {
		d.logger.ErrorContext(ctx, "goal completion check failed",
			slog.String("association_id", dn.AssociationID().String()),
			slog.String("donation_id", dn.DonationID().String()),
			slog.Any("error", err),
		)
		return false
	}

	if completed {
		d.logger.InfoContext(ctx, "goal completed",
			slog.String("association_id", dn.AssociationID().String()),
			slog.String("goal_id", goal.GoalID().String()),
			slog.String("completed_by", dn.UserID().String()),
		)
		if err := d.publisher.PublishBatch(ctx, goal.PullEvents()); err != nil {
			d.logger.WarnContext(ctx, "failed to publish goal events", slog.Any("error", err))
		}
	}
	return completed
}
