package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/achievement"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/donation"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/shared"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ===========================
// RecordDonation Use Case
// ===========================

// RecordDonationCommand 記錄捐款的命令
//
// 輸入：
// - AssociationID: 受贈協會（來自協會目錄）
// - Amount: 金額，必須是正整數
// - Type: "single" 或 "recurrent"
// - WantReceipt / MonthlyReceipt: 收據偏好（每月收據只適用於定期捐款）
type RecordDonationCommand struct {
	AssociationID  string
	Amount         decimal.Decimal
	Type           string
	WantReceipt    bool
	MonthlyReceipt bool
}

// RecordDonationResult 記錄捐款的結果
//
// UnlockedBadges 依目錄順序排列；沒有新徽章時為空切片（不是 nil）。
type RecordDonationResult struct {
	DonationID     string
	CreatedAt      time.Time
	GoalCompleted  bool
	UnlockedBadges []UnlockedBadge
}

// RecordDonationUseCase 捐款記錄與成就結算
//
// 狀態：Validated → Persisted → LedgerEvaluated → AchievementsApplied → Reported
//
// 職責：
// 1. 驗證輸入並建立 Donation 聚合
// 2. 寫入捐款（唯一會讓呼叫失敗的 I/O）
// 3. 並行：載入歷史與徽章、偵測募款目標
// 4. 判定徽章並寫入
// 5. 返回新解鎖的徽章
//
// 步驟 3、4 的失敗只記錄日誌，捐款已經寫入，呼叫仍然成功。
type RecordDonationUseCase struct {
	donationRepo    donation.DonationRepository
	achievementRepo achievement.AchievementRepository
	ledgerService   *donation.LedgerCalculationService
	evaluator       *achievement.Evaluator
	detector        *GoalCompletionDetector
	unlocker        *AchievementUnlocker
	publisher       shared.EventPublisher
	logger          *slog.Logger
	clock           Clock
}

// NewRecordDonationUseCase 建構函數
func NewRecordDonationUseCase(
	donationRepo donation.DonationRepository,
	achievementRepo achievement.AchievementRepository,
	evaluator *achievement.Evaluator,
	detector *GoalCompletionDetector,
	unlocker *AchievementUnlocker,
	publisher shared.EventPublisher,
	logger *slog.Logger,
) *RecordDonationUseCase {
	return &RecordDonationUseCase{
		donationRepo:    donationRepo,
		achievementRepo: achievementRepo,
		ledgerService:   donation.NewLedgerCalculationService(),
		evaluator:       evaluator,
		detector:        detector,
		unlocker:        unlocker,
		publisher:       publisher,
		logger:          logger,
		clock:           systemClock,
	}
}

// WithClock 替換時間來源（測試用）
func (uc *RecordDonationUseCase) WithClock(clock Clock) *RecordDonationUseCase {
	uc.clock = clock
	return uc
}

// Execute 記錄一筆捐款並結算成就
//
// 錯誤處理：
//   - ErrInvalidAssociationID / ErrInvalidAmount / ErrInvalidDonationType /
//     ErrInvalidReceiptPreferences / ErrInvalidUserID：驗證失敗，不寫入任何資料
//   - 捐款寫入失敗：包裝後返回，不執行後續步驟
func (uc *RecordDonationUseCase) Execute(ctx context.Context, session Session, cmd RecordDonationCommand) (*RecordDonationResult, error) {
	// 1. Validated
	d, err := uc.buildDonation(session, cmd)
	if err != nil {
		return nil, err
	}

	// 2. Persisted
	if err := uc.donationRepo.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to save donation: %w", err)
	}
	if err := uc.publisher.PublishBatch(ctx, d.PullEvents()); err != nil {
		uc.logger.WarnContext(ctx, "failed to publish donation events", slog.Any("error", err))
	}

	result := &RecordDonationResult{
		DonationID:     d.DonationID().String(),
		CreatedAt:      d.CreatedAt(),
		UnlockedBadges: make([]UnlockedBadge, 0),
	}

	// 3. LedgerEvaluated
	// 匿名捐款不做任何成就或目標寫入
	if d.IsAnonymous() {
		return result, nil
	}

	var (
		history       []*donation.Donation
		held          achievement.BadgeSet
		goalCompleted bool
	)

	// 不使用 errgroup.WithContext：帳本載入失敗不應取消目標偵測
	var g errgroup.Group
	g.Go(func() error {
		goalCompleted = uc.detector.Detect(ctx, d)
		return nil
	})
	g.Go(func() error {
		h, err := uc.donationRepo.FindByUserID(ctx, d.UserID())
		if err != nil {
			return fmt.Errorf("failed to load donation history: %w", err)
		}
		history = donation.MergeDonation(h, d)
		return nil
	})
	g.Go(func() error {
		b, err := uc.achievementRepo.FindBadges(ctx, d.UserID())
		if err != nil {
			return fmt.Errorf("failed to load badges: %w", err)
		}
		held = b
		return nil
	})
	ledgerErr := g.Wait()
	result.GoalCompleted = goalCompleted

	if ledgerErr != nil {
		uc.logger.ErrorContext(ctx, "ledger evaluation skipped",
			slog.String("donation_id", result.DonationID),
			slog.String("user_id", d.UserID().String()),
			slog.Any("error", ledgerErr),
		)
		// 目標已由本次寫入完成，completer 之後無法再取得
		if goalCompleted {
			result.UnlockedBadges = uc.unlocker.Unlock(ctx, d.UserID(), []achievement.BadgeID{achievement.BadgeCompleter})
		}
		return result, nil
	}

	// 4. AchievementsApplied
	facts := achievement.Facts{
		Ledger:        uc.ledgerService.Calculate(history),
		AssociationID: d.AssociationID(),
		CompletedGoal: goalCompleted,
	}
	candidates := uc.evaluator.Evaluate(facts, held)
	result.UnlockedBadges = uc.unlocker.Unlock(ctx, d.UserID(), candidates)

	// 5. Reported
	uc.logger.InfoContext(ctx, "donation recorded",
		slog.String("donation_id", result.DonationID),
		slog.String("association_id", d.AssociationID().String()),
		slog.Int64("total_amount", facts.Ledger.TotalAmount.Value()),
		slog.Int("unlocked_badges", len(result.UnlockedBadges)),
	)
	return result, nil
}

// buildDonation 驗證命令並建立聚合
func (uc *RecordDonationUseCase) buildDonation(session Session, cmd RecordDonationCommand) (*donation.Donation, error) {
	userID, err := session.donor()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve donor: %w", err)
	}
	associationID, err := donation.NewAssociationID(cmd.AssociationID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse association ID: %w", err)
	}
	amount, err := donation.AmountFromDecimal(cmd.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}
	donationType, err := donation.ParseDonationType(cmd.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to parse donation type: %w", err)
	}

	d, err := donation.NewDonation(
		userID,
		associationID,
		amount,
		donationType,
		donation.ReceiptPreferences{WantReceipt: cmd.WantReceipt, MonthlyReceipt: cmd.MonthlyReceipt},
		uc.clock(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create donation: %w", err)
	}
	return d, nil
}
