package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/donation"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ===========================
// CreateGoal Use Case
// ===========================

// CreateGoalCommand 建立協會募款目標
type CreateGoalCommand struct {
	AssociationID string
	TargetAmount  decimal.Decimal
}

// GoalProgressResult 目標與目前進度
type GoalProgressResult struct {
	GoalID        string
	AssociationID string
	TargetAmount  int64
	RaisedAmount  int64
	Completed     bool
	CompletedBy   string
	CompletedAt   *time.Time
	CreatedAt     time.Time
}

// CreateGoalUseCase 建立募款目標
//
// 每個協會只能有一個目標，由存儲的唯一約束保證（不做 check-then-insert）。
// 建立之前的捐款不計入此目標。
type CreateGoalUseCase struct {
	goalRepo  donation.GoalRepository
	txManager shared.TransactionManager
	clock     Clock
}

// NewCreateGoalUseCase 建構函數
func NewCreateGoalUseCase(goalRepo donation.GoalRepository, txManager shared.TransactionManager) *CreateGoalUseCase {
	return &CreateGoalUseCase{goalRepo: goalRepo, txManager: txManager, clock: systemClock}
}

// WithClock 替換時間來源（測試用）
func (uc *CreateGoalUseCase) WithClock(clock Clock) *CreateGoalUseCase {
	uc.clock = clock
	return uc
}

// Execute 建立目標
//
// 錯誤處理：
// - ErrInvalidAssociationID / ErrInvalidAmount：輸入無效
// - ErrGoalAlreadyExists：協會已有目標
func (uc *CreateGoalUseCase) Execute(ctx context.Context, cmd CreateGoalCommand) (*GoalProgressResult, error) {
	associationID, err := donation.NewAssociationID(cmd.AssociationID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse association ID: %w", err)
	}
	target, err := donation.AmountFromDecimal(cmd.TargetAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse target amount: %w", err)
	}

	goal, err := donation.NewGoal(associationID, target, uc.clock())
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	err = uc.txManager.InTransaction(ctx, func(ctx context.Context) error {
		if err := uc.goalRepo.Save(ctx, goal); err != nil {
			if errors.Is(err, donation.ErrGoalAlreadyExists) {
				return fmt.Errorf("association already has a goal: %w", err)
			}
			return fmt.Errorf("failed to save goal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toGoalProgress(goal, donation.ZeroAmount()), nil
}

// ===========================
// GetGoalProgress Use Case
// ===========================

// GetGoalProgressUseCase 查詢協會目標進度
type GetGoalProgressUseCase struct {
	goalRepo     donation.GoalRepository
	donationRepo donation.DonationRepository
}

// NewGetGoalProgressUseCase 建構函數
func NewGetGoalProgressUseCase(goalRepo donation.GoalRepository, donationRepo donation.DonationRepository) *GetGoalProgressUseCase {
	return &GetGoalProgressUseCase{goalRepo: goalRepo, donationRepo: donationRepo}
}

// Execute 返回目標與募得金額；協會沒有目標時返回 ErrGoalNotFound
func (uc *GetGoalProgressUseCase) Execute(ctx context.Context, associationID string) (*GoalProgressResult, error) {
	assoc, err := donation.NewAssociationID(associationID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse association ID: %w", err)
	}

	goal, err := uc.goalRepo.FindByAssociationID(ctx, assoc)
	if err != nil {
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}

	contributions, err := uc.donationRepo.FindByAssociationID(ctx, assoc, goal.CreatedAt())
	if err != nil {
		return nil, fmt.Errorf("failed to load goal contributions: %w", err)
	}

	return toGoalProgress(goal, goal.RaisedAmount(contributions)), nil
}

func toGoalProgress(goal *donation.Goal, raised donation.Amount) *GoalProgressResult {
	return &GoalProgressResult{
		GoalID:        goal.GoalID().String(),
		AssociationID: goal.AssociationID().String(),
		TargetAmount:  goal.TargetAmount().Value(),
		RaisedAmount:  raised.Value(),
		Completed:     goal.IsCompleted(),
		CompletedBy:   goal.CompletedBy().String(),
		CompletedAt:   goal.CompletedAt(),
		CreatedAt:     goal.CreatedAt(),
	}
}
