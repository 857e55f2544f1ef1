package donation

import (
	"time"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/shared"
)

// ===========================
// Goal 聚合根
// ===========================

// Goal 協會募款目標
//
// 不變條件：
// - 每個協會最多一個目標（由倉儲唯一約束保證）
// - completed 只能 false → true 一次
// - completedBy / completedAt 只在該轉換時設定
// - 目標建立前的捐款不計入進度
type Goal struct {
	goalID        GoalID
	associationID AssociationID
	targetAmount  Amount
	createdAt     time.Time

	completed   bool
	completedAt *time.Time
	completedBy UserID

	events []shared.DomainEvent
}

// NewGoal 建立新的募款目標
func NewGoal(associationID AssociationID, target Amount, createdAt time.Time) (*Goal, error) {
	if associationID.IsEmpty() {
		return nil, ErrInvalidAssociationID.WithContext("reason", "associationID cannot be empty")
	}
	if target.Value() <= 0 {
		return nil, ErrInvalidAmount.WithContext("target", target.Value())
	}

	return &Goal{
		goalID:        NewGoalID(),
		associationID: associationID,
		targetAmount:  target,
		createdAt:     createdAt.UTC(),
		events:        make([]shared.DomainEvent, 0),
	}, nil
}

// ReconstructGoal 從持久化存儲重建
func ReconstructGoal(
	goalID GoalID,
	associationID AssociationID,
	targetAmount int64,
	createdAt time.Time,
	completed bool,
	completedAt *time.Time,
	completedBy UserID,
) (*Goal, error) {
	if goalID.IsEmpty() {
		return nil, ErrInvalidGoalID.WithContext("reason", "invalid goal ID in database")
	}
	target, err := NewAmount(targetAmount)
	if err != nil {
		return nil, ErrCorruptedData.WithContext(
			"goal_id", goalID.String(),
			"target_amount", targetAmount,
		)
	}
	if completed && completedAt == nil {
		return nil, ErrCorruptedData.WithContext(
			"goal_id", goalID.String(),
			"reason", "completed goal without completedAt",
		)
	}

	var at *time.Time
	if completedAt != nil {
		utc := completedAt.UTC()
		at = &utc
	}

	return &Goal{
		goalID:        goalID,
		associationID: associationID,
		targetAmount:  target,
		createdAt:     createdAt.UTC(),
		completed:     completed,
		completedAt:   at,
		completedBy:   completedBy,
		events:        make([]shared.DomainEvent, 0),
	}, nil
}

// GoalID 目標 ID
func (g *Goal) GoalID() GoalID { return g.goalID }

// AssociationID 協會
func (g *Goal) AssociationID() AssociationID { return g.associationID }

// TargetAmount 目標金額
func (g *Goal) TargetAmount() Amount { return g.targetAmount }

// CreatedAt 建立時間
func (g *Goal) CreatedAt() time.Time { return g.createdAt }

// IsCompleted 是否已完成
func (g *Goal) IsCompleted() bool { return g.completed }

// CompletedAt 完成時間（未完成為 nil）
func (g *Goal) CompletedAt() *time.Time { return g.completedAt }

// CompletedBy 完成者（未完成或匿名完成為零值）
func (g *Goal) CompletedBy() UserID { return g.completedBy }

// Counts 捐款是否計入此目標
func (g *Goal) Counts(d *Donation) bool {
	return d.AssociationID().Equals(g.associationID) && !d.CreatedAt().Before(g.createdAt)
}

// RaisedAmount 計算目標建立後的募得金額
func (g *Goal) RaisedAmount(donations []*Donation) Amount {
	raised := ZeroAmount()
	for _, d := range donations {
		if g.Counts(d) {
			raised = raised.Add(d.Amount())
		}
	}
	return raised
}

// IsSatisfiedBy 募得金額是否達標
func (g *Goal) IsSatisfiedBy(donations []*Donation) bool {
	return g.RaisedAmount(donations).GreaterThanOrEqual(g.targetAmount)
}

// MarkCompleted 標記完成（只能發生一次）
//
// 此方法只改變記憶體中的聚合；跨請求的唯一性由
// GoalRepository.MarkCompleted 的條件寫入保證。
func (g *Goal) MarkCompleted(by UserID, at time.Time) error {
	if by.IsAnonymous() {
		return ErrInvalidUserID.WithContext("goal_id", g.goalID.String())
	}
	if g.completed {
		return ErrGoalAlreadyCompleted.WithContext(
			"goal_id", g.goalID.String(),
			"completed_by", g.completedBy.String(),
		)
	}

	utc := at.UTC()
	g.completed = true
	g.completedAt = &utc
	g.completedBy = by

	g.events = append(g.events, NewGoalCompletedEvent(g))
	return nil
}

// PullEvents 取出並清空待發布事件
func (g *Goal) PullEvents() []shared.DomainEvent {
	events := g.events
	g.events = make([]shared.DomainEvent, 0)
	return events
}
