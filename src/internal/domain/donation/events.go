package donation

import (
	"time"

	"github.com/google/uuid"
)

// ===========================
// DonationRecorded 領域事件
// ===========================

// DonationRecordedEvent 捐款已記錄事件
type DonationRecordedEvent struct {
	eventID       string
	donationID    DonationID
	userID        UserID
	associationID AssociationID
	amount        Amount
	occurredAt    time.Time
}

// NewDonationRecordedEvent 建立捐款已記錄事件
func NewDonationRecordedEvent(d *Donation) *DonationRecordedEvent {
	return &DonationRecordedEvent{
		eventID:       uuid.New().String(),
		donationID:    d.donationID,
		userID:        d.userID,
		associationID: d.associationID,
		amount:        d.amount,
		occurredAt:    time.Now(),
	}
}

// EventID 實現 DomainEvent 介面
func (e *DonationRecordedEvent) EventID() string { return e.eventID }

// EventType 實現 DomainEvent 介面
func (e *DonationRecordedEvent) EventType() string { return "donation.recorded" }

// OccurredAt 實現 DomainEvent 介面
func (e *DonationRecordedEvent) OccurredAt() time.Time { return e.occurredAt }

// AggregateID 實現 DomainEvent 介面
func (e *DonationRecordedEvent) AggregateID() string { return e.donationID.String() }

// UserID 捐款人
func (e *DonationRecordedEvent) UserID() UserID { return e.userID }

// AssociationID 受贈協會
func (e *DonationRecordedEvent) AssociationID() AssociationID { return e.associationID }

// Amount 金額
func (e *DonationRecordedEvent) Amount() Amount { return e.amount }

// ===========================
// DonationStatusChanged 領域事件
// ===========================

// DonationStatusChangedEvent 捐款狀態變更事件
type DonationStatusChangedEvent struct {
	eventID    string
	donationID DonationID
	from       DonationStatus
	to         DonationStatus
	occurredAt time.Time
}

// NewDonationStatusChangedEvent 建立狀態變更事件
func NewDonationStatusChangedEvent(id DonationID, from, to DonationStatus) *DonationStatusChangedEvent {
	return &DonationStatusChangedEvent{
		eventID:    uuid.New().String(),
		donationID: id,
		from:       from,
		to:         to,
		occurredAt: time.Now(),
	}
}

// EventID 實現 DomainEvent 介面
func (e *DonationStatusChangedEvent) EventID() string { return e.eventID }

// EventType 實現 DomainEvent 介面
func (e *DonationStatusChangedEvent) EventType() string { return "donation.status_changed" }

// OccurredAt 實現 DomainEvent 介面
func (e *DonationStatusChangedEvent) OccurredAt() time.Time { return e.occurredAt }

// AggregateID 實現 DomainEvent 介面
func (e *DonationStatusChangedEvent) AggregateID() string { return e.donationID.String() }

// From 原狀態
func (e *DonationStatusChangedEvent) From() DonationStatus { return e.from }

// To 新狀態
func (e *DonationStatusChangedEvent) To() DonationStatus { return e.to }

// ===========================
// GoalCompleted 領域事件
// ===========================

// GoalCompletedEvent 募款目標已完成事件
type GoalCompletedEvent struct {
	eventID       string
	goalID        GoalID
	associationID AssociationID
	completedBy   UserID
	occurredAt    time.Time
}

// NewGoalCompletedEvent 建立目標完成事件
func NewGoalCompletedEvent(g *Goal) *GoalCompletedEvent {
	return &GoalCompletedEvent{
		eventID:       uuid.New().String(),
		goalID:        g.goalID,
		associationID: g.associationID,
		completedBy:   g.completedBy,
		occurredAt:    time.Now(),
	}
}

// EventID 實現 DomainEvent 介面
func (e *GoalCompletedEvent) EventID() string { return e.eventID }

// EventType 實現 DomainEvent 介面
func (e *GoalCompletedEvent) EventType() string { return "goal.completed" }

// OccurredAt 實現 DomainEvent 介面
func (e *GoalCompletedEvent) OccurredAt() time.Time { return e.occurredAt }

// AggregateID 實現 DomainEvent 介面
func (e *GoalCompletedEvent) AggregateID() string { return e.goalID.String() }

// AssociationID 協會
func (e *GoalCompletedEvent) AssociationID() AssociationID { return e.associationID }

// CompletedBy 完成者
func (e *GoalCompletedEvent) CompletedBy() UserID { return e.completedBy }
