package achievement

import (
	"time"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/donation"
	"github.com/google/uuid"
)

// BadgeUnlockedEvent 徽章已解鎖事件
type BadgeUnlockedEvent struct {
	eventID    string
	userID     donation.UserID
	badgeID    BadgeID
	occurredAt time.Time
}

// NewBadgeUnlockedEvent 建立徽章解鎖事件
func NewBadgeUnlockedEvent(userID donation.UserID, badgeID BadgeID) *BadgeUnlockedEvent {
	return &BadgeUnlockedEvent{
		eventID:    uuid.New().String(),
		userID:     userID,
		badgeID:    badgeID,
		occurredAt: time.Now(),
	}
}

// EventID 實現 DomainEvent 介面
func (e *BadgeUnlockedEvent) EventID() string { return e.eventID }

// EventType 實現 DomainEvent 介面
func (e *BadgeUnlockedEvent) EventType() string { return "achievement.badge_unlocked" }

// OccurredAt 實現 DomainEvent 介面
func (e *BadgeUnlockedEvent) OccurredAt() time.Time { return e.occurredAt }

// AggregateID 實現 DomainEvent 介面（使用者）
func (e *BadgeUnlockedEvent) AggregateID() string { return e.userID.String() }

// BadgeID 解鎖的徽章
func (e *BadgeUnlockedEvent) BadgeID() BadgeID { return e.badgeID }
