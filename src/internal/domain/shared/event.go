package shared

import (
	"context"
	"time"
)

// DomainEvent 領域事件基礎介面
type DomainEvent interface {
	EventID() string       // 事件唯一標識
	EventType() string     // 事件類型，例如 "donation.recorded"
	OccurredAt() time.Time // 發生時間
	AggregateID() string   // 聚合根 ID
}

// EventPublisher 事件發布器介面
//
// 介面定義在 Domain Layer，由 Infrastructure 實作。
// 發布失敗不應影響已持久化的狀態，呼叫者只記錄錯誤。
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	PublishBatch(ctx context.Context, events []DomainEvent) error
}

// EventSource 持有待發布事件的聚合根
type EventSource interface {
	PullEvents() []DomainEvent
}

// NopEventPublisher 丟棄所有事件（測試或未設定發布器時使用）
type NopEventPublisher struct{}

// Publish 實現 EventPublisher
func (NopEventPublisher) Publish(context.Context, DomainEvent) error { return nil }

// PublishBatch 實現 EventPublisher
func (NopEventPublisher) PublishBatch(context.Context, []DomainEvent) error { return nil }
