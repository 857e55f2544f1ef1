package events

import (
	"context"
	"log/slog"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/shared"
)

// LogPublisher 將領域事件寫入結構化日誌
//
// 沒有外部訊息系統時作為預設的 EventPublisher；不會返回錯誤。
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher 建構函數
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "events")}
}

// Publish 實現 shared.EventPublisher
func (p *LogPublisher) Publish(ctx context.Context, event shared.DomainEvent) error {
	if event == nil {
		return nil
	}
	p.logger.InfoContext(ctx, "domain event",
		"event_id", event.EventID(),
		"event_type", event.EventType(),
		"aggregate_id", event.AggregateID(),
		slog.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

// PublishBatch 依序發布
func (p *LogPublisher) PublishBatch(ctx context.Context, events []shared.DomainEvent) error {
	for _, event := range events {
		if err := p.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
