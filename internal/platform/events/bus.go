// Package events is an in-process, synchronous domain event bus.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/Adams-ibr/Commodity-sub000/internal/middleware"
)

// Handler consumes one event. A returned error is logged and does not stop
// delivery to other handlers.
type Handler func(ctx context.Context, event domain.Event) error

// Bus dispatches events to the handlers subscribed to their type.
type Bus struct {
	mu       sync.RWMutex
	handlers map[domain.EventType][]Handler
	any      []Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[domain.EventType][]Handler)}
}

// Subscribe registers h for the given event types. With no types h receives every event.
func (b *Bus) Subscribe(h Handler, types ...domain.EventType) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(types) == 0 {
		b.any = append(b.any, h)
		return
	}
	for _, t := range types {
		b.handlers[t] = append(b.handlers[t], h)
	}
}

// Publish delivers event to its subscribers in registration order.
func (b *Bus) Publish(ctx context.Context, event domain.Event) {
	b.mu.RLock()
	targets := make([]Handler, 0, len(b.handlers[event.Type])+len(b.any))
	targets = append(targets, b.handlers[event.Type]...)
	targets = append(targets, b.any...)
	b.mu.RUnlock()

	for _, h := range targets {
		if err := b.deliver(ctx, h, event); err != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Event handler failed",
				slog.String("event_type", string(event.Type)),
				slog.String("company_id", event.CompanyID),
				slog.String("error", err.Error()))
		}
	}
}

func (b *Bus) deliver(ctx context.Context, h Handler, event domain.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(ctx, event)
}

// AuditLogger returns a handler that writes every event as a structured log line.
func AuditLogger(logger *slog.Logger) Handler {
	return func(ctx context.Context, event domain.Event) error {
		logger.Info("Domain event",
			slog.String("event_type", string(event.Type)),
			slog.String("company_id", event.CompanyID),
			slog.Time("occurred_at", event.OccurredAt),
			slog.Any("payload", event.Payload))
		return nil
	}
}
