package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portssvc "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/middleware"
	"github.com/Adams-ibr/Commodity-sub000/internal/platform/clock"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Clock     clock.Clock
	Publisher portssvc.EventPublisher
}

// ServiceOption configures the shared parts of a service.
type ServiceOption func(*BaseService)

// WithClock sets the clock used for timestamps and "today".
func WithClock(c clock.Clock) ServiceOption {
	return func(s *BaseService) {
		s.Clock = c
	}
}

// WithEventPublisher sets where domain events are published after commit.
func WithEventPublisher(p portssvc.EventPublisher) ServiceOption {
	return func(s *BaseService) {
		s.Publisher = p
	}
}

func applyOptions(base *BaseService, options []ServiceOption) {
	for _, option := range options {
		option(base)
	}
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the current instant from the injected clock.
func (s *BaseService) Now() time.Time {
	if s.Clock == nil {
		return clock.System{}.Now()
	}
	return s.Clock.Now()
}

// Today is Now truncated to a calendar date.
func (s *BaseService) Today() time.Time {
	return domain.NormalizeDate(s.Now())
}

// newAuditFields stamps creation and update with the same user and instant.
func (s *BaseService) newAuditFields(userID string) domain.AuditFields {
	now := s.Now()
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

func (s *BaseService) touch(fields *domain.AuditFields, userID string) {
	fields.LastUpdatedAt = s.Now()
	fields.LastUpdatedBy = userID
}

// publish hands the event to the publisher, if one is configured.
func (s *BaseService) publish(ctx context.Context, event domain.Event) {
	if s.Publisher == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.Now()
	}
	s.Publisher.Publish(ctx, event)
}
