package ports

import (
	"context"

	"github.com/roseyco/agency-portal/internal/core/domain"
)

// SessionEventPublisher hands session events to the audit pipeline without blocking the caller.
type SessionEventPublisher interface {
	Publish(event domain.SessionEvent)
}

// SessionEventRecorder processes a single dequeued event.
type SessionEventRecorder interface {
	Record(ctx context.Context, event domain.SessionEvent) error
}

// SessionEventRepository persists audit events.
type SessionEventRepository interface {
	InsertEvent(ctx context.Context, event *domain.SessionEvent) error
}
