package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/roseyco/agency-portal/internal/core/domain"
	"github.com/roseyco/agency-portal/internal/core/ports"
	"github.com/roseyco/agency-portal/internal/pkg/metrics"
)

type auditService struct {
	repo ports.SessionEventRepository
	log  zerolog.Logger
}

// NewAuditService returns a SessionEventRecorder. With a nil repo events are
// only written to the log.
func NewAuditService(repo ports.SessionEventRepository, log zerolog.Logger) ports.SessionEventRecorder {
	return &auditService{repo: repo, log: log}
}

// Record persists one session event.
func (s *auditService) Record(ctx context.Context, event domain.SessionEvent) error {
	s.log.Info().
		Str("context_id", event.ContextID).
		Str("kind", string(event.Kind)).
		Str("email", event.Email).
		Str("role", string(event.Role)).
		Str("reason", event.Reason).
		Time("at", event.At).
		Msg("session event")

	if s.repo == nil {
		metrics.SessionEventsRecordedTotal.WithLabelValues(string(event.Kind), "ok").Inc()
		return nil
	}

	if err := s.repo.InsertEvent(ctx, &event); err != nil {
		metrics.SessionEventsRecordedTotal.WithLabelValues(string(event.Kind), "error").Inc()
		return fmt.Errorf("record session event: %w", err)
	}
	metrics.SessionEventsRecordedTotal.WithLabelValues(string(event.Kind), "ok").Inc()
	return nil
}
