package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/roseyco/agency-portal/internal/core/domain"
	"github.com/roseyco/agency-portal/internal/core/ports"
	"github.com/roseyco/agency-portal/internal/pkg/metrics"
)

// SessionKey is the durable storage slot holding the session snapshot.
// Nothing but SessionStore writes it.
const SessionKey = "user"

const defaultLoginTimeout = 10 * time.Second

// SessionStore is the single source of truth for who is logged in to one
// browser context.
type SessionStore struct {
	contextID string
	storage   ports.KeyValueStore
	auth      ports.Authenticator
	events    ports.SessionEventPublisher
	timeout   time.Duration
	log       zerolog.Logger

	gate *LoginGate

	mu      sync.RWMutex
	current *domain.Session
	// gen counts writes to current; Refresh only applies a read taken at
	// the same generation.
	gen uint64
}

// SessionStoreOptions carries the optional collaborators of a SessionStore.
type SessionStoreOptions struct {
	ContextID    string
	Events       ports.SessionEventPublisher
	LoginTimeout time.Duration
	Logger       zerolog.Logger
	// Gate defaults to a gate private to this store.
	Gate *LoginGate
}

func NewSessionStore(storage ports.KeyValueStore, auth ports.Authenticator, opts SessionStoreOptions) *SessionStore {
	timeout := opts.LoginTimeout
	if timeout <= 0 {
		timeout = defaultLoginTimeout
	}
	events := opts.Events
	if events == nil {
		events = NopPublisher{}
	}
	gate := opts.Gate
	if gate == nil {
		gate = NewLoginGate()
	}
	return &SessionStore{
		contextID: opts.ContextID,
		storage:   storage,
		auth:      auth,
		events:    events,
		gate:      gate,
		timeout:   timeout,
		log:       opts.Logger.With().Str("context_id", opts.ContextID).Logger(),
	}
}

// Restore loads the persisted snapshot into memory. A missing, malformed or
// unreadable snapshot yields nil; none of those are reported as errors.
func (s *SessionStore) Restore(ctx context.Context) *domain.Session {
	raw, ok, err := s.storage.Get(ctx, SessionKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("session snapshot unreadable, starting logged out")
		metrics.SessionRestoresTotal.WithLabelValues("corrupt").Inc()
		s.publish(domain.EventRestoreCorrupt, "", "", err.Error())
		return s.set(nil)
	}
	if !ok {
		metrics.SessionRestoresTotal.WithLabelValues("absent").Inc()
		return s.set(nil)
	}

	sess, err := domain.UnmarshalSnapshot(raw)
	if err != nil {
		s.log.Warn().Err(err).Msg("discarding malformed session snapshot")
		metrics.SessionRestoresTotal.WithLabelValues("corrupt").Inc()
		s.publish(domain.EventRestoreCorrupt, "", "", err.Error())
		return s.set(nil)
	}

	metrics.SessionRestoresTotal.WithLabelValues("restored").Inc()
	s.log.Debug().Str("email", sess.Email).Str("role", string(sess.Role)).Msg("session restored")
	return s.set(sess)
}

// Login authenticates and persists a new session. Empty credentials are the
// caller's responsibility, but are rejected here too with ErrValidation.
// On any error the current session is left as it was.
func (s *SessionStore) Login(ctx context.Context, email, password string, role domain.Role) (*domain.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrValidation
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRole, role)
	}
	if !s.gate.TryAcquire(s.contextID) {
		metrics.LoginsTotal.WithLabelValues(string(role), "in_progress").Inc()
		return nil, domain.ErrLoginInProgress
	}
	defer s.gate.Release(s.contextID)

	start := time.Now()
	sess, err := s.login(ctx, email, password, role)
	result := loginResult(err)
	metrics.LoginsTotal.WithLabelValues(string(role), result).Inc()
	metrics.LoginDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())

	if err != nil {
		s.log.Info().Err(err).Str("email", email).Str("role", string(role)).Msg("login failed")
		s.publish(domain.EventLoginFailed, email, role, result)
		return nil, err
	}

	s.log.Info().Str("email", email).Str("role", string(role)).Msg("login succeeded")
	s.publish(domain.EventLoginSucceeded, email, role, "")
	return s.set(sess), nil
}

func (s *SessionStore) login(ctx context.Context, email, password string, role domain.Role) (*domain.Session, error) {
	authCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	sess, err := s.auth.Authenticate(authCtx, email, password, role)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, domain.ErrNetwork) {
			err = fmt.Errorf("%w: %w", domain.ErrNetwork, err)
		}
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("authenticator returned no session")
	}

	snapshot, err := sess.MarshalSnapshot()
	if err != nil {
		return nil, err
	}
	if err := s.storage.Set(ctx, SessionKey, snapshot); err != nil {
		return nil, fmt.Errorf("%w: persist session: %w", domain.ErrNetwork, err)
	}
	return sess, nil
}

// Logout clears the snapshot and the in-memory session. It never fails;
// storage errors are logged and the in-memory session is cleared regardless.
func (s *SessionStore) Logout(ctx context.Context) {
	prev := s.Current()
	if err := s.storage.Delete(ctx, SessionKey); err != nil {
		s.log.Error().Err(err).Msg("failed to delete session snapshot")
	}
	s.set(nil)
	metrics.LogoutsTotal.Inc()

	if prev != nil {
		s.log.Info().Str("email", prev.Email).Msg("logged out")
		s.publish(domain.EventLogout, prev.Email, prev.Role, "")
	}
}

// Current returns a copy of the in-memory session, or nil.
func (s *SessionStore) Current() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// LoginPending reports whether a login is in flight for this browser context.
func (s *SessionStore) LoginPending() bool {
	return s.gate.Held(s.contextID)
}

// Refresh re-reads the snapshot so that a logout, login or key expiry made
// through another replica or an evicted predecessor becomes visible. A read
// error keeps the current session. Nothing happens while a login is in
// flight, and a read that raced a local Login or Logout is discarded.
func (s *SessionStore) Refresh(ctx context.Context) *domain.Session {
	if s.LoginPending() {
		return s.Current()
	}

	s.mu.RLock()
	gen := s.gen
	s.mu.RUnlock()

	raw, ok, err := s.storage.Get(ctx, SessionKey)
	if err != nil {
		s.log.Debug().Err(err).Msg("session refresh skipped, storage unreadable")
		return s.Current()
	}

	var sess *domain.Session
	if ok {
		if sess, err = domain.UnmarshalSnapshot(raw); err != nil {
			s.log.Warn().Err(err).Msg("discarding malformed session snapshot")
			sess = nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == gen {
		s.current = sess.Clone()
	}
	return s.current.Clone()
}

func (s *SessionStore) set(sess *domain.Session) *domain.Session {
	s.mu.Lock()
	s.current = sess.Clone()
	s.gen++
	s.mu.Unlock()
	return sess
}

func (s *SessionStore) publish(kind domain.SessionEventKind, email string, role domain.Role, reason string) {
	s.events.Publish(domain.SessionEvent{
		ContextID: s.contextID,
		Kind:      kind,
		Email:     email,
		Role:      role,
		Reason:    reason,
		At:        time.Now().UTC(),
	})
}

func loginResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrNetwork):
		return "network"
	default:
		return "error"
	}
}

// NopPublisher discards session events.
type NopPublisher struct{}

func (NopPublisher) Publish(domain.SessionEvent) {}
