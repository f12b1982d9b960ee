package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/roseyco/agency-portal/internal/core/domain"
	"github.com/roseyco/agency-portal/internal/core/ports"
	"github.com/roseyco/agency-portal/internal/infrastructure/storage/memory"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubAuthenticator struct {
	fn func(ctx context.Context, email, password string, role domain.Role) (*domain.Session, error)
}

func (a *stubAuthenticator) Authenticate(ctx context.Context, email, password string, role domain.Role) (*domain.Session, error) {
	return a.fn(ctx, email, password, role)
}

type failingStorage struct {
	getErr, setErr, delErr error
}

func (f *failingStorage) Get(context.Context, string) (string, bool, error) {
	return "", false, f.getErr
}

func (f *failingStorage) Set(context.Context, string, string) error { return f.setErr }

func (f *failingStorage) Delete(context.Context, string) error { return f.delErr }

// flakyStorage fails reads while failGet is set.
type flakyStorage struct {
	ports.KeyValueStore
	mu      sync.Mutex
	failGet bool
}

func (f *flakyStorage) setFailing(v bool) {
	f.mu.Lock()
	f.failGet = v
	f.mu.Unlock()
}

func (f *flakyStorage) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	fail := f.failGet
	f.mu.Unlock()
	if fail {
		return "", false, errors.New("connection refused")
	}
	return f.KeyValueStore.Get(ctx, key)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.SessionEvent
}

func (p *recordingPublisher) Publish(e domain.SessionEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) kinds() []domain.SessionEventKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.SessionEventKind, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Kind)
	}
	return out
}

func newTestStore(kv ports.KeyValueStore, auth ports.Authenticator, pub ports.SessionEventPublisher) *SessionStore {
	return NewSessionStore(kv, auth, SessionStoreOptions{
		ContextID:    "ctx-1",
		Events:       pub,
		LoginTimeout: time.Second,
		Logger:       zerolog.Nop(),
	})
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestSessionStore_LoginConcreteScenario(t *testing.T) {
	kv := memory.NewStore().ForContext("ctx-1")
	store := newTestStore(kv, NewMockAuthenticator(20*time.Millisecond), nil)

	start := time.Now()
	sess, err := store.Login(context.Background(), "a@b.com", "pw", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Fatalf("login resolved before the simulated delay")
	}
	if sess.Name != "Allan Smith" || sess.Email != "a@b.com" || sess.Role != domain.RoleAdmin {
		t.Fatalf("unexpected session: %+v", sess)
	}

	raw, ok, _ := kv.Get(context.Background(), SessionKey)
	if !ok {
		t.Fatalf("expected snapshot under %q", SessionKey)
	}
	persisted, err := domain.UnmarshalSnapshot(raw)
	if err != nil || persisted.Email != "a@b.com" {
		t.Fatalf("unexpected snapshot %q: %v", raw, err)
	}
}

func TestSessionStore_RoundTripAcrossRestart(t *testing.T) {
	backing := memory.NewStore()

	first := newTestStore(backing.ForContext("ctx-1"), NewMockAuthenticator(0), nil)
	if _, err := first.Login(context.Background(), "client@acme.io", "pw", domain.RoleClient); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// A new store over the same durable storage simulates a page reload.
	second := newTestStore(backing.ForContext("ctx-1"), NewMockAuthenticator(0), nil)
	if second.Current() != nil {
		t.Fatalf("fresh store should start without a session")
	}
	restored := second.Restore(context.Background())
	if restored == nil {
		t.Fatalf("expected restored session")
	}
	if restored.Email != "client@acme.io" || restored.Role != domain.RoleClient {
		t.Fatalf("unexpected restored session: %+v", restored)
	}
	if second.Current() == nil {
		t.Fatalf("restored session should be held in memory")
	}
}

func TestSessionStore_LogoutIsIdempotent(t *testing.T) {
	kv := memory.NewStore().ForContext("ctx-1")
	pub := &recordingPublisher{}
	store := newTestStore(kv, NewMockAuthenticator(0), pub)

	if _, err := store.Login(context.Background(), "a@b.com", "pw", domain.RoleAdmin); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	store.Logout(context.Background())
	store.Logout(context.Background())

	if store.Current() != nil {
		t.Fatalf("expected no session after logout")
	}
	if _, ok, _ := kv.Get(context.Background(), SessionKey); ok {
		t.Fatalf("expected snapshot to be removed")
	}

	kinds := pub.kinds()
	if len(kinds) != 2 || kinds[0] != domain.EventLoginSucceeded || kinds[1] != domain.EventLogout {
		t.Fatalf("expected login + single logout event, got %v", kinds)
	}
}

func TestSessionStore_LogoutSwallowsStorageErrors(t *testing.T) {
	store := newTestStore(&failingStorage{delErr: errors.New("redis down")}, NewMockAuthenticator(0), nil)
	store.set(&domain.Session{ID: "1", Email: "a@b.com", Role: domain.RoleAdmin})

	store.Logout(context.Background())
	if store.Current() != nil {
		t.Fatalf("in-memory session must be cleared even when storage fails")
	}
}

func TestSessionStore_RestoreMalformedSnapshot(t *testing.T) {
	kv := memory.NewStore().ForContext("ctx-1")
	_ = kv.Set(context.Background(), SessionKey, "{not json")
	pub := &recordingPublisher{}
	store := newTestStore(kv, NewMockAuthenticator(0), pub)

	if got := store.Restore(context.Background()); got != nil {
		t.Fatalf("expected nil for malformed snapshot, got %+v", got)
	}
	if kinds := pub.kinds(); len(kinds) != 1 || kinds[0] != domain.EventRestoreCorrupt {
		t.Fatalf("expected restore_corrupt event, got %v", kinds)
	}
}

func TestSessionStore_RestoreAbsentAndUnreadable(t *testing.T) {
	empty := newTestStore(memory.NewStore().ForContext("ctx-1"), NewMockAuthenticator(0), nil)
	if got := empty.Restore(context.Background()); got != nil {
		t.Fatalf("expected nil when no snapshot, got %+v", got)
	}

	broken := newTestStore(&failingStorage{getErr: errors.New("timeout")}, NewMockAuthenticator(0), nil)
	if got := broken.Restore(context.Background()); got != nil {
		t.Fatalf("expected nil when storage unreadable, got %+v", got)
	}
}

func TestSessionStore_LoginValidation(t *testing.T) {
	called := false
	store := newTestStore(memory.NewStore().ForContext("ctx-1"), &stubAuthenticator{
		fn: func(context.Context, string, string, domain.Role) (*domain.Session, error) {
			called = true
			return nil, nil
		},
	}, nil)

	if _, err := store.Login(context.Background(), "", "pw", domain.RoleAdmin); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty email, got %v", err)
	}
	if _, err := store.Login(context.Background(), "a@b.com", "", domain.RoleAdmin); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty password, got %v", err)
	}
	if _, err := store.Login(context.Background(), "a@b.com", "pw", "guest"); !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	if called {
		t.Fatalf("authenticator must not be called for invalid input")
	}
}

func TestSessionStore_FailedLoginKeepsSession(t *testing.T) {
	kv := memory.NewStore().ForContext("ctx-1")
	fail := true
	store := newTestStore(kv, &stubAuthenticator{
		fn: func(_ context.Context, email, _ string, role domain.Role) (*domain.Session, error) {
			if fail {
				return nil, domain.ErrInvalidCredentials
			}
			return &domain.Session{ID: "7", Name: "Carol", Email: email, Role: role}, nil
		},
	}, nil)

	fail = false
	if _, err := store.Login(context.Background(), "carol@x.io", "pw", domain.RoleClient); err != nil {
		t.Fatalf("first login failed: %v", err)
	}

	fail = true
	if _, err := store.Login(context.Background(), "mallory@x.io", "bad", domain.RoleAdmin); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	cur := store.Current()
	if cur == nil || cur.Email != "carol@x.io" {
		t.Fatalf("session should be unchanged after failed login, got %+v", cur)
	}
	raw, _, _ := kv.Get(context.Background(), SessionKey)
	if persisted, _ := domain.UnmarshalSnapshot(raw); persisted == nil || persisted.Email != "carol@x.io" {
		t.Fatalf("snapshot should be unchanged after failed login, got %q", raw)
	}
}

func TestSessionStore_TimeoutBecomesNetworkError(t *testing.T) {
	store := NewSessionStore(memory.NewStore().ForContext("ctx-1"), &stubAuthenticator{
		fn: func(ctx context.Context, _, _ string, _ domain.Role) (*domain.Session, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}, SessionStoreOptions{LoginTimeout: 10 * time.Millisecond, Logger: zerolog.Nop()})

	_, err := store.Login(context.Background(), "a@b.com", "pw", domain.RoleAdmin)
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if store.Current() != nil {
		t.Fatalf("session must stay empty after timeout")
	}
	if store.LoginPending() {
		t.Fatalf("in-flight flag must be released after failure")
	}
}

func TestSessionStore_PersistFailureIsNetworkError(t *testing.T) {
	store := newTestStore(&failingStorage{setErr: errors.New("redis down")}, NewMockAuthenticator(0), nil)

	_, err := store.Login(context.Background(), "a@b.com", "pw", domain.RoleAdmin)
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if store.Current() != nil {
		t.Fatalf("session must not be set when persisting fails")
	}
}

func TestSessionStore_RejectsReentrantLogin(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	store := newTestStore(memory.NewStore().ForContext("ctx-1"), &stubAuthenticator{
		fn: func(_ context.Context, email, _ string, role domain.Role) (*domain.Session, error) {
			close(entered)
			<-release
			return &domain.Session{ID: "1", Name: "x", Email: email, Role: role}, nil
		},
	}, nil)

	done := make(chan error, 1)
	go func() {
		_, err := store.Login(context.Background(), "a@b.com", "pw", domain.RoleAdmin)
		done <- err
	}()

	<-entered
	if !store.LoginPending() {
		t.Fatalf("expected login to be pending")
	}
	if _, err := store.Login(context.Background(), "a@b.com", "pw", domain.RoleAdmin); !errors.Is(err, domain.ErrLoginInProgress) {
		t.Fatalf("expected ErrLoginInProgress, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	if store.Current() == nil {
		t.Fatalf("expected session after first login completes")
	}
}

func TestSessionStore_RefreshSeesExternalWrites(t *testing.T) {
	kv := memory.NewStore().ForContext("ctx-1")
	store := newTestStore(kv, NewMockAuthenticator(0), nil)
	store.Restore(context.Background())

	// Another replica logs in.
	_ = kv.Set(context.Background(), SessionKey, `{"id":"1","name":"Client User","email":"c@d.com","role":"client"}`)
	if s := store.Refresh(context.Background()); s == nil || s.Email != "c@d.com" {
		t.Fatalf("expected external login to be picked up, got %+v", s)
	}

	// And logs out again.
	_ = kv.Delete(context.Background(), SessionKey)
	if s := store.Refresh(context.Background()); s != nil {
		t.Fatalf("expected external logout to be picked up, got %+v", s)
	}
	if store.Current() != nil {
		t.Fatalf("current session must follow the refresh")
	}
}

func TestSessionStore_RefreshKeepsSessionOnReadError(t *testing.T) {
	kv := &flakyStorage{KeyValueStore: memory.NewStore().ForContext("ctx-1")}
	store := newTestStore(kv, NewMockAuthenticator(0), nil)
	if _, err := store.Login(context.Background(), "a@b.com", "pw", domain.RoleAdmin); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	kv.setFailing(true)
	if s := store.Refresh(context.Background()); s == nil || s.Email != "a@b.com" {
		t.Fatalf("unreadable storage must not log the user out, got %+v", s)
	}
}

func TestSessionStore_RefreshDiscardsMalformedSnapshot(t *testing.T) {
	kv := memory.NewStore().ForContext("ctx-1")
	store := newTestStore(kv, NewMockAuthenticator(0), nil)
	if _, err := store.Login(context.Background(), "a@b.com", "pw", domain.RoleAdmin); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	_ = kv.Set(context.Background(), SessionKey, "{not json")
	if s := store.Refresh(context.Background()); s != nil {
		t.Fatalf("expected malformed snapshot to clear the session, got %+v", s)
	}
}

func TestSessionStore_RefreshWaitsForPendingLogin(t *testing.T) {
	kv := memory.NewStore().ForContext("ctx-1")
	_ = kv.Set(context.Background(), SessionKey, `{"id":"1","name":"Client User","email":"c@d.com","role":"client"}`)
	release := make(chan struct{})
	entered := make(chan struct{})
	store := newTestStore(kv, &stubAuthenticator{
		fn: func(_ context.Context, email, _ string, role domain.Role) (*domain.Session, error) {
			close(entered)
			<-release
			return &domain.Session{ID: "2", Name: "Allan Smith", Email: email, Role: role}, nil
		},
	}, nil)
	store.Restore(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := store.Login(context.Background(), "a@b.com", "pw", domain.RoleAdmin)
		done <- err
	}()
	<-entered

	_ = kv.Delete(context.Background(), SessionKey)
	if s := store.Refresh(context.Background()); s == nil || s.Email != "c@d.com" {
		t.Fatalf("refresh must not touch the session while a login is pending, got %+v", s)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if s := store.Refresh(context.Background()); s == nil || s.Email != "a@b.com" {
		t.Fatalf("expected the new login after refresh, got %+v", s)
	}
}
