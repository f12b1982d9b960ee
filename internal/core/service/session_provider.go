package service

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"

	"github.com/roseyco/agency-portal/internal/core/domain"
	"github.com/roseyco/agency-portal/internal/core/ports"
	"github.com/roseyco/agency-portal/internal/pkg/metrics"
)

const restoreTimeout = 5 * time.Second

// ProviderState is what the route guard reads on every navigation.
type ProviderState struct {
	Session *domain.Session
	Loading bool
}

// Authenticated reports whether a session is present.
func (s ProviderState) Authenticated() bool {
	return s.Session != nil
}

// SessionProvider exposes one browser context's SessionStore to the guard,
// the navigation tree and the handlers. Restore runs exactly once.
type SessionProvider struct {
	store *SessionStore

	once  sync.Once
	ready chan struct{}
}

func NewSessionProvider(store *SessionStore) *SessionProvider {
	return &SessionProvider{store: store, ready: make(chan struct{})}
}

// Start restores the persisted session in the background. Calls after the
// first are no-ops. Loading stays true until the restore completes.
func (p *SessionProvider) Start(ctx context.Context) {
	p.once.Do(func() {
		go func() {
			defer close(p.ready)
			rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), restoreTimeout)
			defer cancel()
			p.store.Restore(rctx)
		}()
	})
}

// WaitReady blocks until the restore finished or ctx is done, and reports
// whether the provider is ready.
func (p *SessionProvider) WaitReady(ctx context.Context) bool {
	select {
	case <-p.ready:
		return true
	case <-ctx.Done():
		return false
	}
}

// Loading reports whether the initial restore is still running.
func (p *SessionProvider) Loading() bool {
	select {
	case <-p.ready:
		return false
	default:
		return true
	}
}

func (p *SessionProvider) State() ProviderState {
	if p.Loading() {
		return ProviderState{Loading: true}
	}
	return ProviderState{Session: p.store.Current()}
}

func (p *SessionProvider) Session() *domain.Session {
	return p.store.Current()
}

func (p *SessionProvider) IsAuthenticated() bool {
	return p.store.Current() != nil
}

func (p *SessionProvider) LoginPending() bool {
	return p.store.LoginPending()
}

// Refresh re-syncs a ready provider with durable storage. It is a no-op
// while the initial restore is still running.
func (p *SessionProvider) Refresh(ctx context.Context) {
	if p.Loading() {
		return
	}
	p.store.Refresh(ctx)
}

func (p *SessionProvider) Login(ctx context.Context, email, password string, role domain.Role) (*domain.Session, error) {
	return p.store.Login(ctx, email, password, role)
}

func (p *SessionProvider) Logout(ctx context.Context) {
	p.store.Logout(ctx)
}

// ProviderRegistry holds one SessionProvider per browser context. Idle
// providers expire; their state is rebuilt from durable storage on next use.
type ProviderRegistry struct {
	stores  ports.StoreFactory
	auth    ports.Authenticator
	events  ports.SessionEventPublisher
	timeout time.Duration
	log     zerolog.Logger
	gate    *LoginGate

	mu    sync.Mutex
	cache *expirable.LRU[string, *SessionProvider]
}

// RegistryOptions tunes a ProviderRegistry.
type RegistryOptions struct {
	Size         int
	IdleTTL      time.Duration
	LoginTimeout time.Duration
	Events       ports.SessionEventPublisher
	Logger       zerolog.Logger
}

func NewProviderRegistry(stores ports.StoreFactory, auth ports.Authenticator, opts RegistryOptions) *ProviderRegistry {
	size := opts.Size
	if size <= 0 {
		size = 10000
	}
	r := &ProviderRegistry{
		stores:  stores,
		auth:    auth,
		events:  opts.Events,
		timeout: opts.LoginTimeout,
		log:     opts.Logger,
		gate:    NewLoginGate(),
	}
	r.cache = expirable.NewLRU[string, *SessionProvider](size, func(string, *SessionProvider) {
		metrics.ActiveContexts.Dec()
	}, opts.IdleTTL)
	return r
}

// Get returns the provider of a browser context, creating and starting it on first use.
func (r *ProviderRegistry) Get(ctx context.Context, contextID string) *SessionProvider {
	r.mu.Lock()
	p, ok := r.cache.Get(contextID)
	if !ok {
		store := NewSessionStore(r.stores.ForContext(contextID), r.auth, SessionStoreOptions{
			ContextID:    contextID,
			Events:       r.events,
			LoginTimeout: r.timeout,
			Logger:       r.log,
			Gate:         r.gate,
		})
		p = NewSessionProvider(store)
	}
	// Adding an existing key renews its expiry, which makes IdleTTL an idle timeout.
	r.cache.Add(contextID, p)
	metrics.ActiveContexts.Set(float64(r.cache.Len()))
	r.mu.Unlock()

	p.Start(ctx)
	return p
}

// Len reports how many providers are held in memory.
func (r *ProviderRegistry) Len() int {
	return r.cache.Len()
}
