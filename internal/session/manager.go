package session

import (
	"context"
	"errors"
	"sync"

	"github.com/shivam13669/storiesby-auth/internal/client"
	"github.com/shivam13669/storiesby-auth/internal/logger"
	"github.com/shivam13669/storiesby-auth/internal/users"
)

type State int

const (
	StateInitializing State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Manager owns the current-session value. It is the only writer: all
// mutation happens through its own transitions (Initialize, Login,
// Logout, Refresh). Concurrent transitions are last-write-wins; the
// mutex keeps each transition atomic so the stored value is always an
// internally consistent snapshot, never a corrupted mix.
type Manager struct {
	api   client.Client
	store Store

	mu      sync.Mutex
	state   State
	current *Snapshot
}

func NewManager(api client.Client, store Store) *Manager {
	return &Manager{
		api:   api,
		store: store,
		state: StateInitializing,
	}
}

// Initialize restores a persisted session. A stored snapshot is only
// trusted after re-validating that the user still exists; the restored
// session uses the freshly fetched record, not the stale copy. Every
// failure path degrades to Anonymous rather than returning an error,
// so a stale or corrupt snapshot never blocks startup.
func (m *Manager) Initialize(ctx context.Context) {
	snap, err := m.store.Load(ctx)
	if err != nil {
		logger.Warn("session restore failed, starting anonymous", map[string]any{
			"error": err.Error(),
		})
		m.reset(ctx)
		return
	}
	if snap == nil {
		m.setAnonymous()
		return
	}

	user, err := m.api.GetUser(ctx, snap.ID)
	if err != nil {
		// User deleted, or server unreachable. Either way the snapshot
		// cannot be trusted.
		m.reset(ctx)
		return
	}

	fresh := FromUser(user)
	if err := m.store.Save(ctx, fresh); err != nil {
		logger.Warn("failed to re-persist session", map[string]any{
			"error": err.Error(),
		})
	}
	m.setAuthenticated(fresh)
}

// Login authenticates against the service and, on success, persists
// the new snapshot and transitions to Authenticated. On failure the
// current state is left untouched.
func (m *Manager) Login(ctx context.Context, email, password string) (Snapshot, error) {
	user, err := m.api.Login(ctx, email, password)
	if err != nil {
		return Snapshot{}, err
	}

	snap := FromUser(user)
	if err := m.store.Save(ctx, snap); err != nil {
		logger.Warn("failed to persist session", map[string]any{
			"error": err.Error(),
		})
	}
	m.setAuthenticated(snap)
	return snap, nil
}

// Logout clears local state. It never fails and makes no network call.
func (m *Manager) Logout(ctx context.Context) {
	m.reset(ctx)
}

// Refresh re-fetches the current user and re-persists the snapshot,
// picking up server-side changes to the caller's own record. A
// missing user is an implicit logout. In Anonymous state it is a
// no-op.
func (m *Manager) Refresh(ctx context.Context) error {
	snap, ok := m.Current()
	if !ok {
		return nil
	}

	user, err := m.api.GetUser(ctx, snap.ID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			m.reset(ctx)
			return nil
		}
		return err
	}

	fresh := FromUser(user)
	if err := m.store.Save(ctx, fresh); err != nil {
		logger.Warn("failed to re-persist session", map[string]any{
			"error": err.Error(),
		})
	}
	m.setAuthenticated(fresh)
	return nil
}

// Current returns a copy of the session snapshot and whether the
// manager is in Authenticated state.
func (m *Manager) Current() (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateAuthenticated || m.current == nil {
		return Snapshot{}, false
	}
	return *m.current, true
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) setAuthenticated(snap Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateAuthenticated
	m.current = &snap
}

func (m *Manager) setAnonymous() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateAnonymous
	m.current = nil
}

// reset clears persisted state (best-effort) and goes Anonymous.
func (m *Manager) reset(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		logger.Warn("failed to clear persisted session", map[string]any{
			"error": err.Error(),
		})
	}
	m.setAnonymous()
}
