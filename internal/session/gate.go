package session

import (
	"errors"

	"github.com/shivam13669/storiesby-auth/internal/users"
)

var ErrAdminOnly = errors.New("admin access required")

// Gate derives access decisions from the current session. It holds no
// state of its own. The service trusts these checks happening at the
// calling boundary; nothing is re-verified server-side, so the gate is
// only as strong as the environment the client runs in.
type Gate struct {
	manager *Manager
}

func NewGate(m *Manager) *Gate {
	return &Gate{manager: m}
}

func (g *Gate) IsAuthenticated() bool {
	_, ok := g.manager.Current()
	return ok
}

func (g *Gate) IsAdmin() bool {
	snap, ok := g.manager.Current()
	return ok && snap.Role == users.RoleAdmin
}

// RequireAdmin is the check every admin-only operation must pass
// before calling the service.
func (g *Gate) RequireAdmin() error {
	if !g.IsAdmin() {
		return ErrAdminOnly
	}
	return nil
}
