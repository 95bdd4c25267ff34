package admin

import (
	"sync"
	"time"

	"primini.ma/app/internal/backend"
	"primini.ma/app/internal/console"
	"primini.ma/app/internal/http/session"
	"primini.ma/app/internal/modules/moderation"
)

const consoleTTL = 30 * time.Minute

// Registry keeps one live console per admin session. Consoles hold screen
// state only (filters, pagination, row state); dropping one loses nothing
// durable.
type Registry struct {
	client *backend.Client

	mu    sync.Mutex
	items map[string]*registryEntry
}

type registryEntry struct {
	console  *console.Console
	lastUsed time.Time
}

func NewRegistry(client *backend.Client) *Registry {
	return &Registry{client: client, items: map[string]*registryEntry{}}
}

// Get returns the session's console, creating it on first use. Idle consoles
// are evicted opportunistically.
func (r *Registry) Get(s *session.Session) *console.Console {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for id, e := range r.items {
		if now.Sub(e.lastUsed) > consoleTTL {
			e.console.Close()
			delete(r.items, id)
		}
	}

	if e, ok := r.items[s.ID]; ok {
		e.lastUsed = now
		return e.console
	}

	authed := r.client.WithToken(s.Token)
	con := console.New(authed, moderation.NewService(authed))
	r.items[s.ID] = &registryEntry{console: con, lastUsed: now}
	return con
}

// Drop closes and removes a session's console (logout, expired credential).
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.items[sessionID]; ok {
		e.console.Close()
		delete(r.items, sessionID)
	}
}
