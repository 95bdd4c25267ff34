package admin

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primini.ma/app/internal/backend"
	"primini.ma/app/internal/http/session"
)

func testRegistry() *Registry {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRegistry(backend.NewClient("http://backend:8000", logger))
}

func testSession() *session.Session {
	s := session.New("tok", "admin@primini.ma", "Admin", true, time.Hour)
	return &s
}

func TestRegistry_SameSessionSameConsole(t *testing.T) {
	r := testRegistry()
	s := testSession()

	first := r.Get(s)
	second := r.Get(s)
	assert.Same(t, first, second)
}

func TestRegistry_DistinctSessionsDistinctConsoles(t *testing.T) {
	r := testRegistry()

	a := r.Get(testSession())
	b := r.Get(testSession())
	assert.NotSame(t, a, b)
}

func TestRegistry_DropRemovesConsole(t *testing.T) {
	r := testRegistry()
	s := testSession()

	first := r.Get(s)
	r.Drop(s.ID)
	second := r.Get(s)
	assert.NotSame(t, first, second)
}

func TestRegistry_EvictsIdleConsoles(t *testing.T) {
	r := testRegistry()
	s := testSession()

	first := r.Get(s)
	r.mu.Lock()
	entry, ok := r.items[s.ID]
	require.True(t, ok)
	entry.lastUsed = time.Now().Add(-consoleTTL - time.Minute)
	r.mu.Unlock()

	// Any access evicts idle entries before looking up.
	fresh := r.Get(s)
	assert.NotSame(t, first, fresh)
}
