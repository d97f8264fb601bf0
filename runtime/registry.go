package runtime

import (
	"context"
	"log/slog"
	"pair-chat/contract"
	"pair-chat/domain/chat"
	"pair-chat/observability"
	"sync"

	"github.com/samber/lo"
)

// Registry is the single owner of live connections, created at startup and passed by handle.
// Changes for a given user are serialized by a per-user lock held while listeners run,
// so every observer sees one user's transitions in the order they happened.
type Registry struct {
	mu          sync.RWMutex
	connections map[chat.UserID]map[chat.ConnectionID]contract.Connection
	userLocks   *KeyedMutex
	listeners   []contract.PresenceListener
	log         *slog.Logger
	metrics     *observability.Metrics
}

var _ contract.IRegistry = (*Registry)(nil)

func NewRegistry(log *slog.Logger, metrics *observability.Metrics) *Registry {
	return &Registry{
		connections: make(map[chat.UserID]map[chat.ConnectionID]contract.Connection),
		userLocks:   NewKeyedMutex(),
		log:         log,
		metrics:     metrics,
	}
}

// Listen must be called before the registry is shared.
func (r *Registry) Listen(listener ...contract.PresenceListener) {
	r.listeners = append(r.listeners, listener...)
}

// Register adds conn under its user. Registering the same connection twice is a no-op,
// and a connection that already closed is never added.
func (r *Registry) Register(ctx context.Context, conn contract.Connection) {
	user := conn.UserID()
	unlock := r.userLocks.Lock(string(user))
	defer unlock()

	// Close marks the connection dead before it unregisters under this same lock,
	// so checking here leaves no window for a dead connection to stay registered.
	if !conn.Alive() {
		r.log.Debug("closed connection not registered", "user_id", user, "connection_id", conn.ID())
		return
	}

	r.mu.Lock()
	conns, ok := r.connections[user]
	if !ok {
		conns = make(map[chat.ConnectionID]contract.Connection)
		r.connections[user] = conns
	}
	if _, exists := conns[conn.ID()]; exists {
		r.mu.Unlock()
		return
	}
	conns[conn.ID()] = conn
	count := len(conns)
	r.mu.Unlock()

	r.metrics.IncrConnections()
	r.log.Info("connection registered", "user_id", user, "connection_id", conn.ID(), "connections", count)
	r.notify(ctx, user, true)
}

// Unregister removes conn and reports whether it was present,
// so concurrent close paths can race safely and only one of them wins.
func (r *Registry) Unregister(ctx context.Context, conn contract.Connection) bool {
	user := conn.UserID()
	unlock := r.userLocks.Lock(string(user))
	defer unlock()

	r.mu.Lock()
	conns, ok := r.connections[user]
	if !ok {
		r.mu.Unlock()
		return false
	}
	if _, exists := conns[conn.ID()]; !exists {
		r.mu.Unlock()
		return false
	}
	delete(conns, conn.ID())
	remaining := len(conns)
	if remaining == 0 {
		delete(r.connections, user)
	}
	r.mu.Unlock()

	r.metrics.DecrConnections()
	r.log.Info("connection unregistered", "user_id", user, "connection_id", conn.ID(), "connections", remaining)
	r.notify(ctx, user, remaining > 0)
	return true
}

func (r *Registry) ConnectionsFor(user chat.UserID) []contract.Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns, ok := r.connections[user]
	if !ok {
		return nil
	}
	return lo.Filter(lo.Values(conns), func(c contract.Connection, _ int) bool {
		return c.Alive()
	})
}

func (r *Registry) OnlineUsers() []chat.UserID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Keys(r.connections)
}

func (r *Registry) IsOnline(user chat.UserID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.connections[user]) > 0
}

func (r *Registry) CountOnline() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.connections)
}

func (r *Registry) notify(ctx context.Context, user chat.UserID, online bool) {
	for _, l := range r.listeners {
		l.PresenceChanged(ctx, user, online)
	}
}
