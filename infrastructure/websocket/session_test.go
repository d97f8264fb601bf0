package websocket

import (
	"context"
	"pair-chat/contract"
	"pair-chat/errors"
	"pair-chat/runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// racingOrchestrator closes the session at the point where the transport would fail
// while the join is still in flight, then registers it as the real orchestrator does.
type racingOrchestrator struct {
	contract.IOrchestrator
	registry *runtime.Registry
	session  *Session
	leaves   int
}

func (o *racingOrchestrator) Join(ctx context.Context, conn contract.Connection) error {
	o.session.Close("write failed")
	o.registry.Register(ctx, conn)
	return nil
}

func (o *racingOrchestrator) Leave(ctx context.Context, conn contract.Connection) {
	o.leaves++
	o.registry.Unregister(ctx, conn)
}

func TestSession_CloseDuringJoinLeavesUserOffline(t *testing.T) {
	req := require.New(t)
	registry := runtime.NewRegistry(discardLog, nil)
	orchestrator := &racingOrchestrator{registry: registry}
	s := newSession(nil, "c-1", "alice", orchestrator, DefaultSessionOptions(), discardLog, nil)
	orchestrator.session = s

	// When the client drops while its join is being registered
	err := s.join(context.Background(), JoinFrame{UserID: "alice"})

	// Then the join fails, the session is closed and alice is not left online
	req.ErrorIs(err, errors.ErrConnectionClosed)
	req.Equal(Closed, s.State())
	req.False(s.Alive())
	req.False(registry.IsOnline("alice"))
	req.Empty(registry.OnlineUsers())
	req.Empty(registry.ConnectionsFor("alice"))
	req.GreaterOrEqual(orchestrator.leaves, 1)
}

func TestSession_CloseIsIdempotent(t *testing.T) {
	req := require.New(t)
	registry := runtime.NewRegistry(discardLog, nil)
	orchestrator := &racingOrchestrator{registry: registry}
	s := newSession(nil, "c-2", "bob", orchestrator, DefaultSessionOptions(), discardLog, nil)

	// Given a session that never joined
	// When it is closed twice
	s.Close("logout")
	s.Close("read loop ended")

	// Then the orchestrator never hears a leave
	req.Equal(Closed, s.State())
	req.Zero(orchestrator.leaves)
}
