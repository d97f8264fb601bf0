package server

import (
	"context"
	"io"
	"log/slog"
	"net"
	"pair-chat/auth"
	"pair-chat/domain/chat"
	"pair-chat/domain/event"
	"pair-chat/infrastructure/grpc/client"
	"pair-chat/infrastructure/storage"
	"pair-chat/runtime"
	"pair-chat/services"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

var discardLog = slog.New(slog.NewTextHandler(io.Discard, nil))

type recordingConn struct {
	mu     sync.Mutex
	user   chat.UserID
	events []event.DomainEvent
}

func (c *recordingConn) ID() chat.ConnectionID  { return chat.ConnectionID("conn-" + string(c.user)) }
func (c *recordingConn) UserID() chat.UserID    { return c.user }
func (c *recordingConn) ConnectedAt() time.Time { return time.Time{} }
func (c *recordingConn) Alive() bool            { return true }

func (c *recordingConn) Consume(_ context.Context, e event.DomainEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
	return nil
}

func (c *recordingConn) notifications() []event.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []event.Notification
	for _, e := range c.events {
		if n, ok := e.(event.Notification); ok {
			out = append(out, n)
		}
	}
	return out
}

type fixture struct {
	conn   *grpc.ClientConn
	tokens *auth.JWTValidator
	bob    *recordingConn
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	matches := storage.NewRelationshipRepository(db, discardLog)
	require.NoError(t, matches.Link(ctx, "alice", "bob"))
	registry := runtime.NewRegistry(discardLog, nil)
	bob := &recordingConn{user: "bob"}
	registry.Register(ctx, bob)
	relay := runtime.NewEventRelay(registry, matches, discardLog, nil)
	service := services.NewChatService(discardLog, nil, relay, registry, nil, matches)

	tokens, err := auth.NewJWTValidator("a-test-secret-that-is-long-enough-0123", "pair-chat", time.Hour)
	require.NoError(t, err)
	s, _ := NewGRPCServer(discardLog, tokens, NewRelayServer(discardLog, service))

	listener := bufconn.Listen(1 << 20)
	go func() { _ = s.Serve(listener) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return &fixture{conn: conn, tokens: tokens, bob: bob}
}

func (f *fixture) token(t *testing.T, role string) string {
	token, err := f.tokens.GenerateToken("checkins", role)
	require.NoError(t, err)
	return token
}

func TestRelayServer_RelaysToPartners(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	relay := client.NewRelayClient(f.conn, f.token(t, auth.RoleRelay))
	at := time.Date(2024, 3, 1, 7, 30, 0, 0, time.UTC)

	// When the check-in service relays alice's check-in
	reached, err := relay.Relay(context.Background(), event.External{
		SourceUserID: "alice",
		Kind:         "new-checkin",
		Payload:      map[string]any{"goal": "run 5k", "note": "done"},
		OccurredAt:   at,
	})

	// Then bob's live connection gets it
	req.NoError(err)
	req.Equal(1, reached)
	notifications := f.bob.notifications()
	req.Len(notifications, 1)
	req.EqualValues("alice", notifications[0].Source)
	req.Equal("new-checkin", notifications[0].EventKind)
	req.Equal("run 5k", notifications[0].Payload["goal"])
	req.True(at.Equal(notifications[0].OccurredAt))
}

func TestRelayServer_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("without token", func(t *testing.T) {
		_, err := client.NewRelayClient(f.conn, "").Relay(ctx, event.External{SourceUserID: "alice", Kind: "x"})
		require.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("with a user token", func(t *testing.T) {
		_, err := client.NewRelayClient(f.conn, f.token(t, auth.RoleUser)).Relay(ctx, event.External{SourceUserID: "alice", Kind: "x"})
		require.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("without kind", func(t *testing.T) {
		_, err := client.NewRelayClient(f.conn, f.token(t, auth.RoleRelay)).Relay(ctx, event.External{SourceUserID: "alice"})
		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}

func TestRelayServer_HealthIsPublic(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	res, err := grpc_health_v1.NewHealthClient(f.conn).Check(context.Background(),
		&grpc_health_v1.HealthCheckRequest{Service: RelayServiceName})

	req.NoError(err)
	req.Equal(grpc_health_v1.HealthCheckResponse_SERVING, res.Status)
}
