package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"pair-chat/domain/chat"
	"pair-chat/errors"
	"pair-chat/infrastructure/storage"
	"pair-chat/mocks"
	"pair-chat/runtime"
	"pair-chat/runtime/workers"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/time/rate"
)

var discardLog = slog.New(slog.NewTextHandler(io.Discard, nil))

type harness struct {
	server   *httptest.Server
	store    *storage.MessageRepository
	registry *runtime.Registry
}

// newHarness runs the whole core behind a gateway; a token "token-<user>" authenticates <user>.
func newHarness(t *testing.T, opts SessionOptions) *harness {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := storage.NewMessageRepository(db, discardLog)
	partners := storage.NewRelationshipRepository(db, discardLog)
	require.NoError(t, partners.Link(context.Background(), "alice", "bob"))

	registry := runtime.NewRegistry(discardLog, nil)
	presence := runtime.NewPresenceBroadcaster(registry, partners, discardLog, nil)
	registry.Listen(presence)
	typing := runtime.NewTypingDebouncer(registry, runtime.DefaultTypingWindow, discardLog, nil)
	router := runtime.NewMessageRouter(store, registry, typing, runtime.RouterOptions{MaxTextLength: 1000}, discardLog, nil)
	orchestrator := runtime.NewOrchestrator(discardLog, workers.NewSupervisor(discardLog, 10*time.Millisecond),
		registry, presence, typing, router, 2, 16, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = orchestrator.Start(ctx) }()

	ctrl := gomock.NewController(t)
	identity := mocks.NewMockIdentityValidator(ctrl)
	identity.EXPECT().Validate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, claim string) (chat.UserID, error) {
			user, ok := strings.CutPrefix(claim, "token-")
			if !ok {
				return "", errors.ErrAuth
			}
			return chat.UserID(user), nil
		}).AnyTimes()

	server := httptest.NewServer(NewGateway(identity, orchestrator, opts, discardLog, nil))
	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return &harness{server: server, store: store, registry: registry}
}

func (h *harness) dial(t *testing.T, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(h.server.URL, "http")
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func (h *harness) join(t *testing.T, user chat.UserID) *websocket.Conn {
	t.Helper()
	conn := h.dial(t, "token-"+string(user))
	send(t, conn, JoinFrameType, "", JoinFrame{UserID: user})
	expect(t, conn, "joined")
	return conn
}

func send(t *testing.T, conn *websocket.Conn, frameType, ref string, data any) {
	t.Helper()
	env := Envelope{Type: frameType, Ref: ref}
	if data != nil {
		raw, err := json.Marshal(data)
		require.NoError(t, err)
		env.Data = raw
	}
	require.NoError(t, conn.WriteJSON(env))
}

// expect reads until a frame of frameType arrives, skipping presence chatter and the like.
func expect(t *testing.T, conn *websocket.Conn, frameType string) Envelope {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		require.NoError(t, conn.SetReadDeadline(deadline))
		var env Envelope
		require.NoError(t, conn.ReadJSON(&env), "waiting for %s", frameType)
		if env.Type == frameType {
			return env
		}
	}
}

func expectError(t *testing.T, conn *websocket.Conn, code errors.Code) Envelope {
	t.Helper()
	env := expect(t, conn, "error")
	var data errorData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, string(code), data.Code, data.Message)
	return env
}

func TestGateway_RefusesBadToken(t *testing.T) {
	req := require.New(t)
	h := newHarness(t, DefaultSessionOptions())

	// Given a client with a token the identity provider rejects
	conn := h.dial(t, "forged")

	// Then it receives an AuthError and the server closes the connection
	expectError(t, conn, errors.CodeAuth)
	_, _, err := conn.ReadMessage()
	req.True(websocket.IsCloseError(err, websocket.ClosePolicyViolation), "got %v", err)
}

func TestGateway_QueryTokenIsAccepted(t *testing.T) {
	req := require.New(t)
	h := newHarness(t, DefaultSessionOptions())

	url := "ws" + strings.TrimPrefix(h.server.URL, "http") + "?token=token-alice"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	req.NoError(err)
	defer conn.Close()

	send(t, conn, JoinFrameType, "", JoinFrame{UserID: "alice"})
	expect(t, conn, "joined")
}

func TestGateway_FramesBeforeJoinAreProtocolErrors(t *testing.T) {
	req := require.New(t)
	h := newHarness(t, DefaultSessionOptions())
	conn := h.dial(t, "token-alice")

	// When alice sends before joining
	send(t, conn, SendMessageFrameType, "r1", SendMessageFrame{To: "bob", Text: "too early"})

	// Then the frame is rejected with its ref echoed
	env := expectError(t, conn, errors.CodeProtocol)
	req.Equal("r1", env.Ref)

	// And the connection is still usable
	send(t, conn, PingFrameType, "p1", nil)
	req.Equal("p1", expect(t, conn, PongFrameType).Ref)

	// And a malformed frame is rejected the same way
	req.NoError(conn.WriteMessage(websocket.TextMessage, []byte("{oops")))
	expectError(t, conn, errors.CodeProtocol)
}

func TestGateway_JoinAsSomeoneElseIsRefused(t *testing.T) {
	req := require.New(t)
	h := newHarness(t, DefaultSessionOptions())
	conn := h.dial(t, "token-alice")

	// When alice tries to join as bob
	send(t, conn, JoinFrameType, "", JoinFrame{UserID: "bob"})

	// Then it is a permission error and nobody is online
	expectError(t, conn, errors.CodePermission)
	req.False(h.registry.IsOnline("bob"))

	// And alice can still join as alice
	send(t, conn, JoinFrameType, "", JoinFrame{UserID: "alice"})
	expect(t, conn, "joined")
	req.Eventually(func() bool { return h.registry.IsOnline("alice") }, time.Second, 10*time.Millisecond)

	// But not twice
	send(t, conn, JoinFrameType, "", JoinFrame{UserID: "alice"})
	expectError(t, conn, errors.CodeProtocol)
}

func TestGateway_SendReceiveAndRead(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	h := newHarness(t, DefaultSessionOptions())
	alice := h.join(t, "alice")
	bob := h.join(t, "bob")

	// When alice sends hello
	send(t, alice, SendMessageFrameType, "r1", SendMessageFrame{To: "bob", Text: "hello"})

	// Then alice gets an acknowledgement carrying the ref
	ack := expect(t, alice, "message-accepted")
	req.Equal("r1", ack.Ref)
	var accepted messageAcceptedData
	req.NoError(json.Unmarshal(ack.Data, &accepted))

	// And bob receives the message
	var received chat.Message
	req.NoError(json.Unmarshal(expect(t, bob, "receive-message").Data, &received))
	req.Equal("hello", received.Payload.Text)
	req.Equal(accepted.ID, received.ID)

	// And it is Delivered
	req.Eventually(func() bool {
		msg, err := h.store.GetMessage(ctx, received.ID)
		return err == nil && msg.State == chat.Delivered
	}, time.Second, 10*time.Millisecond)

	// When bob marks it read
	send(t, bob, MarkReadFrameType, "", MarkReadFrame{MessageID: received.ID})

	// Then alice gets the receipt
	var receipt readReceiptData
	req.NoError(json.Unmarshal(expect(t, alice, "read-receipt").Data, &receipt))
	req.Equal(received.ID, receipt.MessageID)
	req.EqualValues("bob", receipt.Reader)
}

func TestGateway_InvalidDraftIsValidationError(t *testing.T) {
	req := require.New(t)
	h := newHarness(t, DefaultSessionOptions())
	alice := h.join(t, "alice")

	send(t, alice, SendMessageFrameType, "r2", SendMessageFrame{To: "bob", Text: "   "})

	env := expectError(t, alice, errors.CodeValidation)
	req.Equal("r2", env.Ref)
}

func TestGateway_TypingAndPresence(t *testing.T) {
	req := require.New(t)
	h := newHarness(t, DefaultSessionOptions())
	alice := h.join(t, "alice")
	bob := h.join(t, "bob")

	// When alice types
	send(t, alice, TypingFrameType, "", TypingFrame{To: "bob"})

	// Then bob sees an active typing notice
	var notice typingNoticeData
	req.NoError(json.Unmarshal(expect(t, bob, "typing-notice").Data, &notice))
	req.True(notice.Active)
	req.EqualValues("alice", notice.From)

	// When alice logs out
	send(t, alice, LogoutFrameType, "", nil)

	// Then bob sees alice go offline
	for {
		var update presenceUpdateData
		req.NoError(json.Unmarshal(expect(t, bob, "presence-update").Data, &update))
		if update.UserID == "alice" && !update.Online {
			break
		}
	}
	req.False(h.registry.IsOnline("alice"))
}

func TestGateway_IdleConnectionIsUnregistered(t *testing.T) {
	req := require.New(t)
	opts := DefaultSessionOptions()
	opts.IdleTimeout = 200 * time.Millisecond
	h := newHarness(t, opts)

	// Given alice joined and then stopped reading, so pings go unanswered
	h.join(t, "alice")
	req.True(h.registry.IsOnline("alice"))

	// Then the server drops alice within about one idle interval
	req.Eventually(func() bool { return !h.registry.IsOnline("alice") }, 2*time.Second, 20*time.Millisecond)
}

func TestGateway_RateLimit(t *testing.T) {
	opts := DefaultSessionOptions()
	opts.FrameRate = rate.Limit(1)
	opts.FrameBurst = 1
	h := newHarness(t, opts)
	conn := h.dial(t, "token-alice")

	for i := 0; i < 3; i++ {
		send(t, conn, PingFrameType, uuid.NewString(), nil)
	}

	expectError(t, conn, errors.CodeRateLimit)
}
