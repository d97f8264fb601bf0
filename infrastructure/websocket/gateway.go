package websocket

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"pair-chat/contract"
	"pair-chat/domain/chat"
	"pair-chat/errors"
	"pair-chat/observability"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Gateway upgrades HTTP requests and runs one Session per client.
type Gateway struct {
	identity     contract.IdentityValidator
	orchestrator contract.IOrchestrator
	opts         SessionOptions
	upgrader     websocket.Upgrader
	log          *slog.Logger
	metrics      *observability.Metrics
}

func NewGateway(identity contract.IdentityValidator, orchestrator contract.IOrchestrator, opts SessionOptions,
	log *slog.Logger, metrics *observability.Metrics) *Gateway {
	return &Gateway{
		identity:     identity,
		orchestrator: orchestrator,
		opts:         opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		log:     log,
		metrics: metrics,
	}
}

// ServeHTTP blocks while the session is active.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Debug("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	ctx := r.Context()
	user, err := g.authenticate(ctx, r)
	if err != nil {
		g.log.Info("connection refused", "remote", r.RemoteAddr, "error", err)
		g.refuse(conn, err)
		return
	}

	session := newSession(conn, chat.ConnectionID(uuid.NewString()), user, g.orchestrator, g.opts, g.log, g.metrics)
	g.log.Debug("session authenticated", "user_id", user, "connection_id", session.ID())
	session.Serve(ctx)
}

func (g *Gateway) authenticate(ctx context.Context, r *http.Request) (chat.UserID, error) {
	claim := ClaimFrom(r)
	if claim == "" {
		return "", fmt.Errorf("%w: missing token", errors.ErrAuth)
	}
	user, err := g.identity.Validate(ctx, claim)
	if err != nil && !errors.Is(err, errors.ErrAuth) {
		return "", fmt.Errorf("%w: %w", errors.ErrAuth, err)
	}
	return user, err
}

// refuse sends an AuthError frame then closes; the client never reaches Authenticated.
func (g *Gateway) refuse(conn *websocket.Conn, err error) {
	defer func() { _ = conn.Close() }()
	data, encErr := EncodeOutbound(failureFor(err, ""))
	if encErr != nil {
		return
	}
	deadline := time.Now().Add(g.opts.WriteWait)
	_ = conn.SetWriteDeadline(deadline)
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, string(errors.CodeAuth)), deadline)
}

// ClaimFrom reads a bearer token from the Authorization header or, for browsers, the token query parameter.
func ClaimFrom(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return r.URL.Query().Get("token")
}
