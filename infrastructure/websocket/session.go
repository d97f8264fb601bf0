package websocket

import (
	"context"
	"fmt"
	"log/slog"
	"pair-chat/contract"
	"pair-chat/domain/chat"
	"pair-chat/domain/event"
	"pair-chat/errors"
	"pair-chat/observability"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

type State int32

const (
	Connecting State = iota
	Authenticated
	Joined
	Closed
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Authenticated:
		return "authenticated"
	case Joined:
		return "joined"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

type SessionOptions struct {
	IdleTimeout   time.Duration
	WriteWait     time.Duration
	MaxFrameBytes int64
	BufferSize    int
	// FrameRate is the sustained inbound frames per second; zero disables limiting.
	FrameRate  rate.Limit
	FrameBurst int
}

func DefaultSessionOptions() SessionOptions {
	return SessionOptions{
		IdleTimeout:   60 * time.Second,
		WriteWait:     10 * time.Second,
		MaxFrameBytes: 64 << 10,
		BufferSize:    64,
		FrameRate:     20,
		FrameBurst:    40,
	}
}

// Session is one client connection. It implements contract.Connection once joined.
type Session struct {
	id          chat.ConnectionID
	identity    chat.UserID
	connectedAt time.Time

	conn         *websocket.Conn
	orchestrator contract.IOrchestrator
	opts         SessionOptions
	limiter      *rate.Limiter
	log          *slog.Logger
	metrics      *observability.Metrics

	state     atomic.Int32
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	// leaveCtx outlives the request so unregistration still notifies partners after a disconnect.
	leaveCtx context.Context
}

var _ contract.Connection = (*Session)(nil)

func newSession(conn *websocket.Conn, id chat.ConnectionID, identity chat.UserID, orchestrator contract.IOrchestrator,
	opts SessionOptions, log *slog.Logger, metrics *observability.Metrics) *Session {
	s := &Session{
		id:           id,
		identity:     identity,
		connectedAt:  time.Now().UTC(),
		conn:         conn,
		orchestrator: orchestrator,
		opts:         opts,
		log:          log.With("connection_id", id, "user_id", identity),
		metrics:      metrics,
		send:         make(chan []byte, opts.BufferSize),
		done:         make(chan struct{}),
	}
	if opts.FrameRate > 0 {
		s.limiter = rate.NewLimiter(opts.FrameRate, max(opts.FrameBurst, 1))
	}
	s.state.Store(int32(Authenticated))
	return s
}

func (s *Session) ID() chat.ConnectionID  { return s.id }
func (s *Session) ConnectedAt() time.Time { return s.connectedAt }
func (s *Session) State() State           { return State(s.state.Load()) }
func (s *Session) Alive() bool            { return s.State() != Closed }

// UserID is the authenticated identity; the registry only sees the session after it joined as that identity.
func (s *Session) UserID() chat.UserID { return s.identity }

// Consume never blocks: a full buffer means the client is not keeping up.
func (s *Session) Consume(_ context.Context, e event.DomainEvent) error {
	if !s.Alive() {
		return errors.ErrConnectionClosed
	}
	data, err := EncodeOutbound(e)
	if err != nil {
		return err
	}
	return s.enqueue(data)
}

func (s *Session) enqueue(data []byte) error {
	select {
	case <-s.done:
		return errors.ErrConnectionClosed
	default:
	}
	select {
	case s.send <- data:
		return nil
	default:
		return errors.ErrBackpressure
	}
}

// Serve blocks until the connection is closed for any reason.
func (s *Session) Serve(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.leaveCtx = context.WithoutCancel(ctx)
	defer s.Close("read loop ended")

	s.conn.SetReadLimit(s.opts.MaxFrameBytes)
	_ = s.conn.SetReadDeadline(time.Now().Add(s.opts.IdleTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.opts.IdleTimeout))
	})

	go s.writeLoop(ctx)
	s.readLoop(ctx)
}

func (s *Session) readLoop(ctx context.Context) {
	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Info("client disconnected", "reason", err)
			} else if s.Alive() {
				s.log.Warn("read error", "error", err)
			}
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(s.opts.IdleTimeout))

		if s.limiter != nil && !s.limiter.Allow() {
			s.metrics.IncrFrame("unknown", "rate_limited")
			s.reject(fmt.Errorf("%w: slow down", errors.ErrRateLimited), "")
			continue
		}

		env, frame, err := DecodeInbound(raw)
		if err != nil {
			s.metrics.IncrFrame(env.Type, "rejected")
			s.log.Debug("frame rejected", "type", env.Type, "error", err)
			s.reject(err, env.Ref)
			continue
		}
		if !s.handle(ctx, env, frame) {
			return
		}
	}
}

// handle returns false once the session must stop reading.
func (s *Session) handle(ctx context.Context, env Envelope, frame Inbound) bool {
	s.log.Debug("frame received", "type", frame.FrameType())

	switch f := frame.(type) {
	case PingFrame:
		s.metrics.IncrFrame(PingFrameType, "ok")
		if data, err := encode(PongFrameType, env.Ref, nil); err == nil {
			_ = s.enqueue(data)
		}
		return true
	case LogoutFrame:
		s.metrics.IncrFrame(LogoutFrameType, "ok")
		s.Close("logout")
		return false
	case JoinFrame:
		return s.outcome(JoinFrameType, env.Ref, s.join(ctx, f))
	}

	if s.State() != Joined {
		return s.outcome(frame.FrameType(), env.Ref,
			fmt.Errorf("%w: %w: %s before join", errors.ErrProtocol, errors.ErrNotJoined, frame.FrameType()))
	}

	switch f := frame.(type) {
	case SendMessageFrame:
		draft := chat.Draft{
			From:    s.identity,
			To:      f.To,
			Payload: chat.Payload{Text: f.Text, Attachment: f.Attachment},
			Ref:     env.Ref,
		}
		return s.outcome(SendMessageFrameType, env.Ref, s.orchestrator.Dispatch(contract.SendMessageCommand{Draft: draft, Origin: s}))
	case TypingFrame:
		if f.To != s.identity {
			s.orchestrator.Typing(ctx, s.identity, f.To)
		}
		return s.outcome(TypingFrameType, env.Ref, nil)
	case MarkReadFrame:
		return s.outcome(MarkReadFrameType, env.Ref, s.orchestrator.MarkRead(ctx, f.MessageID, s.identity))
	}
	return s.outcome(frame.FrameType(), env.Ref, fmt.Errorf("%w: unhandled frame %T", errors.ErrProtocol, frame))
}

func (s *Session) outcome(frameType, ref string, err error) bool {
	if err != nil {
		s.metrics.IncrFrame(frameType, "rejected")
		s.reject(err, ref)
		return true
	}
	s.metrics.IncrFrame(frameType, "ok")
	return true
}

// join moves Authenticated to Joined. A join for another identity is refused and the session stays Authenticated.
func (s *Session) join(ctx context.Context, f JoinFrame) error {
	if f.UserID != s.identity {
		return fmt.Errorf("%w: cannot join as %q", errors.ErrPermission, f.UserID)
	}
	if !s.state.CompareAndSwap(int32(Authenticated), int32(Joined)) {
		return fmt.Errorf("%w: join in state %s", errors.ErrProtocol, s.State())
	}
	_ = s.Consume(ctx, event.Joined{User: s.identity, ConnectionID: s.id})
	if err := s.orchestrator.Join(ctx, s); err != nil {
		s.state.CompareAndSwap(int32(Joined), int32(Authenticated))
		return err
	}
	if s.State() == Closed {
		// closed while joining; Leave is idempotent so a second call from Close is harmless
		s.orchestrator.Leave(s.leaveContext(), s)
		return errors.ErrConnectionClosed
	}
	s.log.Info("session joined")
	return nil
}

func (s *Session) reject(err error, ref string) {
	if perr := s.Consume(context.Background(), failureFor(err, ref)); perr != nil {
		s.log.Debug("error frame dropped", "error", perr)
	}
}

func (s *Session) writeLoop(ctx context.Context) {
	ticker := time.NewTicker(s.opts.IdleTimeout * 9 / 10)
	defer ticker.Stop()
	// closing the socket unblocks a read loop still waiting on the client
	defer func() { _ = s.conn.Close() }()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			s.flush()
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.opts.WriteWait))
			_ = s.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case data := <-s.send:
			if err := s.write(data); err != nil {
				s.log.Warn("write error", "error", err)
				s.Close("write failed")
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.opts.WriteWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.log.Warn("ping failed", "error", err)
				s.Close("ping failed")
				return
			}
		}
	}
}

// flush writes what was already queued, such as the last error frame before a close.
func (s *Session) flush() {
	for {
		select {
		case data := <-s.send:
			if err := s.write(data); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (s *Session) write(data []byte) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(s.opts.WriteWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Close is idempotent; the orchestrator hears about a joined session leaving exactly once.
func (s *Session) Close(reason string) {
	s.closeOnce.Do(func() {
		wasJoined := State(s.state.Swap(int32(Closed))) == Joined
		close(s.done)
		if wasJoined {
			s.orchestrator.Leave(s.leaveContext(), s)
		}
		s.log.Info("session closed", "reason", reason, "was_joined", wasJoined)
	})
}

func (s *Session) leaveContext() context.Context {
	if s.leaveCtx == nil {
		return context.Background()
	}
	return s.leaveCtx
}
