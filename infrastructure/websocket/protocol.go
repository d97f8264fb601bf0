// Package websocket is the session gateway: it authenticates a client, runs its
// per-connection read and write loops and translates frames to orchestrator calls.
package websocket

import (
	"bytes"
	"encoding/json"
	"fmt"
	"pair-chat/domain/chat"
	"pair-chat/domain/event"
	"pair-chat/errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Frame types accepted from clients.
const (
	JoinFrameType        = "join"
	SendMessageFrameType = "send-message"
	TypingFrameType      = "typing"
	MarkReadFrameType    = "mark-read"
	LogoutFrameType      = "logout"
	PingFrameType        = "ping"
	PongFrameType        = "pong"
)

var validate = validator.New()

// Envelope is the single JSON shape on the wire, both directions.
type Envelope struct {
	Type string          `json:"type"`
	Ref  string          `json:"ref,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Inbound is one decoded client frame.
type Inbound interface {
	FrameType() string
}

type JoinFrame struct {
	UserID chat.UserID `json:"user_id" validate:"required,max=256"`
}

// SendMessageFrame leaves recipient and payload checks to the draft so they surface as validation errors.
type SendMessageFrame struct {
	To         chat.UserID      `json:"to" validate:"max=256"`
	Text       string           `json:"text,omitempty"`
	Attachment *chat.Attachment `json:"attachment,omitempty"`
}

type TypingFrame struct {
	To chat.UserID `json:"to" validate:"required,max=256"`
}

type MarkReadFrame struct {
	MessageID uuid.UUID `json:"message_id"`
}

type LogoutFrame struct{}

type PingFrame struct{}

func (JoinFrame) FrameType() string        { return JoinFrameType }
func (SendMessageFrame) FrameType() string { return SendMessageFrameType }
func (TypingFrame) FrameType() string      { return TypingFrameType }
func (MarkReadFrame) FrameType() string    { return MarkReadFrameType }
func (LogoutFrame) FrameType() string      { return LogoutFrameType }
func (PingFrame) FrameType() string        { return PingFrameType }

// DecodeInbound parses one frame. Unknown types, unknown fields and malformed
// values are all ErrProtocol; the envelope is returned whenever it parsed so the ref can be echoed.
func DecodeInbound(raw []byte) (Envelope, Inbound, error) {
	var env Envelope
	if err := strictUnmarshal(raw, &env); err != nil {
		return env, nil, fmt.Errorf("%w: malformed envelope: %w", errors.ErrProtocol, err)
	}

	var frame Inbound
	switch env.Type {
	case JoinFrameType:
		frame = &JoinFrame{}
	case SendMessageFrameType:
		frame = &SendMessageFrame{}
	case TypingFrameType:
		frame = &TypingFrame{}
	case MarkReadFrameType:
		frame = &MarkReadFrame{}
	case LogoutFrameType:
		return env, LogoutFrame{}, nil
	case PingFrameType:
		return env, PingFrame{}, nil
	default:
		return env, nil, fmt.Errorf("%w: unknown frame type %q", errors.ErrProtocol, env.Type)
	}

	if len(env.Data) == 0 {
		return env, nil, fmt.Errorf("%w: %s frame without data", errors.ErrProtocol, env.Type)
	}
	if err := strictUnmarshal(env.Data, frame); err != nil {
		return env, nil, fmt.Errorf("%w: malformed %s frame: %w", errors.ErrProtocol, env.Type, err)
	}
	if err := validate.Struct(frame); err != nil {
		return env, nil, fmt.Errorf("%w: invalid %s frame: %w", errors.ErrProtocol, env.Type, err)
	}

	switch f := frame.(type) {
	case *JoinFrame:
		return env, *f, nil
	case *SendMessageFrame:
		return env, *f, nil
	case *TypingFrame:
		return env, *f, nil
	case *MarkReadFrame:
		if f.MessageID == uuid.Nil {
			return env, nil, fmt.Errorf("%w: mark-read needs a message_id", errors.ErrProtocol)
		}
		return env, *f, nil
	}
	return env, nil, fmt.Errorf("%w: unhandled frame type %q", errors.ErrProtocol, env.Type)
}

func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

type presenceUpdateData struct {
	UserID chat.UserID `json:"user_id"`
	Online bool        `json:"online"`
	At     time.Time   `json:"at"`
}

type presenceSnapshotData struct {
	Online []chat.UserID `json:"online"`
}

type messageAcceptedData struct {
	ID     uuid.UUID          `json:"id"`
	SentAt time.Time          `json:"sent_at"`
	State  chat.DeliveryState `json:"state"`
}

type typingNoticeData struct {
	From      chat.UserID `json:"from"`
	To        chat.UserID `json:"to"`
	Active    bool        `json:"active"`
	ExpiresAt *time.Time  `json:"expires_at,omitempty"`
}

type readReceiptData struct {
	MessageID uuid.UUID   `json:"message_id"`
	Reader    chat.UserID `json:"reader"`
	ReadAt    time.Time   `json:"read_at"`
}

type domainEventData struct {
	SourceUserID chat.UserID    `json:"source_user_id"`
	Kind         string         `json:"kind"`
	Payload      map[string]any `json:"payload,omitempty"`
	OccurredAt   time.Time      `json:"occurred_at"`
}

type errorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type joinedData struct {
	UserID       chat.UserID       `json:"user_id"`
	ConnectionID chat.ConnectionID `json:"connection_id"`
}

// EncodeOutbound renders a domain event as an envelope whose type is the event kind.
func EncodeOutbound(e event.DomainEvent) ([]byte, error) {
	var data any
	var ref string
	switch ev := e.(type) {
	case event.PresenceChanged:
		data = presenceUpdateData{UserID: ev.User, Online: ev.Online, At: ev.At}
	case event.PresenceSnapshot:
		online := ev.Online
		if online == nil {
			online = []chat.UserID{}
		}
		data = presenceSnapshotData{Online: online}
	case event.MessageReceived:
		data = ev.Message
	case event.MessageAccepted:
		ref = ev.Ref
		data = messageAcceptedData{ID: ev.Message.ID, SentAt: ev.Message.SentAt, State: ev.Message.State}
	case event.TypingChanged:
		notice := typingNoticeData{From: ev.From, To: ev.To, Active: ev.Active}
		if ev.Active {
			notice.ExpiresAt = &ev.ExpiresAt
		}
		data = notice
	case event.ReadReceipt:
		data = readReceiptData{MessageID: ev.MessageID, Reader: ev.Reader, ReadAt: ev.ReadAt}
	case event.Notification:
		data = domainEventData{SourceUserID: ev.Source, Kind: ev.EventKind, Payload: ev.Payload, OccurredAt: ev.OccurredAt}
	case event.Failure:
		ref = ev.Ref
		data = errorData{Code: ev.Code, Message: ev.Message}
	case event.Joined:
		data = joinedData{UserID: ev.User, ConnectionID: ev.ConnectionID}
	default:
		return nil, fmt.Errorf("%w: no wire form for %T", errors.ErrProtocol, e)
	}
	return encode(string(e.Kind()), ref, data)
}

func encode(frameType, ref string, data any) ([]byte, error) {
	env := Envelope{Type: frameType, Ref: ref}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		env.Data = raw
	}
	return json.Marshal(env)
}

// failureFor turns a rejected frame into the error event sent back on the same connection.
func failureFor(err error, ref string) event.Failure {
	return event.Failure{Code: string(errors.CodeOf(err)), Message: err.Error(), Ref: ref}
}
