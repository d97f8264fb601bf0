// Package event lists everything the core pushes out to live connections.
package event

import (
	"pair-chat/domain/chat"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	PresenceUpdateKind   Kind = "presence-update"
	PresenceSnapshotKind Kind = "presence-snapshot"
	ReceiveMessageKind   Kind = "receive-message"
	MessageAcceptedKind  Kind = "message-accepted"
	TypingNoticeKind     Kind = "typing-notice"
	ReadReceiptKind      Kind = "read-receipt"
	DomainEventKind      Kind = "domain-event"
	ErrorKind            Kind = "error"
	JoinedKind           Kind = "joined"
)

// DomainEvent is a closed set: only types of this package implement it.
type DomainEvent interface {
	Kind() Kind
	sealed()
}

type PresenceChanged struct {
	User   chat.UserID
	Online bool
	At     time.Time
}

type PresenceSnapshot struct {
	Online []chat.UserID
}

type MessageReceived struct {
	Message chat.Message
}

// MessageAccepted acknowledges a send to the connection that issued it.
type MessageAccepted struct {
	Ref     string
	Message chat.Message
}

type TypingChanged struct {
	From      chat.UserID
	To        chat.UserID
	Active    bool
	ExpiresAt time.Time
}

type ReadReceipt struct {
	MessageID uuid.UUID
	Reader    chat.UserID
	ReadAt    time.Time
}

// Notification is an external event relayed live to a partner.
type Notification struct {
	Source     chat.UserID
	EventKind  string
	Payload    map[string]any
	OccurredAt time.Time
}

// Failure reports a rejected frame; Ref echoes the client token when there is one.
type Failure struct {
	Code    string
	Message string
	Ref     string
}

type Joined struct {
	User         chat.UserID
	ConnectionID chat.ConnectionID
}

func (PresenceChanged) Kind() Kind  { return PresenceUpdateKind }
func (PresenceSnapshot) Kind() Kind { return PresenceSnapshotKind }
func (MessageReceived) Kind() Kind  { return ReceiveMessageKind }
func (MessageAccepted) Kind() Kind  { return MessageAcceptedKind }
func (TypingChanged) Kind() Kind    { return TypingNoticeKind }
func (ReadReceipt) Kind() Kind      { return ReadReceiptKind }
func (Notification) Kind() Kind     { return DomainEventKind }
func (Failure) Kind() Kind          { return ErrorKind }
func (Joined) Kind() Kind           { return JoinedKind }

func (PresenceChanged) sealed()  {}
func (PresenceSnapshot) sealed() {}
func (MessageReceived) sealed()  {}
func (MessageAccepted) sealed()  {}
func (TypingChanged) sealed()    {}
func (ReadReceipt) sealed()      {}
func (Notification) sealed()     {}
func (Failure) sealed()          {}
func (Joined) sealed()           {}

// External is what an upstream collaborator hands to the relay, e.g. a check-in.
type External struct {
	SourceUserID chat.UserID    `validate:"required,max=256"`
	Kind         string         `validate:"required,max=64"`
	Payload      map[string]any
	OccurredAt   time.Time
}
