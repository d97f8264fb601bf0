//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"io"
	"pair-chat/domain/chat"
	"pair-chat/domain/event"
	"reflect"
	"time"

	"github.com/google/uuid"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink must never block: a slow consumer gets ErrBackpressure, a dead one ErrConnectionClosed.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// Connection is one live transport session owned by the registry once joined.
type Connection interface {
	EventSink
	ID() chat.ConnectionID
	UserID() chat.UserID
	ConnectedAt() time.Time
	Alive() bool
}

type IRegistry interface {
	Register(ctx context.Context, conn Connection)
	Unregister(ctx context.Context, conn Connection) bool
	ConnectionsFor(user chat.UserID) []Connection
	OnlineUsers() []chat.UserID
	IsOnline(user chat.UserID) bool
}

// PresenceListener is told about every registry change, in order, per user.
type PresenceListener interface {
	PresenceChanged(ctx context.Context, user chat.UserID, online bool)
}

type IOrchestrator interface {
	Join(ctx context.Context, conn Connection) error
	Leave(ctx context.Context, conn Connection)
	Dispatch(cmd SendMessageCommand) error
	Typing(ctx context.Context, from, to chat.UserID)
	MarkRead(ctx context.Context, id uuid.UUID, reader chat.UserID) error
	Start(ctx context.Context) error
	Stop()
}

// SendMessageCommand carries a draft to a sender worker; Origin receives the outcome.
type SendMessageCommand struct {
	Draft  chat.Draft
	Origin EventSink
}

type IdentityValidator interface {
	Validate(ctx context.Context, claim string) (chat.UserID, error)
}

type MessageStore interface {
	SaveMessage(ctx context.Context, msg chat.Message) error
	GetMessage(ctx context.Context, id uuid.UUID) (chat.Message, error)
	// LoadHistory pages backwards from cursor and returns the page oldest first.
	LoadHistory(ctx context.Context, a, b chat.UserID, cursor *string, limit int) ([]chat.Message, *string, error)
	UpdateDeliveryState(ctx context.Context, id uuid.UUID, state chat.DeliveryState) error
	PendingFor(ctx context.Context, to chat.UserID) ([]chat.Message, error)
	PendingBetween(ctx context.Context, from, to chat.UserID) ([]chat.Message, error)
}

type AttachmentStore interface {
	StoreBlob(ctx context.Context, name string, r io.Reader) (chat.Attachment, error)
	OpenBlob(ctx context.Context, id string) (chat.Attachment, io.ReadCloser, error)
}

type RelationshipProvider interface {
	PartnersOf(ctx context.Context, user chat.UserID) ([]chat.UserID, error)
}

// RelationshipStore is the writable side, used by the admin API.
type RelationshipStore interface {
	RelationshipProvider
	Link(ctx context.Context, a, b chat.UserID) error
	Unlink(ctx context.Context, a, b chat.UserID) error
	AreLinked(ctx context.Context, a, b chat.UserID) (bool, error)
}

type MessageIndex interface {
	Index(ctx context.Context, msg chat.Message) error
	Search(ctx context.Context, conversation, query string, limit int) ([]uuid.UUID, error)
}

// TextCensor masks forbidden words and reports which ones matched.
type TextCensor interface {
	Censor(content string) (string, []string)
}
