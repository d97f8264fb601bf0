package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"pair-chat/contract"
	"pair-chat/domain/chat"
	"pair-chat/domain/event"
	"pair-chat/errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

var discardLog = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeConn struct {
	id     chat.ConnectionID
	user   chat.UserID
	at     time.Time
	closed atomic.Bool
	refuse atomic.Bool

	mu     sync.Mutex
	events []event.DomainEvent
}

var _ contract.Connection = (*fakeConn)(nil)

func newFakeConn(user chat.UserID) *fakeConn {
	return &fakeConn{id: chat.ConnectionID(uuid.NewString()), user: user, at: time.Now()}
}

func (c *fakeConn) ID() chat.ConnectionID  { return c.id }
func (c *fakeConn) UserID() chat.UserID    { return c.user }
func (c *fakeConn) ConnectedAt() time.Time { return c.at }
func (c *fakeConn) Alive() bool            { return !c.closed.Load() }

func (c *fakeConn) Consume(_ context.Context, e event.DomainEvent) error {
	if c.closed.Load() {
		return errors.ErrConnectionClosed
	}
	if c.refuse.Load() {
		return errors.ErrBackpressure
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
	return nil
}

func (c *fakeConn) received() []event.DomainEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]event.DomainEvent(nil), c.events...)
}

func ofKind[T event.DomainEvent](c *fakeConn) []T {
	var out []T
	for _, e := range c.received() {
		if typed, ok := e.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

type staticPartners map[chat.UserID][]chat.UserID

func (p staticPartners) PartnersOf(_ context.Context, user chat.UserID) ([]chat.UserID, error) {
	return p[user], nil
}

// memoryStore is a MessageStore kept in a map, enforcing forward-only state changes.
type memoryStore struct {
	mu       sync.Mutex
	messages map[uuid.UUID]chat.Message
	failSave error
}

var _ contract.MessageStore = (*memoryStore)(nil)

func newMemoryStore() *memoryStore {
	return &memoryStore{messages: make(map[uuid.UUID]chat.Message)}
}

func (s *memoryStore) SaveMessage(_ context.Context, msg chat.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave != nil {
		return s.failSave
	}
	s.messages[msg.ID] = msg
	return nil
}

func (s *memoryStore) GetMessage(_ context.Context, id uuid.UUID) (chat.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.messages[id]
	if !ok {
		return chat.Message{}, fmt.Errorf("%w: %s", errors.ErrMessageNotFound, id)
	}
	return msg, nil
}

func (s *memoryStore) LoadHistory(_ context.Context, a, b chat.UserID, _ *string, limit int) ([]chat.Message, *string, error) {
	msgs := s.filter(func(m chat.Message) bool { return m.Involves(a) && m.Involves(b) })
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil, nil
}

func (s *memoryStore) UpdateDeliveryState(_ context.Context, id uuid.UUID, state chat.DeliveryState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.messages[id]
	if !ok {
		return errors.ErrMessageNotFound
	}
	next, err := msg.State.Advance(state)
	if err != nil {
		return err
	}
	msg.State = next
	s.messages[id] = msg
	return nil
}

func (s *memoryStore) PendingFor(_ context.Context, to chat.UserID) ([]chat.Message, error) {
	return s.filter(func(m chat.Message) bool { return m.To == to && m.State == chat.Sent }), nil
}

func (s *memoryStore) PendingBetween(_ context.Context, from, to chat.UserID) ([]chat.Message, error) {
	return s.filter(func(m chat.Message) bool { return m.From == from && m.To == to && m.State == chat.Sent }), nil
}

func (s *memoryStore) state(id uuid.UUID) chat.DeliveryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messages[id].State
}

func (s *memoryStore) filter(keep func(chat.Message) bool) []chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := lo.Filter(lo.Values(s.messages), func(m chat.Message, _ int) bool { return keep(m) })
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.Before(out[j].SentAt) })
	return out
}

// core builds the runtime pieces around a memory store, the way the server wires them.
type core struct {
	store    *memoryStore
	registry *Registry
	presence *PresenceBroadcaster
	typing   *TypingDebouncer
	router   *MessageRouter
	relay    *EventRelay
}

func newCore(partners staticPartners) *core {
	store := newMemoryStore()
	registry := NewRegistry(discardLog, nil)
	presence := NewPresenceBroadcaster(registry, partners, discardLog, nil)
	registry.Listen(presence)
	typing := NewTypingDebouncer(registry, DefaultTypingWindow, discardLog, nil)
	router := NewMessageRouter(store, registry, typing, RouterOptions{}, discardLog, nil)
	relay := NewEventRelay(registry, partners, discardLog, nil)
	return &core{store: store, registry: registry, presence: presence, typing: typing, router: router, relay: relay}
}

func pairOf(a, b chat.UserID) staticPartners {
	return staticPartners{a: {b}, b: {a}}
}
