package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"pair-chat/contract"
	"pair-chat/domain/chat"
	"pair-chat/domain/event"
	"pair-chat/errors"
	"pair-chat/observability"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	DefaultMaxTextLength = 4000
	DefaultHistoryLimit  = 50
)

type RouterOptions struct {
	MaxTextLength int
	HistoryLimit  int
	// Censor and DetectLanguage are optional text filters applied before persistence.
	Censor         contract.TextCensor
	DetectLanguage func(text string) string
	// Index is optional; indexing failures never fail a send.
	Index contract.MessageIndex
}

// MessageRouter accepts drafts, persists them and drives each message through Sent, Delivered and Read.
// Work on one (from, to) pair is serialized by a pair lock that is held across the store call,
// which gives FIFO delivery per pair without blocking any other pair.
type MessageRouter struct {
	store     contract.MessageStore
	registry  contract.IRegistry
	typing    *TypingDebouncer
	pairLocks *KeyedMutex
	clock     *monotonicClock
	opts      RouterOptions
	log       *slog.Logger
	metrics   *observability.Metrics
	now       func() time.Time
}

func NewMessageRouter(store contract.MessageStore, registry contract.IRegistry, typing *TypingDebouncer, opts RouterOptions, log *slog.Logger, metrics *observability.Metrics) *MessageRouter {
	if opts.MaxTextLength <= 0 {
		opts.MaxTextLength = DefaultMaxTextLength
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = DefaultHistoryLimit
	}
	return &MessageRouter{
		store:     store,
		registry:  registry,
		typing:    typing,
		pairLocks: NewKeyedMutex(),
		clock:     newMonotonicClock(time.Now),
		opts:      opts,
		log:       log,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Send validates the draft, assigns id and sentAt, persists it and pushes it to the recipient.
// Nothing is assigned or delivered when validation or persistence fails.
// The returned message is Delivered when at least one recipient connection took it, Sent otherwise.
func (r *MessageRouter) Send(ctx context.Context, draft chat.Draft) (chat.Message, error) {
	if err := draft.Validate(r.opts.MaxTextLength); err != nil {
		return chat.Message{}, err
	}

	unlock := r.pairLocks.Lock(chat.Pair{From: draft.From, To: draft.To}.String())
	defer unlock()

	msg := chat.Message{
		ID:      uuid.New(),
		From:    draft.From,
		To:      draft.To,
		SentAt:  r.clock.Next(),
		Payload: r.filter(draft.Payload),
		State:   chat.Sent,
	}
	if msg.Payload.Text != "" && r.opts.DetectLanguage != nil {
		msg.Lang = r.opts.DetectLanguage(msg.Payload.Text)
	}

	if err := r.store.SaveMessage(ctx, msg); err != nil {
		r.metrics.IncrStorageFailure()
		r.log.Error("message not persisted", "from", msg.From, "to", msg.To, "error", err)
		return chat.Message{}, fmt.Errorf("%w: %w", errors.ErrStorage, err)
	}
	r.metrics.IncrMessages(chat.Sent.String())
	r.log.Debug("message persisted", "message_id", msg.ID, "from", msg.From, "to", msg.To)

	if r.opts.Index != nil && msg.Payload.Text != "" {
		if err := r.opts.Index.Index(ctx, msg); err != nil {
			r.log.Warn("message not indexed", "message_id", msg.ID, "error", err)
		}
	}
	if r.typing != nil {
		r.typing.Stop(ctx, msg.From, msg.To)
	}

	if !r.registry.IsOnline(msg.To) {
		return msg, nil
	}
	// Older messages of the pair still waiting go first.
	delivered, err := r.deliverPending(ctx, msg.From, msg.To)
	if err != nil {
		r.log.Warn("pending delivery interrupted", "from", msg.From, "to", msg.To, "error", err)
	}
	if lo.Contains(delivered, msg.ID) {
		msg.State = chat.Delivered
	}
	return msg, nil
}

// MarkRead moves a message the reader received to Read and sends the sender a receipt.
// A second call on the same message changes nothing and sends nothing.
func (r *MessageRouter) MarkRead(ctx context.Context, id uuid.UUID, reader chat.UserID) error {
	msg, err := r.getMessage(ctx, id)
	if err != nil {
		return err
	}
	if msg.To != reader {
		return fmt.Errorf("%w: %s did not receive message %s", errors.ErrPermission, reader, id)
	}

	unlock := r.pairLocks.Lock(chat.Pair{From: msg.From, To: msg.To}.String())
	defer unlock()

	// reload under the pair lock, a concurrent call may have won
	msg, err = r.getMessage(ctx, id)
	if err != nil {
		return err
	}
	if msg.State == chat.Read {
		return nil
	}
	if msg.State == chat.Sent {
		if err := r.advance(ctx, msg.ID, chat.Delivered); err != nil {
			return err
		}
	}
	if err := r.advance(ctx, msg.ID, chat.Read); err != nil {
		return err
	}

	receipt := event.ReadReceipt{MessageID: msg.ID, Reader: reader, ReadAt: r.now().UTC()}
	pushAll(ctx, r.log, r.metrics, r.registry.ConnectionsFor(msg.From), receipt)
	return nil
}

// SyncPending delivers everything addressed to user that is still Sent, oldest first per sender.
func (r *MessageRouter) SyncPending(ctx context.Context, user chat.UserID) (int, error) {
	pending, err := r.store.PendingFor(ctx, user)
	if err != nil {
		r.metrics.IncrStorageFailure()
		return 0, fmt.Errorf("%w: %w", errors.ErrStorage, err)
	}
	senders := lo.Uniq(lo.Map(pending, func(m chat.Message, _ int) chat.UserID { return m.From }))

	total := 0
	for _, sender := range senders {
		delivered, err := r.deliverPair(ctx, sender, user)
		total += len(delivered)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// History returns one page of the conversation between requester and partner, oldest first.
// Messages addressed to requester that were still Sent count as delivered by this fetch.
func (r *MessageRouter) History(ctx context.Context, requester, partner chat.UserID, cursor *string) ([]chat.Message, *string, error) {
	if requester == "" || partner == "" {
		return nil, nil, fmt.Errorf("%w: both participants are required", errors.ErrValidation)
	}
	msgs, next, err := r.store.LoadHistory(ctx, requester, partner, cursor, r.opts.HistoryLimit)
	if err != nil {
		r.metrics.IncrStorageFailure()
		return nil, nil, fmt.Errorf("%w: %w", errors.ErrStorage, err)
	}

	unseen := lo.Filter(msgs, func(m chat.Message, _ int) bool {
		return m.To == requester && m.State == chat.Sent
	})
	if len(unseen) == 0 {
		return msgs, next, nil
	}

	unlock := r.pairLocks.Lock(chat.Pair{From: partner, To: requester}.String())
	defer unlock()
	for i := range msgs {
		if msgs[i].To != requester || msgs[i].State != chat.Sent {
			continue
		}
		err := r.advance(ctx, msgs[i].ID, chat.Delivered)
		switch {
		case err == nil:
			msgs[i].State = chat.Delivered
		case errors.Is(err, errors.ErrStateRegression):
			// already moved on by a concurrent push
		default:
			return nil, nil, err
		}
	}
	return msgs, next, nil
}

// Search looks up text in the conversation between requester and partner, best match first.
func (r *MessageRouter) Search(ctx context.Context, requester, partner chat.UserID, query string, limit int) ([]chat.Message, error) {
	if r.opts.Index == nil {
		return nil, nil
	}
	if query == "" || requester == "" || partner == "" {
		return nil, fmt.Errorf("%w: query and participants are required", errors.ErrValidation)
	}
	if limit <= 0 || limit > r.opts.HistoryLimit {
		limit = r.opts.HistoryLimit
	}
	ids, err := r.opts.Index.Search(ctx, chat.ConversationKey(requester, partner), query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrStorage, err)
	}
	found := make([]chat.Message, 0, len(ids))
	for _, id := range ids {
		msg, err := r.store.GetMessage(ctx, id)
		if err != nil {
			r.log.Warn("indexed message missing from store", "message_id", id, "error", err)
			continue
		}
		if msg.Involves(requester) && msg.Involves(partner) {
			found = append(found, msg)
		}
	}
	return found, nil
}

func (r *MessageRouter) deliverPair(ctx context.Context, from, to chat.UserID) ([]uuid.UUID, error) {
	unlock := r.pairLocks.Lock(chat.Pair{From: from, To: to}.String())
	defer unlock()
	return r.deliverPending(ctx, from, to)
}

// deliverPending pushes the pair's Sent messages in order and stops at the first one no connection took,
// so a recipient never sees a message before an older one of the same pair. Caller holds the pair lock.
func (r *MessageRouter) deliverPending(ctx context.Context, from, to chat.UserID) ([]uuid.UUID, error) {
	pending, err := r.store.PendingBetween(ctx, from, to)
	if err != nil {
		r.metrics.IncrStorageFailure()
		return nil, fmt.Errorf("%w: %w", errors.ErrStorage, err)
	}
	var delivered []uuid.UUID
	for _, msg := range pending {
		msg.State = chat.Delivered
		if pushAll(ctx, r.log, r.metrics, r.registry.ConnectionsFor(to), event.MessageReceived{Message: msg}) == 0 {
			break
		}
		if err := r.advance(ctx, msg.ID, chat.Delivered); err != nil && !errors.Is(err, errors.ErrStateRegression) {
			return delivered, err
		}
		delivered = append(delivered, msg.ID)
	}
	return delivered, nil
}

func (r *MessageRouter) advance(ctx context.Context, id uuid.UUID, state chat.DeliveryState) error {
	if err := r.store.UpdateDeliveryState(ctx, id, state); err != nil {
		if errors.Is(err, errors.ErrStateRegression) {
			return err
		}
		r.metrics.IncrStorageFailure()
		return fmt.Errorf("%w: %w", errors.ErrStorage, err)
	}
	r.metrics.IncrMessages(state.String())
	return nil
}

func (r *MessageRouter) getMessage(ctx context.Context, id uuid.UUID) (chat.Message, error) {
	msg, err := r.store.GetMessage(ctx, id)
	switch {
	case err == nil:
		return msg, nil
	case errors.Is(err, errors.ErrMessageNotFound):
		return chat.Message{}, fmt.Errorf("%w: %w", errors.ErrPermission, err)
	default:
		return chat.Message{}, fmt.Errorf("%w: %w", errors.ErrStorage, err)
	}
}

func (r *MessageRouter) filter(p chat.Payload) chat.Payload {
	if p.Text == "" || r.opts.Censor == nil {
		return p
	}
	censored, words := r.opts.Censor.Censor(p.Text)
	if len(words) > 0 {
		r.log.Info("message text censored", "words", len(words))
	}
	p.Text = censored
	return p
}
