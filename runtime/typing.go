package runtime

import (
	"context"
	"log/slog"
	"pair-chat/contract"
	"pair-chat/domain/chat"
	"pair-chat/domain/event"
	"pair-chat/observability"
	"sync"
	"time"
)

// DefaultTypingWindow matches how long clients keep the indicator without a fresh keystroke.
const DefaultTypingWindow = 1500 * time.Millisecond

// TypingDebouncer keeps one expiry per (from, to) pair, in memory only.
// A pair is active while now is before its expiry, whether or not a stop signal ever arrives.
// Notices go out on transitions only: a repeated signal just pushes the expiry forward.
type TypingDebouncer struct {
	mu       sync.Mutex
	expiries map[chat.Pair]time.Time
	window   time.Duration
	registry contract.IRegistry
	log      *slog.Logger
	metrics  *observability.Metrics
	now      func() time.Time
}

func NewTypingDebouncer(registry contract.IRegistry, window time.Duration, log *slog.Logger, metrics *observability.Metrics) *TypingDebouncer {
	if window <= 0 {
		window = DefaultTypingWindow
	}
	return &TypingDebouncer{
		expiries: make(map[chat.Pair]time.Time),
		window:   window,
		registry: registry,
		log:      log,
		metrics:  metrics,
		now:      time.Now,
	}
}

func (t *TypingDebouncer) SignalTyping(ctx context.Context, from, to chat.UserID) {
	if from == "" || to == "" || from == to {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	pair := chat.Pair{From: from, To: to}
	previous, ok := t.expiries[pair]
	wasActive := ok && now.Before(previous)
	expiry := now.Add(t.window)
	t.expiries[pair] = expiry

	if ok && !wasActive {
		// the previous window lapsed before a sweep reported it
		t.notify(ctx, pair, false, previous)
	}
	if !wasActive {
		t.notify(ctx, pair, true, expiry)
	}
}

// IsTyping checks the expiry lazily, so it is correct even between sweeps.
func (t *TypingDebouncer) IsTyping(from, to chat.UserID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	expiry, ok := t.expiries[chat.Pair{From: from, To: to}]
	return ok && t.now().Before(expiry)
}

// Sweep forgets expired pairs, tells their recipients typing stopped and returns how many expired.
func (t *TypingDebouncer) Sweep(ctx context.Context) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	expired := 0
	for pair, expiry := range t.expiries {
		if now.Before(expiry) {
			continue
		}
		delete(t.expiries, pair)
		t.notify(ctx, pair, false, expiry)
		expired++
	}
	return expired
}

// Clear drops every pair where user is the one typing, used once the user has no connection left.
func (t *TypingDebouncer) Clear(ctx context.Context, user chat.UserID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	for pair, expiry := range t.expiries {
		if pair.From != user {
			continue
		}
		delete(t.expiries, pair)
		if now.Before(expiry) {
			t.notify(ctx, pair, false, now)
		}
	}
}

// Stop ends a pair right away, e.g. when the typist sends the message.
func (t *TypingDebouncer) Stop(ctx context.Context, from, to chat.UserID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	pair := chat.Pair{From: from, To: to}
	expiry, ok := t.expiries[pair]
	if !ok {
		return
	}
	delete(t.expiries, pair)
	if now := t.now(); now.Before(expiry) {
		t.notify(ctx, pair, false, now)
	}
}

func (t *TypingDebouncer) tracked() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.expiries)
}

func (t *TypingDebouncer) notify(ctx context.Context, pair chat.Pair, active bool, expiresAt time.Time) {
	notice := event.TypingChanged{From: pair.From, To: pair.To, Active: active, ExpiresAt: expiresAt.UTC()}
	pushAll(ctx, t.log, t.metrics, t.registry.ConnectionsFor(pair.To), notice)
}
