// Package runtime wires the live messaging core: registry, presence, typing, routing and relay.
// It owns no transport and no storage; both come in through contract interfaces.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"pair-chat/contract"
	"pair-chat/domain/chat"
	"pair-chat/errors"
	"pair-chat/runtime/workers"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

type Orchestrator struct {
	log           *slog.Logger
	supervisor    contract.ISupervisor
	registry      *Registry
	presence      *PresenceBroadcaster
	typing        *TypingDebouncer
	router        *MessageRouter
	shards        []chan contract.SendMessageCommand
	sweepInterval time.Duration
}

var _ contract.IOrchestrator = (*Orchestrator)(nil)

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor,
	registry *Registry, presence *PresenceBroadcaster, typing *TypingDebouncer, router *MessageRouter,
	numWorkers, bufferSize int, sweepInterval time.Duration) *Orchestrator {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	shards := make([]chan contract.SendMessageCommand, numWorkers)
	for i := range shards {
		shards[i] = make(chan contract.SendMessageCommand, bufferSize)
	}
	return &Orchestrator{
		log:           log,
		supervisor:    supervisor,
		registry:      registry,
		presence:      presence,
		typing:        typing,
		router:        router,
		shards:        shards,
		sweepInterval: sweepInterval,
	}
}

// Join registers conn, sends it the online partners and flushes what was sent while the user was away.
func (o *Orchestrator) Join(ctx context.Context, conn contract.Connection) error {
	if conn.UserID() == "" {
		return fmt.Errorf("%w: join without a user", errors.ErrValidation)
	}
	o.registry.Register(ctx, conn)

	if err := o.presence.Snapshot(ctx, conn); err != nil {
		o.log.Warn("presence snapshot not sent", "user_id", conn.UserID(), "error", err)
	}
	delivered, err := o.router.SyncPending(ctx, conn.UserID())
	if err != nil {
		o.log.Error("pending messages not synced", "user_id", conn.UserID(), "error", err)
	}
	if delivered > 0 {
		o.log.Info("pending messages delivered on join", "user_id", conn.UserID(), "count", delivered)
	}
	return nil
}

// Leave is safe to call several times for the same connection.
func (o *Orchestrator) Leave(ctx context.Context, conn contract.Connection) {
	if !o.registry.Unregister(ctx, conn) {
		return
	}
	if !o.registry.IsOnline(conn.UserID()) {
		o.typing.Clear(ctx, conn.UserID())
	}
}

// Dispatch queues a draft on the shard owning its pair and never blocks the caller.
func (o *Orchestrator) Dispatch(cmd contract.SendMessageCommand) error {
	shard := o.shardFor(cmd.Draft.From, cmd.Draft.To)
	select {
	case o.shards[shard] <- cmd:
		return nil
	default:
		o.log.Warn("sender shard full, dropping command", "shard", shard, "from", cmd.Draft.From)
		return fmt.Errorf("%w: sender shard %d", errors.ErrBackpressure, shard)
	}
}

func (o *Orchestrator) Typing(ctx context.Context, from, to chat.UserID) {
	o.typing.SignalTyping(ctx, from, to)
}

func (o *Orchestrator) MarkRead(ctx context.Context, id uuid.UUID, reader chat.UserID) error {
	return o.router.MarkRead(ctx, id, reader)
}

// Start blocks until the supervised workers stop.
func (o *Orchestrator) Start(ctx context.Context) error {
	for i, shard := range o.shards {
		o.supervisor.Add(workers.NewSenderWorker(i, shard, o.router, o.log))
	}
	if o.sweepInterval > 0 {
		o.supervisor.Add(workers.NewTypingSweeper(o.typing, o.sweepInterval, o.log))
	}
	o.log.Info("Starting orchestrator and all supervised workers", "sender_shards", len(o.shards))
	o.supervisor.Run(ctx)
	return nil
}

func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()
}

func (o *Orchestrator) shardFor(from, to chat.UserID) int {
	key := chat.Pair{From: from, To: to}.String()
	return int(xxhash.Sum64String(key) % uint64(len(o.shards)))
}
