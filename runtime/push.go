package runtime

import (
	"context"
	"log/slog"
	"pair-chat/contract"
	"pair-chat/domain/event"
	"pair-chat/observability"
)

// pushAll hands e to every connection and returns how many accepted it.
// A refused push is dropped: the connection is dead or too slow and will be unregistered by its session.
func pushAll(ctx context.Context, log *slog.Logger, metrics *observability.Metrics, conns []contract.Connection, e event.DomainEvent) int {
	accepted := 0
	for _, conn := range conns {
		if err := conn.Consume(ctx, e); err != nil {
			metrics.IncrDroppedPush(string(e.Kind()))
			log.Debug("push dropped",
				"kind", e.Kind(),
				"user_id", conn.UserID(),
				"connection_id", conn.ID(),
				"error", err)
			continue
		}
		accepted++
	}
	return accepted
}
