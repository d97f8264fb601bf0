package runtime

import (
	"context"
	"log/slog"
	"pair-chat/contract"
	"pair-chat/domain/chat"
	"pair-chat/domain/event"
	"pair-chat/observability"
	"time"

	"github.com/samber/lo"
)

// PresenceBroadcaster tells matched partners when a user comes and goes.
// It is driven by the registry and never keeps a presence table of its own.
type PresenceBroadcaster struct {
	registry contract.IRegistry
	partners contract.RelationshipProvider
	log      *slog.Logger
	metrics  *observability.Metrics
	now      func() time.Time
}

var _ contract.PresenceListener = (*PresenceBroadcaster)(nil)

func NewPresenceBroadcaster(registry contract.IRegistry, partners contract.RelationshipProvider, log *slog.Logger, metrics *observability.Metrics) *PresenceBroadcaster {
	return &PresenceBroadcaster{
		registry: registry,
		partners: partners,
		log:      log,
		metrics:  metrics,
		now:      time.Now,
	}
}

func (p *PresenceBroadcaster) PresenceChanged(ctx context.Context, user chat.UserID, online bool) {
	partners, err := p.partners.PartnersOf(ctx, user)
	if err != nil {
		p.log.Warn("presence not broadcast, partners unavailable", "user_id", user, "error", err)
		return
	}
	update := event.PresenceChanged{User: user, Online: online, At: p.now().UTC()}
	reached := 0
	for _, partner := range partners {
		reached += pushAll(ctx, p.log, p.metrics, p.registry.ConnectionsFor(partner), update)
	}
	p.log.Debug("presence broadcast", "user_id", user, "online", online, "connections", reached)
}

// Snapshot sends conn the list of its user's partners that are online right now.
func (p *PresenceBroadcaster) Snapshot(ctx context.Context, conn contract.Connection) error {
	partners, err := p.partners.PartnersOf(ctx, conn.UserID())
	if err != nil {
		return err
	}
	online := lo.Filter(partners, func(partner chat.UserID, _ int) bool {
		return p.registry.IsOnline(partner)
	})
	return conn.Consume(ctx, event.PresenceSnapshot{Online: online})
}
