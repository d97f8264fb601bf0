package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"pair-chat/contract"
	"pair-chat/domain/event"
	"pair-chat/errors"
	"pair-chat/observability"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// EventRelay forwards external events (check-ins and the like) to the source user's partners.
// Delivery is live only and at most once: offline partners simply miss it.
type EventRelay struct {
	registry contract.IRegistry
	partners contract.RelationshipProvider
	log      *slog.Logger
	metrics  *observability.Metrics
	now      func() time.Time
}

func NewEventRelay(registry contract.IRegistry, partners contract.RelationshipProvider, log *slog.Logger, metrics *observability.Metrics) *EventRelay {
	return &EventRelay{
		registry: registry,
		partners: partners,
		log:      log,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Relay returns how many connections accepted the notification.
func (r *EventRelay) Relay(ctx context.Context, ext event.External) (int, error) {
	if err := validate.Struct(ext); err != nil {
		return 0, fmt.Errorf("%w: %s", errors.ErrValidation, err.Error())
	}
	partners, err := r.partners.PartnersOf(ctx, ext.SourceUserID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errors.ErrStorage, err)
	}
	occurredAt := ext.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = r.now()
	}
	notification := event.Notification{
		Source:     ext.SourceUserID,
		EventKind:  ext.Kind,
		Payload:    ext.Payload,
		OccurredAt: occurredAt.UTC(),
	}

	reached := 0
	for _, partner := range partners {
		reached += pushAll(ctx, r.log, r.metrics, r.registry.ConnectionsFor(partner), notification)
	}
	if reached > 0 {
		r.metrics.IncrRelayed()
	}
	r.log.Debug("external event relayed", "source", ext.SourceUserID, "kind", ext.Kind, "connections", reached)
	return reached, nil
}
