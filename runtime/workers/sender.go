package workers

import (
	"context"
	"log/slog"
	"pair-chat/contract"
	"pair-chat/domain/chat"
	"pair-chat/domain/event"
	"pair-chat/errors"
)

var _ contract.Worker = (*SenderWorker)(nil)

// MessageSender is the part of the router a sender worker drives.
type MessageSender interface {
	Send(ctx context.Context, draft chat.Draft) (chat.Message, error)
}

// SenderWorker drains one shard of send commands in order.
// All drafts of a given (from, to) pair land on the same shard, which keeps them FIFO.
type SenderWorker struct {
	shard    int
	commands <-chan contract.SendMessageCommand
	sender   MessageSender
	log      *slog.Logger
}

func NewSenderWorker(shard int, commands <-chan contract.SendMessageCommand, sender MessageSender, log *slog.Logger) *SenderWorker {
	return &SenderWorker{
		shard:    shard,
		commands: commands,
		sender:   sender,
		log:      log.With("shard", shard),
	}
}

func (w *SenderWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping sender worker")
			return ctx.Err()
		case cmd, ok := <-w.commands:
			if !ok {
				w.log.Debug("Command channel is closed")
				return nil
			}
			w.handle(ctx, cmd)
		}
	}
}

func (w *SenderWorker) handle(ctx context.Context, cmd contract.SendMessageCommand) {
	msg, err := w.sender.Send(ctx, cmd.Draft)
	if cmd.Origin == nil {
		return
	}
	var outcome event.DomainEvent = event.MessageAccepted{Ref: cmd.Draft.Ref, Message: msg}
	if err != nil {
		w.log.Debug("send rejected", "from", cmd.Draft.From, "to", cmd.Draft.To, "error", err)
		outcome = event.Failure{
			Code:    string(errors.CodeOf(err)),
			Message: err.Error(),
			Ref:     cmd.Draft.Ref,
		}
	}
	if err := cmd.Origin.Consume(ctx, outcome); err != nil {
		w.log.Debug("send outcome not delivered to origin", "error", err)
	}
}
