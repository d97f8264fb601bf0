package test

import (
	"context"
	"log/slog"
	"pair-chat/contract"
	"pair-chat/domain/chat"
	"pair-chat/domain/event"
	"pair-chat/infrastructure/search"
	"pair-chat/infrastructure/storage"
	"pair-chat/mocks"
	"pair-chat/moderation"
	"pair-chat/runtime"
	"pair-chat/runtime/workers"
	"testing"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// recorder collects what a mocked connection is asked to consume.
type recorder struct {
	events chan event.DomainEvent
}

func (r recorder) consume(_ context.Context, e event.DomainEvent) error {
	r.events <- e
	return nil
}

func (r recorder) next(t *testing.T, kind event.Kind) event.DomainEvent {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case e := <-r.events:
			if e.Kind() == kind {
				return e
			}
		case <-timeout:
			t.Fatalf("no %s event", kind)
			return nil
		}
	}
}

func mockConnection(ctrl *gomock.Controller, user chat.UserID, id chat.ConnectionID) (*mocks.MockConnection, recorder) {
	rec := recorder{events: make(chan event.DomainEvent, 32)}
	conn := mocks.NewMockConnection(ctrl)
	conn.EXPECT().UserID().Return(user).AnyTimes()
	conn.EXPECT().ID().Return(id).AnyTimes()
	conn.EXPECT().ConnectedAt().Return(time.Now()).AnyTimes()
	conn.EXPECT().Alive().Return(true).AnyTimes()
	conn.EXPECT().Consume(gomock.Any(), gomock.Any()).DoAndReturn(rec.consume).AnyTimes()
	return conn, rec
}

func Test_Scenario(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req := require.New(t)
	// Reduced to 16 Mo for testing
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR).
		WithValueLogFileSize(16 << 20))
	req.NoError(err)
	defer db.Close()
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(t.TempDir()))
	req.NoError(err)
	defer writer.Close()

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	messages := storage.NewMessageRepository(db, log)
	matches := storage.NewRelationshipRepository(db, log)
	moderator, err := moderation.NewModerator([]string{"badword"}, '*', log)
	req.NoError(err)

	registry := runtime.NewRegistry(log, nil)
	presence := runtime.NewPresenceBroadcaster(registry, matches, log, nil)
	registry.Listen(presence)
	typing := runtime.NewTypingDebouncer(registry, 500*time.Millisecond, log, nil)
	router := runtime.NewMessageRouter(messages, registry, typing, runtime.RouterOptions{
		Censor:         moderator,
		DetectLanguage: moderation.DetectLanguage,
		Index:          search.NewMessageIndex(writer, log),
	}, log, nil)
	supervisor := workers.NewSupervisor(log, 200*time.Millisecond)
	orchestrator := runtime.NewOrchestrator(log, supervisor, registry, presence, typing, router, 4, 100, 50*time.Millisecond)
	go func() { _ = orchestrator.Start(ctx) }()
	defer orchestrator.Stop()

	req.NoError(matches.Link(ctx, "alice", "bob"))
	ctrl := gomock.NewController(t)

	// Given alice online and bob offline
	aliceConn, alice := mockConnection(ctrl, "alice", "c-alice")
	req.NoError(orchestrator.Join(ctx, aliceConn))

	// When alice writes to bob
	req.NoError(orchestrator.Dispatch(chatCommand(aliceConn, "bob", "you said badword yesterday, meet at the station")))

	// Then alice gets the ack with a Sent state and the text is stored censored
	accepted := alice.next(t, event.MessageAcceptedKind).(event.MessageAccepted)
	req.Equal(chat.Sent, accepted.Message.State)
	stored, err := messages.GetMessage(ctx, accepted.Message.ID)
	req.NoError(err)
	req.NotContains(stored.Payload.Text, "badword")

	// When bob joins
	bobConn, bob := mockConnection(ctrl, "bob", "c-bob")
	req.NoError(orchestrator.Join(ctx, bobConn))

	// Then alice sees bob online, bob receives the pending message and it is Delivered
	update := alice.next(t, event.PresenceUpdateKind).(event.PresenceChanged)
	req.Equal(chat.UserID("bob"), update.User)
	req.True(update.Online)
	received := bob.next(t, event.ReceiveMessageKind).(event.MessageReceived)
	req.Equal(accepted.Message.ID, received.Message.ID)
	stored, err = messages.GetMessage(ctx, accepted.Message.ID)
	req.NoError(err)
	req.Equal(chat.Delivered, stored.State)

	// When bob reads it
	req.NoError(orchestrator.MarkRead(ctx, received.Message.ID, "bob"))

	// Then alice gets the receipt and search finds the message
	receipt := alice.next(t, event.ReadReceiptKind).(event.ReadReceipt)
	req.Equal(received.Message.ID, receipt.MessageID)
	found, err := router.Search(ctx, "bob", "alice", "station", 10)
	req.NoError(err)
	req.Len(found, 1)
	req.Equal(chat.Read, found[0].State)

	// When bob leaves
	orchestrator.Leave(ctx, bobConn)

	// Then alice sees bob offline
	update = alice.next(t, event.PresenceUpdateKind).(event.PresenceChanged)
	req.False(update.Online)
}

func chatCommand(origin *mocks.MockConnection, to chat.UserID, text string) contract.SendMessageCommand {
	return contract.SendMessageCommand{
		Draft:  chat.Draft{From: origin.UserID(), To: to, Payload: chat.Payload{Text: text}, Ref: "r1"},
		Origin: origin,
	}
}
