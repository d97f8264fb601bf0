package moderation_test

import (
	"context"
	"log/slog"
	"pair-chat/domain/chat"
	"pair-chat/mocks"
	"pair-chat/moderation"
	"pair-chat/runtime"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestModerator_CensorsChatMessageBeforeItIsStored(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	mod, err := moderation.NewModerator([]string{"badger"}, '*', log)
	req.NoError(err)

	ctrl := gomock.NewController(t)
	store := mocks.NewMockMessageStore(ctrl)
	var saved chat.Message
	store.EXPECT().SaveMessage(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg chat.Message) error {
			saved = msg
			return nil
		},
	).Times(1)

	registry := runtime.NewRegistry(log, nil)
	router := runtime.NewMessageRouter(store, registry, nil, runtime.RouterOptions{
		Censor:         mod,
		DetectLanguage: moderation.DetectLanguage,
	}, log, nil)

	// Given alice writes to bob, who is offline, with a disguised word
	draft := chat.Draft{
		From:    "alice",
		To:      "bob",
		Payload: chat.Payload{Text: "I saw a B.4.d.g.€r on my morning run and I feel great about the week"},
	}

	// When the router accepts it
	msg, err := router.Send(ctx, draft)

	// Then the stored text and the returned copy are masked with the same length
	req.NoError(err)
	req.Equal("I saw a ********** on my morning run and I feel great about the week", saved.Payload.Text)
	req.Equal(saved.Payload.Text, msg.Payload.Text)
	req.Equal(chat.Sent, msg.State)
}
