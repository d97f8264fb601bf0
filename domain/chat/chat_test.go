package chat

import (
	"math/rand"
	"pair-chat/errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDraft_Validate(t *testing.T) {
	req := require.New(t)

	ok := Draft{From: "alice", To: "bob", Payload: Payload{Text: "hello"}}
	req.NoError(ok.Validate(100))

	withFile := Draft{From: "alice", To: "bob", Payload: Payload{Attachment: &Attachment{ID: "abc", ContentType: "audio/webm", Size: 12}}}
	req.NoError(withFile.Validate(100))

	// Empty payload and empty recipient
	err := Draft{From: "alice"}.Validate(100)
	req.ErrorIs(err, errors.ErrValidation)

	err = Draft{From: "alice", To: "bob", Payload: Payload{Text: "   "}}.Validate(100)
	req.ErrorIs(err, errors.ErrValidation)
	req.ErrorIs(err, errors.ErrEmptyPayload)

	err = Draft{From: "alice", To: "alice", Payload: Payload{Text: "me"}}.Validate(100)
	req.ErrorIs(err, errors.ErrSelfMessage)

	err = Draft{From: "alice", To: "bob", Payload: Payload{Text: strings.Repeat("é", 11)}}.Validate(10)
	req.ErrorIs(err, errors.ErrValidation)

	// Attachment reference without a content type
	err = Draft{From: "alice", To: "bob", Payload: Payload{Attachment: &Attachment{ID: "abc", Size: 1}}}.Validate(100)
	req.ErrorIs(err, errors.ErrValidation)
}

func TestConversationKey_IsSymmetric(t *testing.T) {
	req := require.New(t)

	req.Equal(ConversationKey("alice", "bob"), ConversationKey("bob", "alice"))
	req.NotEqual(ConversationKey("alice", "bob"), ConversationKey("alice", "carol"))
	// ids containing the separator cannot collide
	req.NotEqual(ConversationKey("a.b", "c"), ConversationKey("a", "b.c"))
}

func TestDeliveryState_Advance(t *testing.T) {
	req := require.New(t)

	next, err := Sent.Advance(Delivered)
	req.NoError(err)
	req.Equal(Delivered, next)

	next, err = Delivered.Advance(Sent)
	req.ErrorIs(err, errors.ErrStateRegression)
	req.Equal(Delivered, next)

	_, err = Read.Advance(Read)
	req.ErrorIs(err, errors.ErrStateRegression)

	req.True(Sent.CanAdvanceTo(Read))
	req.False(Read.CanAdvanceTo(Delivered))
	req.False(Sent.CanAdvanceTo(DeliveryState(9)))
}

func TestDeliveryState_NeverRegressesUnderRandomInterleavings(t *testing.T) {
	req := require.New(t)
	rnd := rand.New(rand.NewSource(42))
	transitions := []DeliveryState{Sent, Delivered, Read}

	for run := 0; run < 500; run++ {
		state := Sent
		for step := 0; step < 20; step++ {
			previous := state
			if next, err := state.Advance(transitions[rnd.Intn(len(transitions))]); err == nil {
				state = next
			}
			req.GreaterOrEqual(state, previous)
		}
	}
}

func TestDeliveryState_Text(t *testing.T) {
	req := require.New(t)

	text, err := Delivered.MarshalText()
	req.NoError(err)
	req.Equal("delivered", string(text))

	var s DeliveryState
	req.NoError(s.UnmarshalText([]byte("read")))
	req.Equal(Read, s)
	req.Error(s.UnmarshalText([]byte("lost")))
}
