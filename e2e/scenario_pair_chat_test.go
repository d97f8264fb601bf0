package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"pair-chat/domain/chat"
	"pair-chat/domain/event"
	"pair-chat/infrastructure/grpc/client"
	ws "pair-chat/infrastructure/websocket"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type testPairChatSuite struct {
	BaseSuite
}

func TestPairChatSuite(t *testing.T) {
	suite.Run(t, &testPairChatSuite{})
}

func (s *testPairChatSuite) TestMatchedPairChatsAndReceivesCheckIns() {
	// Fresh ids keep reruns against the same server independent
	alice := chat.UserID("alice-" + uuid.NewString()[:8])
	bob := chat.UserID("bob-" + uuid.NewString()[:8])

	s.Run("Step 0: Match the pair", func() {
		s.Header(s.T(), "POST /api/admin/matches")
		s.Equal(http.StatusNoContent, s.Admin(http.MethodPost, "/api/admin/matches", map[string]chat.UserID{"a": alice, "b": bob}))
	})

	a := s.Connect(alice)
	a.Expect(string(event.JoinedKind))
	a.Expect(string(event.PresenceSnapshotKind))

	b := s.Connect(bob)
	b.Expect(string(event.JoinedKind))

	s.Run("Step 1: Alice sees Bob come online", func() {
		env := a.Expect(string(event.PresenceUpdateKind))
		var update struct {
			UserID chat.UserID `json:"user_id"`
			Online bool        `json:"online"`
		}
		s.Require().NoError(json.Unmarshal(env.Data, &update))
		s.Equal(bob, update.UserID)
		s.True(update.Online)
	})

	var messageID uuid.UUID
	s.Run("Step 2: Alice writes, Bob receives, Alice gets the ack", func() {
		a.Send(ws.SendMessageFrameType, "m1", ws.SendMessageFrame{To: bob, Text: "hello"})

		accepted := a.Expect(string(event.MessageAcceptedKind))
		s.Equal("m1", accepted.Ref)

		var msg chat.Message
		s.Require().NoError(json.Unmarshal(b.Expect(string(event.ReceiveMessageKind)).Data, &msg))
		s.Equal(alice, msg.From)
		s.Equal("hello", msg.Payload.Text)
		messageID = msg.ID
	})

	s.Run("Step 3: Bob reads, Alice gets the receipt", func() {
		b.Send(ws.MarkReadFrameType, "", ws.MarkReadFrame{MessageID: messageID})
		var receipt struct {
			MessageID uuid.UUID   `json:"message_id"`
			Reader    chat.UserID `json:"reader"`
		}
		s.Require().NoError(json.Unmarshal(a.Expect(string(event.ReadReceiptKind)).Data, &receipt))
		s.Equal(messageID, receipt.MessageID)
		s.Equal(bob, receipt.Reader)
	})

	s.Run("Step 4: A check-in of Alice reaches Bob through the relay", func() {
		s.WithRelay("relay.v1.RelayService/Relay", func(ctx context.Context, relay *client.RelayClient) {
			delivered, err := relay.Relay(ctx, event.External{
				SourceUserID: alice,
				Kind:         "check-in",
				Payload:      map[string]any{"place": "cafe"},
				OccurredAt:   time.Now().UTC(),
			})
			s.Require().NoError(err)
			s.Equal(1, delivered)
		})
		var notice struct {
			SourceUserID chat.UserID `json:"source_user_id"`
			Kind         string      `json:"kind"`
		}
		s.Require().NoError(json.Unmarshal(b.Expect(string(event.DomainEventKind)).Data, &notice))
		s.Equal(alice, notice.SourceUserID)
		s.Equal("check-in", notice.Kind)
	})

	s.Run("Step 5: Bob logs out, Alice sees Bob go offline", func() {
		b.Close()
		var update struct {
			UserID chat.UserID `json:"user_id"`
			Online bool        `json:"online"`
		}
		s.Require().NoError(json.Unmarshal(a.Expect(string(event.PresenceUpdateKind)).Data, &update))
		s.Equal(bob, update.UserID)
		s.False(update.Online)
	})
}
