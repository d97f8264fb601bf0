package websocket

import (
	"encoding/json"
	"pair-chat/domain/chat"
	"pair-chat/domain/event"
	"pair-chat/errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestDecodeInbound(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name    string
		raw     string
		want    Inbound
		wantRef string
		wantErr bool
	}{
		{"join", `{"type":"join","data":{"user_id":"alice"}}`, JoinFrame{UserID: "alice"}, "", false},
		{"send with ref", `{"type":"send-message","ref":"r1","data":{"to":"bob","text":"hi"}}`,
			SendMessageFrame{To: "bob", Text: "hi"}, "r1", false},
		{"send without recipient is left to the draft", `{"type":"send-message","data":{"text":"hi"}}`,
			SendMessageFrame{Text: "hi"}, "", false},
		{"typing", `{"type":"typing","data":{"to":"bob"}}`, TypingFrame{To: "bob"}, "", false},
		{"mark read", `{"type":"mark-read","data":{"message_id":"` + id.String() + `"}}`, MarkReadFrame{MessageID: id}, "", false},
		{"logout", `{"type":"logout"}`, LogoutFrame{}, "", false},
		{"ping", `{"type":"ping","ref":"p"}`, PingFrame{}, "p", false},
		{"not json", `hello`, nil, "", true},
		{"unknown type", `{"type":"shout","ref":"x","data":{}}`, nil, "x", true},
		{"unknown field", `{"type":"join","data":{"user_id":"alice","admin":true}}`, nil, "", true},
		{"join without user", `{"type":"join","data":{}}`, nil, "", true},
		{"typing without recipient", `{"type":"typing","data":{"to":""}}`, nil, "", true},
		{"mark read nil id", `{"type":"mark-read","data":{"message_id":"00000000-0000-0000-0000-000000000000"}}`, nil, "", true},
		{"mark read bad id", `{"type":"mark-read","data":{"message_id":"nope"}}`, nil, "", true},
		{"missing data", `{"type":"send-message"}`, nil, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			env, frame, err := DecodeInbound([]byte(tt.raw))
			if tt.wantErr {
				req.ErrorIs(err, errors.ErrProtocol)
				req.Equal(errors.CodeProtocol, errors.CodeOf(err))
			} else {
				req.NoError(err)
				req.Equal(tt.want, frame)
			}
			req.Equal(tt.wantRef, env.Ref)
		})
	}
}

func TestEncodeOutbound(t *testing.T) {
	req := require.New(t)
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	msg := chat.Message{ID: uuid.New(), From: "alice", To: "bob", SentAt: at, Payload: chat.Payload{Text: "hi"}, State: chat.Delivered}

	// A received message carries its state as text
	raw, err := EncodeOutbound(event.MessageReceived{Message: msg})
	req.NoError(err)
	var env Envelope
	req.NoError(json.Unmarshal(raw, &env))
	req.Equal("receive-message", env.Type)
	var got chat.Message
	req.NoError(json.Unmarshal(env.Data, &got))
	req.Equal(msg, got)
	req.Contains(string(env.Data), `"state":"delivered"`)

	// An acknowledgement echoes the client ref in the envelope
	raw, err = EncodeOutbound(event.MessageAccepted{Ref: "r1", Message: msg})
	req.NoError(err)
	req.NoError(json.Unmarshal(raw, &env))
	req.Equal("message-accepted", env.Type)
	req.Equal("r1", env.Ref)

	// An expired typing notice has no expiry
	raw, err = EncodeOutbound(event.TypingChanged{From: "alice", To: "bob", Active: false})
	req.NoError(err)
	req.NotContains(string(raw), "expires_at")

	// An empty snapshot is an empty list, not null
	raw, err = EncodeOutbound(event.PresenceSnapshot{})
	req.NoError(err)
	req.Contains(string(raw), `"online":[]`)
}
