// Package chat holds the pairwise conversation model: messages, drafts and their delivery life cycle.
package chat

import (
	"encoding/base64"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserID is issued by the identity provider and never generated here.
type UserID string

// ConnectionID identifies one live transport session.
type ConnectionID string

type Attachment struct {
	ID          string `json:"id" validate:"required,max=128"`
	ContentType string `json:"content_type" validate:"required,max=255"`
	Size        int64  `json:"size" validate:"gt=0"`
	Name        string `json:"name,omitempty" validate:"max=255"`
}

// Payload is either inline text or a reference to a stored blob.
type Payload struct {
	Text       string      `json:"text,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

func (p Payload) IsEmpty() bool {
	return strings.TrimSpace(p.Text) == "" && p.Attachment == nil
}

// Message is immutable once accepted, except for its State.
type Message struct {
	ID      uuid.UUID     `json:"id"`
	From    UserID        `json:"from"`
	To      UserID        `json:"to"`
	SentAt  time.Time     `json:"sent_at"`
	Payload Payload       `json:"payload"`
	Lang    string        `json:"lang,omitempty"`
	State   DeliveryState `json:"state"`
}

func (m Message) Conversation() string {
	return ConversationKey(m.From, m.To)
}

// Involves reports whether user is one of the two participants.
func (m Message) Involves(user UserID) bool {
	return m.From == user || m.To == user
}

// EncodeUserID makes a user id safe to embed inside storage keys.
func EncodeUserID(user UserID) string {
	return base64.RawURLEncoding.EncodeToString([]byte(user))
}

// ConversationKey is the same for (a, b) and (b, a).
func ConversationKey(a, b UserID) string {
	ids := []string{EncodeUserID(a), EncodeUserID(b)}
	sort.Strings(ids)
	return ids[0] + "." + ids[1]
}

// Pair is an ordered (from, to) couple, used for typing state and per-pair ordering.
type Pair struct {
	From UserID
	To   UserID
}

func (p Pair) String() string {
	return EncodeUserID(p.From) + ">" + EncodeUserID(p.To)
}
