package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"pair-chat/codec"
	"pair-chat/contract"
	"pair-chat/domain/chat"
	"pair-chat/errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// Key layout:
//
//	msg:{id}                                  the message itself (CBOR)
//	conv:{conversation}:{sentAt 19 digits}:{id}  history index, empty value
//	pending:{to}:{from}:{sentAt 19 digits}:{id}  messages still Sent, empty value
//
// User ids are base64url encoded inside keys so they can never contain the ':' separator.
// The zero padded nanosecond timestamp makes lexical order chronological.
const (
	messagePrefix = "msg:"
	convPrefix    = "conv:"
	pendingPrefix = "pending:"
)

var cursorFormat = regexp.MustCompile(`^\d{19}:[0-9a-f-]{36}$`)

type DiskAttachment struct {
	ID          string `cbor:"1,keyasint"`
	ContentType string `cbor:"2,keyasint"`
	Size        int64  `cbor:"3,keyasint"`
	Name        string `cbor:"4,keyasint,omitempty"`
}

type DiskMessage struct {
	ID         uuid.UUID          `cbor:"1,keyasint"`
	From       string             `cbor:"2,keyasint"`
	To         string             `cbor:"3,keyasint"`
	SentAt     time.Time          `cbor:"4,keyasint"`
	Text       string             `cbor:"5,keyasint,omitempty"`
	Attachment *DiskAttachment    `cbor:"6,keyasint,omitempty"`
	Lang       string             `cbor:"7,keyasint,omitempty"`
	State      chat.DeliveryState `cbor:"8,keyasint"`
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

var _ contract.MessageStore = (*MessageRepository)(nil)

func NewMessageRepository(db *badger.DB, log *slog.Logger) *MessageRepository {
	return &MessageRepository{db: db, log: log}
}

// SaveMessage writes the message and its indexes in one transaction.
func (m *MessageRepository) SaveMessage(_ context.Context, msg chat.Message) error {
	data, err := codec.Marshal(toDiskMessage(msg))
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(messageKey(msg.ID), data); err != nil {
			return err
		}
		if err := txn.Set(convKey(msg), nil); err != nil {
			return err
		}
		if msg.State == chat.Sent {
			return txn.Set(pendingKey(msg), nil)
		}
		return nil
	})
}

func (m *MessageRepository) GetMessage(_ context.Context, id uuid.UUID) (chat.Message, error) {
	var msg chat.Message
	err := m.db.View(func(txn *badger.Txn) error {
		var err error
		msg, err = readMessage(txn, id)
		return err
	})
	return msg, err
}

// LoadHistory walks the conversation backwards from cursor (exclusive) and returns up to limit
// messages, oldest first. The returned cursor is nil once the beginning is reached.
func (m *MessageRepository) LoadHistory(_ context.Context, a, b chat.UserID, cursor *string, limit int) ([]chat.Message, *string, error) {
	if cursor != nil && !cursorFormat.MatchString(*cursor) {
		return nil, nil, fmt.Errorf("%w: malformed cursor", errors.ErrValidation)
	}
	prefix := []byte(convPrefix + chat.ConversationKey(a, b) + ":")

	var msgs []chat.Message
	var next *string
	err := m.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		seek := append(append([]byte{}, prefix...), []byte("9999999999999999999")...)
		if cursor != nil {
			seek = append(append([]byte{}, prefix...), []byte(*cursor)...)
		}
		it.Seek(seek)
		if cursor != nil && it.ValidForPrefix(prefix) && bytes.Equal(it.Item().Key(), seek) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(msgs) == limit {
				last := cursorOf(msgs[len(msgs)-1])
				next = &last
				break
			}
			id, err := idFromKey(it.Item().Key())
			if err != nil {
				return err
			}
			msg, err := readMessage(txn, id)
			if err != nil {
				return err
			}
			msgs = append(msgs, msg)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	// collected newest first
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, next, nil
}

// UpdateDeliveryState only moves forward; anything else is ErrStateRegression and leaves the record untouched.
func (m *MessageRepository) UpdateDeliveryState(_ context.Context, id uuid.UUID, state chat.DeliveryState) error {
	return m.db.Update(func(txn *badger.Txn) error {
		msg, err := readMessage(txn, id)
		if err != nil {
			return err
		}
		next, err := msg.State.Advance(state)
		if err != nil {
			return err
		}
		msg.State = next
		data, err := codec.Marshal(toDiskMessage(msg))
		if err != nil {
			return err
		}
		if err := txn.Set(messageKey(id), data); err != nil {
			return err
		}
		return txn.Delete(pendingKey(msg))
	})
}

// PendingFor lists the Sent messages addressed to user, oldest first.
func (m *MessageRepository) PendingFor(_ context.Context, to chat.UserID) ([]chat.Message, error) {
	msgs, err := m.scanPending([]byte(pendingPrefix + chat.EncodeUserID(to) + ":"))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].SentAt.Before(msgs[j].SentAt) })
	return msgs, nil
}

func (m *MessageRepository) PendingBetween(_ context.Context, from, to chat.UserID) ([]chat.Message, error) {
	return m.scanPending([]byte(pendingPrefix + chat.EncodeUserID(to) + ":" + chat.EncodeUserID(from) + ":"))
}

func (m *MessageRepository) scanPending(prefix []byte) ([]chat.Message, error) {
	var msgs []chat.Message
	err := m.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id, err := idFromKey(it.Item().Key())
			if err != nil {
				return err
			}
			msg, err := readMessage(txn, id)
			if err != nil {
				return err
			}
			msgs = append(msgs, msg)
		}
		return nil
	})
	return msgs, err
}

func readMessage(txn *badger.Txn, id uuid.UUID) (chat.Message, error) {
	item, err := txn.Get(messageKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return chat.Message{}, fmt.Errorf("%w: %s", errors.ErrMessageNotFound, id)
	}
	if err != nil {
		return chat.Message{}, err
	}
	var msg chat.Message
	err = item.Value(func(v []byte) error {
		msg, err = DecodeMessage(v)
		return err
	})
	return msg, err
}

// IsMessageKey reports whether key holds a message rather than an index entry.
func IsMessageKey(key string) bool {
	return strings.HasPrefix(key, messagePrefix)
}

// DecodeMessage reads the value stored under a message key.
func DecodeMessage(val []byte) (chat.Message, error) {
	var disk DiskMessage
	if err := codec.Unmarshal(val, &disk); err != nil {
		return chat.Message{}, fmt.Errorf("%w: %w", errors.ErrStorage, err)
	}
	return fromDiskMessage(disk), nil
}

func messageKey(id uuid.UUID) []byte {
	return []byte(messagePrefix + id.String())
}

func convKey(msg chat.Message) []byte {
	return []byte(fmt.Sprintf("%s%s:%s", convPrefix, msg.Conversation(), cursorOf(msg)))
}

func pendingKey(msg chat.Message) []byte {
	return []byte(fmt.Sprintf("%s%s:%s:%s", pendingPrefix,
		chat.EncodeUserID(msg.To), chat.EncodeUserID(msg.From), cursorOf(msg)))
}

func cursorOf(msg chat.Message) string {
	return fmt.Sprintf("%019d:%s", msg.SentAt.UnixNano(), msg.ID)
}

// idFromKey reads the uuid every index key ends with.
func idFromKey(key []byte) (uuid.UUID, error) {
	if len(key) < 36 {
		return uuid.Nil, fmt.Errorf("%w: short key %q", errors.ErrStorage, key)
	}
	return uuid.ParseBytes(key[len(key)-36:])
}

func toDiskMessage(msg chat.Message) DiskMessage {
	disk := DiskMessage{
		ID:     msg.ID,
		From:   string(msg.From),
		To:     string(msg.To),
		SentAt: msg.SentAt,
		Text:   msg.Payload.Text,
		Lang:   msg.Lang,
		State:  msg.State,
	}
	if a := msg.Payload.Attachment; a != nil {
		disk.Attachment = &DiskAttachment{ID: a.ID, ContentType: a.ContentType, Size: a.Size, Name: a.Name}
	}
	return disk
}

func fromDiskMessage(disk DiskMessage) chat.Message {
	msg := chat.Message{
		ID:      disk.ID,
		From:    chat.UserID(disk.From),
		To:      chat.UserID(disk.To),
		SentAt:  disk.SentAt.UTC(),
		Payload: chat.Payload{Text: disk.Text},
		Lang:    disk.Lang,
		State:   disk.State,
	}
	if a := disk.Attachment; a != nil {
		msg.Payload.Attachment = &chat.Attachment{ID: a.ID, ContentType: a.ContentType, Size: a.Size, Name: a.Name}
	}
	return msg
}
