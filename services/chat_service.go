package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"pair-chat/contract"
	"pair-chat/domain/chat"
	"pair-chat/domain/event"
	"pair-chat/errors"
)

// IChatService is everything the request/response surfaces (HTTP, gRPC) may do.
// Live traffic goes through the orchestrator instead.
type IChatService interface {
	History(ctx context.Context, requester, partner chat.UserID, cursor *string) (HistoryPage, error)
	Search(ctx context.Context, requester, partner chat.UserID, query string, limit int) ([]chat.Message, error)
	UploadAttachment(ctx context.Context, uploader chat.UserID, name string, r io.Reader) (chat.Attachment, error)
	OpenAttachment(ctx context.Context, id string) (chat.Attachment, io.ReadCloser, error)
	Relay(ctx context.Context, ext event.External) (int, error)
	Match(ctx context.Context, a, b chat.UserID) error
	Unmatch(ctx context.Context, a, b chat.UserID) error
	Partners(ctx context.Context, user chat.UserID) ([]chat.UserID, error)
	OnlineUsers() []chat.UserID
}

type HistoryPage struct {
	Messages   []chat.Message `json:"messages"`
	NextCursor *string        `json:"next_cursor,omitempty"`
}

// MessageReader is the read side of the message router.
type MessageReader interface {
	History(ctx context.Context, requester, partner chat.UserID, cursor *string) ([]chat.Message, *string, error)
	Search(ctx context.Context, requester, partner chat.UserID, query string, limit int) ([]chat.Message, error)
}

type Relayer interface {
	Relay(ctx context.Context, ext event.External) (int, error)
}

type ChatService struct {
	log         *slog.Logger
	messages    MessageReader
	relay       Relayer
	registry    contract.IRegistry
	attachments contract.AttachmentStore
	matches     contract.RelationshipStore
}

var _ IChatService = (*ChatService)(nil)

func NewChatService(log *slog.Logger, messages MessageReader, relay Relayer, registry contract.IRegistry,
	attachments contract.AttachmentStore, matches contract.RelationshipStore) *ChatService {
	return &ChatService{
		log:         log,
		messages:    messages,
		relay:       relay,
		registry:    registry,
		attachments: attachments,
		matches:     matches,
	}
}

func (s *ChatService) History(ctx context.Context, requester, partner chat.UserID, cursor *string) (HistoryPage, error) {
	msgs, next, err := s.messages.History(ctx, requester, partner, cursor)
	if err != nil {
		return HistoryPage{}, err
	}
	if msgs == nil {
		msgs = []chat.Message{}
	}
	return HistoryPage{Messages: msgs, NextCursor: next}, nil
}

func (s *ChatService) Search(ctx context.Context, requester, partner chat.UserID, query string, limit int) ([]chat.Message, error) {
	return s.messages.Search(ctx, requester, partner, query, limit)
}

// UploadAttachment only stores the blob; the reference travels later inside a send-message frame.
func (s *ChatService) UploadAttachment(ctx context.Context, uploader chat.UserID, name string, r io.Reader) (chat.Attachment, error) {
	if uploader == "" {
		return chat.Attachment{}, fmt.Errorf("%w: anonymous upload", errors.ErrAuth)
	}
	attachment, err := s.attachments.StoreBlob(ctx, name, r)
	if err != nil {
		if errors.CodeOf(err) == errors.CodeInternal {
			return chat.Attachment{}, fmt.Errorf("%w: %w", errors.ErrStorage, err)
		}
		return chat.Attachment{}, err
	}
	s.log.Info("attachment uploaded", "user_id", uploader, "attachment_id", attachment.ID, "content_type", attachment.ContentType)
	return attachment, nil
}

func (s *ChatService) OpenAttachment(ctx context.Context, id string) (chat.Attachment, io.ReadCloser, error) {
	return s.attachments.OpenBlob(ctx, id)
}

func (s *ChatService) Relay(ctx context.Context, ext event.External) (int, error) {
	return s.relay.Relay(ctx, ext)
}

func (s *ChatService) Match(ctx context.Context, a, b chat.UserID) error {
	if err := s.matches.Link(ctx, a, b); err != nil {
		return err
	}
	s.log.Info("users matched", "a", a, "b", b)
	return nil
}

func (s *ChatService) Unmatch(ctx context.Context, a, b chat.UserID) error {
	if err := s.matches.Unlink(ctx, a, b); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrStorage, err)
	}
	s.log.Info("users unmatched", "a", a, "b", b)
	return nil
}

func (s *ChatService) Partners(ctx context.Context, user chat.UserID) ([]chat.UserID, error) {
	partners, err := s.matches.PartnersOf(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrStorage, err)
	}
	if partners == nil {
		partners = []chat.UserID{}
	}
	return partners, nil
}

func (s *ChatService) OnlineUsers() []chat.UserID {
	return s.registry.OnlineUsers()
}
