// Package search keeps a bluge full-text index of message text, scoped per conversation.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"pair-chat/contract"
	"pair-chat/domain/chat"
	"pair-chat/errors"
	"strings"

	"github.com/blugelabs/bluge"
	"github.com/google/uuid"
)

const (
	fieldConversation = "conversation"
	fieldText         = "text"
	fieldSentAt       = "sent_at"
	fieldLang         = "lang"
)

type MessageIndex struct {
	writer *bluge.Writer
	log    *slog.Logger
}

var _ contract.MessageIndex = (*MessageIndex)(nil)

// NewMessageIndex does not own writer; the caller closes it.
func NewMessageIndex(writer *bluge.Writer, log *slog.Logger) *MessageIndex {
	return &MessageIndex{writer: writer, log: log}
}

// Index stores only what search needs: the message itself stays in badger.
func (i *MessageIndex) Index(_ context.Context, msg chat.Message) error {
	doc := bluge.NewDocument(msg.ID.String()).
		AddField(bluge.NewKeywordField(fieldConversation, msg.Conversation())).
		AddField(bluge.NewTextField(fieldText, msg.Payload.Text)).
		AddField(bluge.NewDateTimeField(fieldSentAt, msg.SentAt).Sortable())
	if msg.Lang != "" {
		doc.AddField(bluge.NewKeywordField(fieldLang, msg.Lang))
	}
	if err := i.writer.Update(doc.ID(), doc); err != nil {
		return fmt.Errorf("%w: index message %s: %w", errors.ErrStorage, msg.ID, err)
	}
	return nil
}

// Search returns ids of matching messages inside one conversation, best match first.
func (i *MessageIndex) Search(ctx context.Context, conversation, query string, limit int) ([]uuid.UUID, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", errors.ErrValidation)
	}
	if limit <= 0 {
		limit = 20
	}

	reader, err := i.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("%w: open index reader: %w", errors.ErrStorage, err)
	}
	defer func() { _ = reader.Close() }()

	q := bluge.NewBooleanQuery().
		AddMust(bluge.NewTermQuery(conversation).SetField(fieldConversation)).
		AddMust(bluge.NewMatchQuery(query).SetField(fieldText))
	req := bluge.NewTopNSearch(limit, q).SortBy([]string{"-_score", "-" + fieldSentAt})

	matches, err := reader.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: search: %w", errors.ErrStorage, err)
	}

	var ids []uuid.UUID
	match, err := matches.Next()
	for err == nil && match != nil {
		verr := match.VisitStoredFields(func(field string, value []byte) bool {
			if field != "_id" {
				return true
			}
			id, perr := uuid.ParseBytes(value)
			if perr != nil {
				i.log.Warn("skipping malformed indexed id", "value", string(value), "error", perr)
				return false
			}
			ids = append(ids, id)
			return false
		})
		if verr != nil {
			return nil, verr
		}
		match, err = matches.Next()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: iterate matches: %w", errors.ErrStorage, err)
	}
	return ids, nil
}
