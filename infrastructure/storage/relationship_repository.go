package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"pair-chat/contract"
	"pair-chat/domain/chat"
	"pair-chat/errors"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// match:{a}:{b} is written in both directions so partners of a are one prefix scan away.
const matchPrefix = "match:"

type RelationshipRepository struct {
	db  *badger.DB
	log *slog.Logger
}

var _ contract.RelationshipStore = (*RelationshipRepository)(nil)

func NewRelationshipRepository(db *badger.DB, log *slog.Logger) *RelationshipRepository {
	return &RelationshipRepository{db: db, log: log}
}

// Link matches two users; linking an existing pair is a no-op.
func (r *RelationshipRepository) Link(_ context.Context, a, b chat.UserID) error {
	if a == "" || b == "" || a == b {
		return fmt.Errorf("%w: a match needs two distinct users", errors.ErrValidation)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(matchKey(a, b), nil); err != nil {
			return err
		}
		return txn.Set(matchKey(b, a), nil)
	})
}

func (r *RelationshipRepository) Unlink(_ context.Context, a, b chat.UserID) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(matchKey(a, b)); err != nil {
			return err
		}
		return txn.Delete(matchKey(b, a))
	})
}

func (r *RelationshipRepository) AreLinked(_ context.Context, a, b chat.UserID) (bool, error) {
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(matchKey(a, b))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *RelationshipRepository) PartnersOf(_ context.Context, user chat.UserID) ([]chat.UserID, error) {
	prefix := []byte(matchPrefix + chat.EncodeUserID(user) + ":")
	var partners []chat.UserID
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			encoded := strings.TrimPrefix(string(it.Item().Key()), string(prefix))
			raw, err := base64.RawURLEncoding.DecodeString(encoded)
			if err != nil {
				r.log.Warn("skipping malformed match key", "key", string(it.Item().Key()), "error", err)
				continue
			}
			partners = append(partners, chat.UserID(raw))
		}
		return nil
	})
	return partners, err
}

func matchKey(a, b chat.UserID) []byte {
	return []byte(matchPrefix + chat.EncodeUserID(a) + ":" + chat.EncodeUserID(b))
}
