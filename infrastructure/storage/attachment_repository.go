package storage

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"pair-chat/codec"
	"pair-chat/contract"
	"pair-chat/domain/chat"
	"pair-chat/domain/mimetypes"
	"pair-chat/errors"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/crypto/blake2b"
)

// Blobs are content addressed: the id is the BLAKE2b-256 of the bytes,
// so uploading the same voice note twice stores it once.
const (
	blobPrefix     = "blob:"
	blobMetaPrefix = "blobmeta:"
)

type AttachmentRepository struct {
	db      *badger.DB
	log     *slog.Logger
	maxSize int64
}

var _ contract.AttachmentStore = (*AttachmentRepository)(nil)

func NewAttachmentRepository(db *badger.DB, log *slog.Logger, maxSize int64) *AttachmentRepository {
	return &AttachmentRepository{db: db, log: log, maxSize: maxSize}
}

// StoreBlob sniffs the content type from the bytes themselves, never from the client.
func (a *AttachmentRepository) StoreBlob(_ context.Context, name string, r io.Reader) (chat.Attachment, error) {
	data, err := io.ReadAll(io.LimitReader(r, a.maxSize+1))
	if err != nil {
		return chat.Attachment{}, err
	}
	if len(data) == 0 {
		return chat.Attachment{}, fmt.Errorf("%w: empty attachment", errors.ErrValidation)
	}
	if int64(len(data)) > a.maxSize {
		return chat.Attachment{}, fmt.Errorf("%w: limit is %d bytes", errors.ErrAttachmentTooLarge, a.maxSize)
	}

	contentType, ok := mimetypes.Attachment(mimetype.Detect(data).String())
	if !ok {
		return chat.Attachment{}, fmt.Errorf("%w: content type %s is not accepted", errors.ErrValidation, contentType)
	}

	sum := blake2b.Sum256(data)
	attachment := chat.Attachment{
		ID:          hex.EncodeToString(sum[:]),
		ContentType: string(contentType),
		Size:        int64(len(data)),
		Name:        filepath.Base(name),
	}
	if attachment.Name == "." || attachment.Name == string(filepath.Separator) {
		attachment.Name = ""
	}
	meta, err := codec.Marshal(attachment)
	if err != nil {
		return chat.Attachment{}, err
	}

	err = a.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(blobPrefix+attachment.ID), data); err != nil {
			return err
		}
		return txn.Set([]byte(blobMetaPrefix+attachment.ID), meta)
	})
	if err != nil {
		return chat.Attachment{}, err
	}
	a.log.Debug("attachment stored", "id", attachment.ID, "content_type", attachment.ContentType, "size", attachment.Size)
	return attachment, nil
}

func (a *AttachmentRepository) OpenBlob(_ context.Context, id string) (chat.Attachment, io.ReadCloser, error) {
	var attachment chat.Attachment
	var data []byte
	err := a.db.View(func(txn *badger.Txn) error {
		metaItem, err := txn.Get([]byte(blobMetaPrefix + id))
		if err != nil {
			return err
		}
		if err := metaItem.Value(func(v []byte) error {
			return codec.Unmarshal(v, &attachment)
		}); err != nil {
			return err
		}
		item, err := txn.Get([]byte(blobPrefix + id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return chat.Attachment{}, nil, fmt.Errorf("%w: %s", errors.ErrAttachmentNotFound, id)
	}
	if err != nil {
		return chat.Attachment{}, nil, err
	}
	return attachment, io.NopCloser(bytes.NewReader(data)), nil
}
