//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"chat-sync/domain"
	"chat-sync/errors"
	pb "chat-sync/proto/chatsync/v1"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	"google.golang.org/protobuf/proto"
)

const (
	messagePrefix        = "msg:"
	defaultLimitMessages = 100
)

type IMessageRepository interface {
	StoreMessage(message domain.Message) error
	GetMessages(limit int, cursor *string) ([]domain.Message, *string, error)
}

type MessageRepository struct {
	db            *badger.DB
	log           *slog.Logger
	limitMessages int
}

func NewMessageRepository(db *badger.DB, log *slog.Logger, limitMessages int) MessageRepository {
	if limitMessages <= 0 {
		limitMessages = defaultLimitMessages
	}
	return MessageRepository{db: db, log: log, limitMessages: limitMessages}
}

// StoreMessage persists a message in BadgerDB, encoded as a pb.MessageRecord.
// The key is formatted as "msg:{created_at_unix_nano_padded}:{id}" so that:
//  1. a prefix scan walks messages chronologically (19-digit zero padding);
//  2. two messages created in the same millisecond never overwrite each other.
func (m MessageRepository) StoreMessage(message domain.Message) error {
	at, err := message.CreatedTime()
	if err != nil {
		return errors.MalformedRecordError{ID: message.ID, Reason: err.Error()}
	}
	key := fmt.Sprintf("%s%019d:%s", messagePrefix, at.UnixNano(), message.ID)
	bytes, err := proto.Marshal(toPbMessage(message))
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// GetMessages returns one page of messages, newest first.
// A nil cursor starts from the most recent message; the returned cursor is
// nil once the oldest message has been returned.
// limit is capped by the configured maximum, zero meaning that maximum.
func (m MessageRepository) GetMessages(limit int, cursor *string) ([]domain.Message, *string, error) {
	if limit <= 0 || limit > m.limitMessages {
		limit = m.limitMessages
	}

	var values [][]byte
	var lastKey string
	more := false
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte(messagePrefix)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Seek past the newest possible key, then walk back in time
			seekKey = append(prefix, []byte("9999999999999999999")...)
		default:
			seekKey = append(prefix, []byte(*cursor)...)
		}

		it.Seek(seekKey)
		if cursor != nil && it.ValidForPrefix(prefix) && string(it.Item().Key()[len(prefix):]) == *cursor {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if len(values) == limit {
				more = true
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[len(prefix):])
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			values = append(values, value)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	messages := make([]domain.Message, 0, len(values))
	for _, value := range values {
		var record pb.MessageRecord
		if err := proto.Unmarshal(value, &record); err != nil {
			return nil, nil, err
		}
		messages = append(messages, fromPbMessage(&record))
	}
	if !more {
		m.log.Debug("Oldest message reached", "count", len(messages))
		return messages, nil, nil
	}
	return messages, lo.ToPtr(lastKey), nil
}

func toPbMessage(message domain.Message) *pb.MessageRecord {
	return &pb.MessageRecord{
		Id:            message.ID,
		Message:       message.Body,
		CreatedAt:     message.CreatedAt,
		UpdatedAt:     message.UpdatedAt,
		Version:       int32(message.Version),
		Deleted:       message.Deleted,
		LastChangedAt: message.LastChangedAt,
	}
}

func fromPbMessage(record *pb.MessageRecord) domain.Message {
	return domain.Message{
		ID:            record.GetId(),
		Body:          record.GetMessage(),
		CreatedAt:     record.GetCreatedAt(),
		UpdatedAt:     record.GetUpdatedAt(),
		Version:       int(record.GetVersion()),
		Deleted:       record.GetDeleted(),
		LastChangedAt: record.GetLastChangedAt(),
	}
}
