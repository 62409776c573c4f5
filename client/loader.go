package client

import (
	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/errors"
	"chat-sync/projection"
	"context"
	"log/slog"

	"github.com/samber/lo"
)

// HistoryLoader performs the bulk fetch that initializes the store.
// Only the first page is consumed.
type HistoryLoader struct {
	log     *slog.Logger
	backend contract.IBackend
	store   *projection.Timeline
	limit   int
}

func NewHistoryLoader(log *slog.Logger, backend contract.IBackend, store *projection.Timeline, limit int) *HistoryLoader {
	return &HistoryLoader{log: log, backend: backend, store: store, limit: limit}
}

// Load fetches history and merges it into the store, returning the ordered view.
// On a fetch failure an errors.ErrFetch is returned and the store starts
// empty, so live pushes show up without waiting for a successful reload.
// Malformed records are dropped; they come back as errors.ErrMalformedRecord
// next to the view holding every valid record.
func (l *HistoryLoader) Load(ctx context.Context) ([]domain.Message, error) {
	page, err := l.backend.ListMessages(ctx, domain.ListRequest{Limit: l.limit})
	if err != nil {
		l.log.Warn("History fetch failed", "error", err)
		l.store.Initialize()
		return nil, errors.Fetch(err)
	}
	if page.NextToken != nil {
		l.log.Debug("Older history left on the backend", "next_token", lo.FromPtr(page.NextToken))
	}

	err = l.store.Load(page.Items)
	if err != nil {
		l.log.Warn("History contained malformed records",
			"dropped", len(errors.MalformedRecords(err)),
			"received", len(page.Items))
	}
	messages := l.store.Messages()
	l.log.Info("History loaded", "count", len(messages), "started_at", page.StartedAt)
	return messages, err
}
