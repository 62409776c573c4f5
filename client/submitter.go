package client

import (
	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/errors"
	"context"
	"log/slog"
	"strings"
)

// Submitter sends what the user typed to the backend.
// It never touches the store: the record shows up through the live
// subscription like any other participant's message.
type Submitter struct {
	log     *slog.Logger
	backend contract.IBackend
	input   *InputBuffer
}

func NewSubmitter(log *slog.Logger, backend contract.IBackend, input *InputBuffer) *Submitter {
	return &Submitter{log: log, backend: backend, input: input}
}

// Submit makes exactly one write attempt for a non-blank body.
// A blank body is ignored. On acknowledgment the input buffer is cleared;
// on failure it is kept for a retry and an errors.ErrWrite is returned.
func (s *Submitter) Submit(ctx context.Context, body string) error {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		s.log.Debug("Blank submission ignored")
		return nil
	}

	msg, err := s.backend.CreateMessage(ctx, domain.CreateInput{Body: trimmed})
	if err != nil {
		s.log.Warn("Message write failed", "error", err)
		return errors.Write(err)
	}
	s.input.Clear()
	s.log.Debug("Message acknowledged", "id", msg.ID, "created_at", msg.CreatedAt)
	return nil
}
