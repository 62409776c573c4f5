package client

import (
	"chat-sync/contract"
	"chat-sync/errors"
	"context"
	"io"
	"log/slog"
	"sync"
)

// LiveSubscriber owns the single live subscription of a session and
// forwards every pushed record to its sink, in arrival order.
// It never reconnects: a dropped stream is reported as errors.ErrConnectionLost.
type LiveSubscriber struct {
	log     *slog.Logger
	backend contract.IBackend
	sink    contract.EventSink
	report  func(error)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewLiveSubscriber(log *slog.Logger, backend contract.IBackend, sink contract.EventSink, report func(error)) *LiveSubscriber {
	return &LiveSubscriber{log: log, backend: backend, sink: sink, report: report}
}

// Start opens the subscription and begins delivery in the background.
func (s *LiveSubscriber) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return errors.ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	sub, err := s.backend.OnCreateMessage(ctx)
	if err != nil {
		cancel()
		return errors.ConnectionLost(err)
	}
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx, sub)
	s.log.Debug("Live subscription opened")
	return nil
}

func (s *LiveSubscriber) run(ctx context.Context, sub contract.ISubscription) {
	defer close(s.done)
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Messages():
			if !ok {
				if ctx.Err() != nil {
					return
				}
				cause := sub.Err()
				if cause == nil {
					cause = io.EOF
				}
				s.log.Warn("Live subscription dropped", "error", cause)
				s.report(errors.ConnectionLost(cause))
				return
			}
			// Stop may have been requested while this record was in flight.
			if ctx.Err() != nil {
				return
			}
			if err := s.sink.Consume(ctx, msg); err != nil {
				s.log.Warn("Pushed record rejected", "id", msg.ID, "error", err)
				s.report(err)
			}
		}
	}
}

// Stop cancels the subscription and waits for the delivery loop to exit.
// Once Stop returns the sink receives nothing more. Safe to call twice.
func (s *LiveSubscriber) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Done is closed when the delivery loop has exited, whatever the reason.
func (s *LiveSubscriber) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}
