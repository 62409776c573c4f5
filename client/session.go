package client

import (
	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/errors"
	"chat-sync/projection"
	"context"
	"log/slog"
	"sync"
)

// Session wires the loader, the live subscriber and the submitter around
// one store for the lifetime of a chat view.
type Session struct {
	log        *slog.Logger
	timeline   *projection.Timeline
	input      *InputBuffer
	loader     *HistoryLoader
	subscriber *LiveSubscriber
	submitter  *Submitter
	errs       chan error

	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
	stopped  bool
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewSession(log *slog.Logger, config Config, backend contract.IBackend) *Session {
	s := &Session{
		log:      log,
		timeline: projection.NewTimeline(log),
		input:    &InputBuffer{},
		errs:     make(chan error, max(config.ErrorBufferSize, 1)),
	}
	s.loader = NewHistoryLoader(log, backend, s.timeline, config.HistoryLimit)
	s.subscriber = NewLiveSubscriber(log, backend, s.timeline, s.report)
	s.submitter = NewSubmitter(log, backend, s.input)
	return s
}

// Start subscribes first so no push is missed, then loads history in the
// background. Pushes arriving meanwhile are buffered by the store.
// Load failures are reported on Errors.
// A stopped session cannot be started again.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return errors.ErrSessionStopped
	}

	ctx, cancel := context.WithCancel(ctx)
	if err := s.subscriber.Start(ctx); err != nil {
		cancel()
		return err
	}
	s.ctx, s.cancel = ctx, cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if _, err := s.loader.Load(ctx); err != nil {
			if ctx.Err() != nil {
				s.log.Debug("History load abandoned", "error", err)
				return
			}
			s.report(err)
		}
	}()
	return nil
}

// Reload retries the history fetch, e.g. after a reported errors.ErrFetch.
// It is cut short by Stop, and refused once the session is stopped.
func (s *Session) Reload(ctx context.Context) ([]domain.Message, error) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil, errors.ErrSessionStopped
	}
	s.wg.Add(1)
	session := s.ctx
	s.mu.Unlock()
	defer s.wg.Done()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if session != nil {
		defer context.AfterFunc(session, cancel)()
	}
	return s.loader.Load(ctx)
}

func (s *Session) Submit(ctx context.Context, body string) error {
	return s.submitter.Submit(ctx, body)
}

// SubmitInput submits the current content of the input buffer.
func (s *Session) SubmitInput(ctx context.Context) error {
	return s.submitter.Submit(ctx, s.input.Text())
}

func (s *Session) Input() *InputBuffer { return s.input }

func (s *Session) Messages() []domain.Message { return s.timeline.Messages() }

func (s *Session) Updates() <-chan struct{} { return s.timeline.Updates() }

// Errors carries errors.ErrFetch, errors.ErrConnectionLost and
// errors.ErrMalformedRecord conditions raised in the background.
func (s *Session) Errors() <-chan error { return s.errs }

// Disconnected is closed once the live subscription is over.
func (s *Session) Disconnected() <-chan struct{} { return s.subscriber.Done() }

// Stop tears the session down. Nothing reaches the store after it returns.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.stopped = true
		if s.cancel != nil {
			s.cancel()
		}
		s.mu.Unlock()
		s.subscriber.Stop()
		s.wg.Wait()
		s.log.Debug("Session stopped")
	})
}

func (s *Session) report(err error) {
	select {
	case s.errs <- err:
	default:
		s.log.Error("Error buffer full, reporting through log only", "error", err)
	}
}
