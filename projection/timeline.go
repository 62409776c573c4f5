package projection

import (
	"chat-sync/domain"
	"context"
	stderrors "errors"
	"log/slog"
	"slices"
	"sync"
)

// Timeline is the session's in-memory message store.
//
// Every read-merge-commit step runs under one lock, so concurrent pushes and
// loads cannot lose updates. Records pushed before the store is initialized
// (by the first Load, or by Initialize after a failed fetch) are queued and
// applied in arrival order at that point.
type Timeline struct {
	mu       sync.Mutex
	log      *slog.Logger
	messages []domain.Message
	pending  []domain.Message
	loaded   bool
	updates  chan struct{}
}

func NewTimeline(log *slog.Logger) *Timeline {
	return &Timeline{
		log:     log,
		updates: make(chan struct{}, 1),
	}
}

// Load merges a history batch into the store.
// Malformed records are dropped and reported, the valid ones are kept.
func (t *Timeline) Load(batch []domain.Message) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	merged, err := Merge(t.messages, batch...)
	t.messages = merged
	if !t.loaded {
		err = stderrors.Join(err, t.flush())
	}
	t.notify()
	return err
}

// Initialize starts an empty store when history could not be fetched.
// Queued pushes are applied and later pushes go straight to the store;
// a later Load merges into it. It is a no-op once the store exists.
func (t *Timeline) Initialize() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.loaded {
		return
	}
	if err := t.flush(); err != nil {
		t.log.Warn("Queued records could not be applied", "error", err)
	}
	t.notify()
}

func (t *Timeline) flush() error {
	if len(t.pending) > 0 {
		t.log.Debug("Applying records pushed before history", "count", len(t.pending))
	}
	merged, err := Merge(t.messages, t.pending...)
	t.messages = merged
	t.pending = nil
	t.loaded = true
	return err
}

// Apply folds one pushed record into the store, or queues it when history
// has not been loaded yet. A malformed record is rejected right away.
func (t *Timeline) Apply(msg domain.Message) error {
	if _, err := Validate(msg); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.loaded {
		t.pending = append(t.pending, msg)
		return nil
	}
	merged, err := Merge(t.messages, msg)
	if err != nil {
		return err
	}
	t.messages = merged
	t.notify()
	return nil
}

// Consume lets the timeline act as the sink of a live subscriber.
func (t *Timeline) Consume(_ context.Context, msg domain.Message) error {
	return t.Apply(msg)
}

// Messages returns a snapshot of the ordered view.
func (t *Timeline) Messages() []domain.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.messages)
}

func (t *Timeline) Loaded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loaded
}

// Pending is the number of pushed records waiting for history.
func (t *Timeline) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// Updates signals that the ordered view changed.
// Signals coalesce: a slow reader sees one signal for many changes.
func (t *Timeline) Updates() <-chan struct{} {
	return t.updates
}

func (t *Timeline) notify() {
	select {
	case t.updates <- struct{}{}:
	default:
	}
}
