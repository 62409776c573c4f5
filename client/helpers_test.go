package client

import (
	"chat-sync/domain"
	"log/slog"
	"sync"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
)

var origin = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return logs.GetLoggerFromLevel(slog.LevelDebug)
}

func record(id string, seconds int, body string) domain.Message {
	at := domain.FormatTimestamp(origin.Add(time.Duration(seconds) * time.Second))
	return domain.Message{ID: id, Body: body, CreatedAt: at, UpdatedAt: at, Version: 1}
}

func ids(messages []domain.Message) []string {
	return lo.Map(messages, func(m domain.Message, _ int) string { return m.ID })
}

// fakeSubscription is a hand driven live stream.
type fakeSubscription struct {
	messages     chan domain.Message
	err          error
	once         sync.Once
	unsubscribed chan struct{}
}

func newFakeSubscription() *fakeSubscription {
	return &fakeSubscription{
		messages:     make(chan domain.Message),
		unsubscribed: make(chan struct{}),
	}
}

func (f *fakeSubscription) Messages() <-chan domain.Message { return f.messages }

func (f *fakeSubscription) Err() error { return f.err }

func (f *fakeSubscription) Unsubscribe() {
	f.once.Do(func() { close(f.unsubscribed) })
}

// push hands a record to the subscriber, giving up if nobody reads it.
func (f *fakeSubscription) push(msg domain.Message) bool {
	select {
	case f.messages <- msg:
		return true
	case <-f.unsubscribed:
		return false
	case <-time.After(time.Second):
		return false
	}
}

func (f *fakeSubscription) drop(err error) {
	f.err = err
	close(f.messages)
}
