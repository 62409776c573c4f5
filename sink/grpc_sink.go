package sink

import (
	"chat-sync/domain"
	"chat-sync/errors"
	"context"
	"fmt"
	"sync"
)

// GrpcSink buffers the records pushed to one live stream.
// When the buffer stays full until the caller's deadline the record is
// refused and Overflow is closed: the stream owner disconnects the
// subscriber instead of losing messages behind its back.
type GrpcSink struct {
	Messages chan domain.Message
	overflow chan struct{}
	once     sync.Once
}

func NewGrpcSink(bufferSize int) *GrpcSink {
	return &GrpcSink{
		Messages: make(chan domain.Message, bufferSize),
		overflow: make(chan struct{}),
	}
}

// Consume is called by the fan-out.
// The gRPC handler drains Messages from now on.
// Until the overflow, a record that fits in the buffer is always accepted,
// even on an expired context. Otherwise Consume waits for room until ctx is done.
func (s *GrpcSink) Consume(ctx context.Context, msg domain.Message) error {
	select {
	case <-s.overflow:
		return errors.ErrSubscriberTooSlow
	default:
	}
	select {
	case s.Messages <- msg:
		return nil
	default:
	}

	select {
	case s.Messages <- msg:
		return nil
	case <-ctx.Done():
		s.once.Do(func() { close(s.overflow) })
		return fmt.Errorf("%w: %w", errors.ErrSubscriberTooSlow, ctx.Err())
	}
}

func (s *GrpcSink) Overflow() <-chan struct{} {
	return s.overflow
}
