package errors

import (
	stderrors "errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Client side taxonomy. Every fetch, stream or write failure returned by
// the client package matches exactly one of the first four with errors.Is.
var (
	ErrFetch           = fmt.Errorf("history fetch failed")
	ErrConnectionLost  = fmt.Errorf("live connection lost")
	ErrWrite           = fmt.Errorf("message write failed")
	ErrMalformedRecord = fmt.Errorf("malformed message record")

	// Lifecycle misuse: a subscriber started twice, or a session used after Stop.
	ErrAlreadyStarted = fmt.Errorf("already started")
	ErrSessionStopped = fmt.Errorf("session stopped")
)

// Backend side.
var (
	ErrEmptyBody         = fmt.Errorf("message body is empty")
	ErrBodyTooLong       = fmt.Errorf("message body is too long")
	ErrSubscriberTooSlow = fmt.Errorf("subscriber is too slow")
	ErrServerUnavailable = fmt.Errorf("chat server is unavailable")
)

// MalformedRecordError reports a record rejected during merge.
// The rest of the batch is unaffected.
type MalformedRecordError struct {
	ID     string
	Reason string
}

func (e MalformedRecordError) Error() string {
	return fmt.Sprintf("%s: id=%q: %s", ErrMalformedRecord, e.ID, e.Reason)
}

func (e MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// Fetch wraps a history load failure.
func Fetch(err error) error {
	return fmt.Errorf("%w: %w", ErrFetch, err)
}

// ConnectionLost wraps the cause of a dropped live stream.
func ConnectionLost(err error) error {
	return fmt.Errorf("%w: %w", ErrConnectionLost, err)
}

// Write wraps a submit failure.
func Write(err error) error {
	return fmt.Errorf("%w: %w", ErrWrite, err)
}

// MalformedRecords extracts every MalformedRecordError held by err,
// including the ones joined with errors.Join.
func MalformedRecords(err error) []MalformedRecordError {
	if err == nil {
		return nil
	}
	var found []MalformedRecordError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			found = append(found, MalformedRecords(e)...)
		}
		return found
	}
	var malformed MalformedRecordError
	if stderrors.As(err, &malformed) {
		found = append(found, malformed)
	}
	return found
}

// MapToGRPCError translates backend errors into gRPC statuses.
func MapToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case stderrors.Is(err, ErrEmptyBody), stderrors.Is(err, ErrBodyTooLong):
		return status.Error(codes.InvalidArgument, err.Error())
	case stderrors.Is(err, ErrSubscriberTooSlow):
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
