// Package domain contains core concepts of the chat system.
// This file defines Message records as the backend emits them.
// Records are treated as immutable values once received.
package domain

import (
	"time"
)

// TimestampLayout is the layout the backend uses when it stamps a record.
// Millisecond precision, UTC, as in ISO-8601 date-times.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Message represents one chat record.
// Timestamps are kept in wire form so that a record with a missing or
// unparseable creation time can be detected and rejected on merge.
type Message struct {
	ID            string `validate:"required"`
	Body          string
	CreatedAt     string `validate:"required"`
	UpdatedAt     string
	Version       int
	Deleted       bool
	LastChangedAt int64
}

// CreatedTime parses the creation timestamp used as sort key.
func (m Message) CreatedTime() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, m.CreatedAt)
}

// FormatTimestamp renders t the way the backend stamps records.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ListRequest asks for one page of history.
// A zero Limit lets the backend pick its default page size.
type ListRequest struct {
	Limit     int
	NextToken *string
}

// Page is one page of history as returned by the backend.
type Page struct {
	Items     []Message
	NextToken *string
	StartedAt int64
}

// CreateInput carries what the user typed.
type CreateInput struct {
	Body string `validate:"required"`
}
