//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-sync/domain"
	"context"
)

// IBackend is everything the client core needs from the chat backend.
type IBackend interface {
	ListMessages(ctx context.Context, request domain.ListRequest) (domain.Page, error)
	CreateMessage(ctx context.Context, input domain.CreateInput) (domain.Message, error)
	OnCreateMessage(ctx context.Context) (ISubscription, error)
}

// ISubscription is a cancellable handle over a live stream of created records.
// Messages is closed once the stream ends. Err is only meaningful after that:
// nil when Unsubscribe ended the stream, the cause otherwise.
// Nothing is sent on Messages after Unsubscribe returns.
type ISubscription interface {
	Messages() <-chan domain.Message
	Err() error
	Unsubscribe()
}

// EventSink receives records pushed by the backend to one live subscriber.
type EventSink interface {
	Consume(ctx context.Context, msg domain.Message) error
}

type IRegistry interface {
	GetSinks() []EventSink
	Subscribe(subscriberID string, sink EventSink)
	Unsubscribe(subscriberID string)
}
