package client

import (
	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/errors"
	pb "chat-sync/proto/chatsync/v1"
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"
	"google.golang.org/grpc"
	"google.golang.org/grpc/backoff"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
)

// ChatClient is the gRPC implementation of contract.IBackend.
type ChatClient struct {
	log    *slog.Logger
	client pb.ChatServiceClient
}

func NewChatClient(log *slog.Logger, conn grpc.ClientConnInterface) *ChatClient {
	return &ChatClient{log: log, client: pb.NewChatServiceClient(conn)}
}

// Dial opens a connection with a backoff strategy and waits until it is
// READY, or until readyTimeout elapses.
func Dial(ctx context.Context, address string, readyTimeout time.Duration, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithConnectParams(grpc.ConnectParams{
			Backoff: backoff.Config{
				BaseDelay:  100 * time.Millisecond,
				Multiplier: 1.6,
				Jitter:     0.2,
				MaxDelay:   3 * time.Second,
			},
		}),
	}, opts...)
	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, err
	}

	dialCtx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()

	// NewClient stays idle until asked to connect
	conn.Connect()
	for {
		state := conn.GetState()
		if state == connectivity.Ready {
			return conn, nil
		}
		if !conn.WaitForStateChange(dialCtx, state) {
			_ = conn.Close()
			return nil, errors.ErrServerUnavailable
		}
	}
}

func (c *ChatClient) ListMessages(ctx context.Context, request domain.ListRequest) (domain.Page, error) {
	response, err := c.client.ListMessages(ctx, &pb.ListMessagesRequest{
		Limit:     int32(request.Limit),
		NextToken: lo.FromPtr(request.NextToken),
	})
	if err != nil {
		return domain.Page{}, err
	}
	return fromPbPage(response), nil
}

func (c *ChatClient) CreateMessage(ctx context.Context, input domain.CreateInput) (domain.Message, error) {
	record, err := c.client.CreateMessage(ctx, &pb.CreateMessageRequest{Message: input.Body})
	if err != nil {
		return domain.Message{}, err
	}
	return fromPbMessage(record), nil
}

// OnCreateMessage returns once the server has registered the subscription:
// any message created after that point is delivered on it.
func (c *ChatClient) OnCreateMessage(ctx context.Context) (contract.ISubscription, error) {
	streamCtx, cancel := context.WithCancel(ctx)
	stream, err := c.client.OnCreateMessage(streamCtx, &pb.OnCreateMessageRequest{})
	if err != nil {
		cancel()
		return nil, err
	}
	if _, err := stream.Header(); err != nil {
		cancel()
		return nil, err
	}

	sub := &subscription{
		log:      c.log,
		messages: make(chan domain.Message),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go sub.pump(streamCtx, stream)
	return sub, nil
}

type subscription struct {
	log      *slog.Logger
	messages chan domain.Message
	cancel   context.CancelFunc
	done     chan struct{}

	mu  sync.Mutex
	err error
}

// pump forwards records until the stream ends. Err is set before Messages is closed.
func (s *subscription) pump(ctx context.Context, stream grpc.ServerStreamingClient[pb.MessageRecord]) {
	defer close(s.done)
	defer close(s.messages)

	for {
		record, err := stream.Recv()
		if err != nil {
			if ctx.Err() == nil {
				if err == io.EOF {
					err = io.ErrUnexpectedEOF
				}
				s.setErr(err)
				s.log.Debug("Live stream ended", "error", err)
			}
			return
		}
		select {
		case s.messages <- fromPbMessage(record):
		case <-ctx.Done():
			return
		}
	}
}

func (s *subscription) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *subscription) Messages() <-chan domain.Message { return s.messages }

func (s *subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Unsubscribe closes the stream and waits for the pump to exit.
func (s *subscription) Unsubscribe() {
	s.cancel()
	<-s.done
}

// fromPbMessage copies the record as received. Nothing is validated here,
// malformed records are rejected when merged.
func fromPbMessage(record *pb.MessageRecord) domain.Message {
	return domain.Message{
		ID:            record.GetId(),
		Body:          record.GetMessage(),
		CreatedAt:     record.GetCreatedAt(),
		UpdatedAt:     record.GetUpdatedAt(),
		Version:       int(record.GetVersion()),
		Deleted:       record.GetDeleted(),
		LastChangedAt: record.GetLastChangedAt(),
	}
}

func fromPbPage(response *pb.ListMessagesResponse) domain.Page {
	return domain.Page{
		Items:     lo.Map(response.GetItems(), func(record *pb.MessageRecord, _ int) domain.Message { return fromPbMessage(record) }),
		NextToken: lo.EmptyableToPtr(response.GetNextToken()),
		StartedAt: response.GetStartedAt(),
	}
}
