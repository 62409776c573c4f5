package server

import (
	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/errors"
	"chat-sync/mocks"
	pb "chat-sync/proto/chatsync/v1"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// fakeStream blocks every Send until release is closed.
type fakeStream struct {
	grpc.ServerStream
	ctx     context.Context
	release chan struct{}
	header  metadata.MD
	sent    chan *pb.MessageRecord
}

func (f *fakeStream) Context() context.Context { return f.ctx }

func (f *fakeStream) SendHeader(md metadata.MD) error {
	f.header = md
	return nil
}

func (f *fakeStream) Send(record *pb.MessageRecord) error {
	select {
	case <-f.release:
	case <-f.ctx.Done():
		return f.ctx.Err()
	}
	f.sent <- record
	return nil
}

func newChatServer(t *testing.T) (*ChatServer, *mocks.MockIChatService) {
	service := mocks.NewMockIChatService(gomock.NewController(t))
	return NewChatServer(logs.GetLoggerFromLevel(slog.LevelDebug), service, 2), service
}

func TestChatServer_CreateMessage_MapsErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"empty body", errors.ErrEmptyBody, codes.InvalidArgument},
		{"too long", errors.ErrBodyTooLong, codes.InvalidArgument},
		{"storage", context.DeadlineExceeded, codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, service := newChatServer(t)
			service.EXPECT().CreateMessage(gomock.Any(), domain.CreateInput{Body: "x"}).Return(domain.Message{}, tt.err)

			_, err := server.CreateMessage(context.Background(), &pb.CreateMessageRequest{Message: "x"})

			require.Equal(t, tt.code, status.Code(err))
		})
	}
}

func TestChatServer_ListMessages(t *testing.T) {
	req := require.New(t)
	server, service := newChatServer(t)
	token := "next"
	service.EXPECT().ListMessages(gomock.Any(), domain.ListRequest{Limit: 5, NextToken: &token}).
		Return(domain.Page{Items: []domain.Message{{ID: "a", Body: "hi", Version: 1}}, StartedAt: 42}, nil)

	response, err := server.ListMessages(context.Background(), &pb.ListMessagesRequest{Limit: 5, NextToken: token})

	req.NoError(err)
	req.Len(response.Items, 1)
	req.Equal("a", response.Items[0].GetId())
	req.Equal("hi", response.Items[0].GetMessage())
	req.Equal(int32(1), response.Items[0].GetVersion())
	req.Empty(response.GetNextToken())
	req.Equal(int64(42), response.GetStartedAt())
}

func TestChatServer_ListMessages_FirstPage(t *testing.T) {
	req := require.New(t)
	server, service := newChatServer(t)

	// An empty token on the wire means no cursor
	service.EXPECT().ListMessages(gomock.Any(), domain.ListRequest{Limit: 10}).
		Return(domain.Page{NextToken: lo.ToPtr("cursor")}, nil)

	response, err := server.ListMessages(context.Background(), &pb.ListMessagesRequest{Limit: 10})

	req.NoError(err)
	req.Empty(response.GetItems())
	req.Equal("cursor", response.GetNextToken())
}

func TestToPbMessage_EncodesWithSchemaNames(t *testing.T) {
	req := require.New(t)
	msg := domain.Message{
		ID:            "a",
		Body:          "hi",
		CreatedAt:     "2024-01-01T12:00:00.000Z",
		UpdatedAt:     "2024-01-01T12:00:01.000Z",
		Version:       3,
		Deleted:       true,
		LastChangedAt: 1704110401000,
	}

	// Given the record encoded for the wire
	bytes, err := proto.Marshal(toPbMessage(msg))
	req.NoError(err)
	var decoded pb.MessageRecord
	req.NoError(proto.Unmarshal(bytes, &decoded))
	req.True(proto.Equal(toPbMessage(msg), &decoded))

	// Then its JSON form uses the chat schema field names
	var fromJSON pb.MessageRecord
	err = protojson.Unmarshal([]byte(`{"id":"a","message":"hi","createdAt":"2024-01-01T12:00:00.000Z",`+
		`"updatedAt":"2024-01-01T12:00:01.000Z","_version":3,"_deleted":true,"_lastChangedAt":"1704110401000"}`), &fromJSON)
	req.NoError(err)
	req.True(proto.Equal(&decoded, &fromJSON))
}

func startStream(t *testing.T, stream *fakeStream) (contract.EventSink, <-chan error) {
	server, service := newChatServer(t)
	sinks := make(chan contract.EventSink, 1)
	gomock.InOrder(
		service.EXPECT().Subscribe(gomock.Any(), gomock.Any()).Do(func(_ string, sink contract.EventSink) { sinks <- sink }),
		service.EXPECT().Unsubscribe(gomock.Any()),
	)

	done := make(chan error, 1)
	go func() { done <- server.OnCreateMessage(&pb.OnCreateMessageRequest{}, stream) }()
	return <-sinks, done
}

func TestChatServer_OnCreateMessage_StreamsUntilClientLeaves(t *testing.T) {
	req := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	stream := &fakeStream{ctx: ctx, release: make(chan struct{}), sent: make(chan *pb.MessageRecord, 1)}
	close(stream.release)

	sink, done := startStream(t, stream)
	req.NoError(sink.Consume(context.Background(), domain.Message{ID: "a", Body: "hi"}))

	select {
	case record := <-stream.sent:
		req.Equal("a", record.Id)
	case <-time.After(time.Second):
		req.Fail("record not streamed")
	}

	cancel()
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(time.Second):
		req.Fail("handler should return once the client leaves")
	}
	req.Len(stream.header.Get("subscriber-id"), 1)
}

func TestChatServer_OnCreateMessage_SlowSubscriberDisconnected(t *testing.T) {
	req := require.New(t)
	stream := &fakeStream{ctx: context.Background(), release: make(chan struct{}), sent: make(chan *pb.MessageRecord, 16)}

	sink, done := startStream(t, stream)

	// Send is stuck, the buffer of 2 fills up and stays full past the deadline
	var err error
	for i := 0; i < 10 && err == nil; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		err = sink.Consume(ctx, domain.Message{ID: "m"})
		cancel()
	}
	req.ErrorIs(err, errors.ErrSubscriberTooSlow)
	close(stream.release)

	select {
	case err := <-done:
		req.Equal(codes.Unavailable, status.Code(err))
	case <-time.After(time.Second):
		req.Fail("slow subscriber should be disconnected")
	}
}
