package server

import (
	"chat-sync/domain"
	"chat-sync/errors"
	"chat-sync/observability"
	pb "chat-sync/proto/chatsync/v1"
	"chat-sync/services"
	"chat-sync/sink"
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ChatServer struct {
	pb.UnimplementedChatServiceServer
	chatService          services.IChatService
	connectionBufferSize int
	log                  *slog.Logger
	metrics              *observability.Metrics
}

func NewChatServer(log *slog.Logger, chatService services.IChatService, connectionBufferSize int) *ChatServer {
	return &ChatServer{
		chatService:          chatService,
		connectionBufferSize: max(connectionBufferSize, 1),
		log:                  log,
	}
}

func (s *ChatServer) WithMetrics(metrics *observability.Metrics) *ChatServer {
	s.metrics = metrics
	return s
}

// ListMessages returns one page of history, newest first.
func (s *ChatServer) ListMessages(ctx context.Context, req *pb.ListMessagesRequest) (*pb.ListMessagesResponse, error) {
	page, err := s.chatService.ListMessages(ctx, domain.ListRequest{
		Limit:     int(req.GetLimit()),
		NextToken: lo.EmptyableToPtr(req.GetNextToken()),
	})
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return toPbPage(page), nil
}

// CreateMessage stores the message and returns the stored record.
// The author also receives it through its own OnCreateMessage stream.
func (s *ChatServer) CreateMessage(ctx context.Context, req *pb.CreateMessageRequest) (*pb.MessageRecord, error) {
	msg, err := s.chatService.CreateMessage(ctx, domain.CreateInput{Body: req.GetMessage()})
	if err != nil {
		s.log.Debug("Message refused", "error", err)
		return nil, errors.MapToGRPCError(err)
	}
	return toPbMessage(msg), nil
}

// OnCreateMessage streams every message created after the subscription.
// Headers are sent once the subscriber is registered so the client knows
// from then on nothing will be missed.
// A subscriber unable to keep up is disconnected with codes.Unavailable.
func (s *ChatServer) OnCreateMessage(_ *pb.OnCreateMessageRequest, stream grpc.ServerStreamingServer[pb.MessageRecord]) error {
	grpcSink := sink.NewGrpcSink(s.connectionBufferSize)
	subscriberID := uuid.NewString()
	s.chatService.Subscribe(subscriberID, grpcSink)
	s.metrics.SubscriberJoined()
	defer func() {
		s.chatService.Unsubscribe(subscriberID)
		s.metrics.SubscriberLeft()
	}()

	if err := stream.SendHeader(metadata.Pairs("subscriber-id", subscriberID)); err != nil {
		return err
	}

	for {
		select {
		case <-stream.Context().Done():
			s.log.Debug("Subscriber disconnected", "subscriber_id", subscriberID)
			return nil
		case <-grpcSink.Overflow():
			s.log.Warn("Subscriber too slow, closing stream", "subscriber_id", subscriberID)
			s.metrics.SubscriberTooSlow()
			return status.Error(codes.Unavailable, errors.ErrSubscriberTooSlow.Error())
		case msg := <-grpcSink.Messages:
			if err := stream.Send(toPbMessage(msg)); err != nil {
				s.log.Error("Failed to push message to stream",
					"subscriber_id", subscriberID,
					"error", err)
				return err
			}
		}
	}
}

func toPbMessage(msg domain.Message) *pb.MessageRecord {
	return &pb.MessageRecord{
		Id:            msg.ID,
		Message:       msg.Body,
		CreatedAt:     msg.CreatedAt,
		UpdatedAt:     msg.UpdatedAt,
		Version:       int32(msg.Version),
		Deleted:       msg.Deleted,
		LastChangedAt: msg.LastChangedAt,
	}
}

func toPbPage(page domain.Page) *pb.ListMessagesResponse {
	return &pb.ListMessagesResponse{
		Items: lo.Map(page.Items, func(msg domain.Message, _ int) *pb.MessageRecord {
			return toPbMessage(msg)
		}),
		NextToken: lo.FromPtr(page.NextToken),
		StartedAt: page.StartedAt,
	}
}
