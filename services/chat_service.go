//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/errors"
	"chat-sync/moderation"
	"chat-sync/observability"
	"chat-sync/repositories"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IChatService interface {
	ListMessages(ctx context.Context, request domain.ListRequest) (domain.Page, error)
	CreateMessage(ctx context.Context, input domain.CreateInput) (domain.Message, error)
	Subscribe(subscriberID string, sink contract.EventSink)
	Unsubscribe(subscriberID string)
}

// ChatService owns the single shared message list.
// Every created message is stored first, then broadcast to every live subscriber.
type ChatService struct {
	log              *slog.Logger
	repository       repositories.IMessageRepository
	registry         contract.IRegistry
	moderator        *moderation.Moderator
	validate         *validator.Validate
	maxContentLength int
	sinkTimeout      time.Duration
	now              func() time.Time
	metrics          *observability.Metrics
}

const defaultSinkTimeout = time.Second

func NewChatService(
	log *slog.Logger,
	repository repositories.IMessageRepository,
	registry contract.IRegistry,
	moderator *moderation.Moderator,
	maxContentLength int,
	sinkTimeout time.Duration,
) *ChatService {
	if sinkTimeout <= 0 {
		sinkTimeout = defaultSinkTimeout
	}
	return &ChatService{
		log:              log,
		repository:       repository,
		registry:         registry,
		moderator:        moderator,
		validate:         validator.New(),
		maxContentLength: maxContentLength,
		sinkTimeout:      sinkTimeout,
		now:              time.Now,
	}
}

func (s *ChatService) WithMetrics(metrics *observability.Metrics) *ChatService {
	s.metrics = metrics
	return s
}

// WithClock replaces the time source used to stamp new messages.
func (s *ChatService) WithClock(now func() time.Time) *ChatService {
	s.now = now
	return s
}

func (s *ChatService) ListMessages(_ context.Context, request domain.ListRequest) (domain.Page, error) {
	items, next, err := s.repository.GetMessages(request.Limit, request.NextToken)
	if err != nil {
		return domain.Page{}, err
	}
	return domain.Page{
		Items:     items,
		NextToken: next,
		StartedAt: s.now().UnixMilli(),
	}, nil
}

func (s *ChatService) CreateMessage(ctx context.Context, input domain.CreateInput) (domain.Message, error) {
	body := strings.TrimSpace(input.Body)
	if err := s.validate.Var(body, "required"); err != nil {
		s.metrics.MessageRefused("empty_body")
		return domain.Message{}, errors.ErrEmptyBody
	}
	if s.maxContentLength > 0 {
		if err := s.validate.Var(body, fmt.Sprintf("max=%d", s.maxContentLength)); err != nil {
			s.metrics.MessageRefused("body_too_long")
			return domain.Message{}, fmt.Errorf("%w: limit is %d characters", errors.ErrBodyTooLong, s.maxContentLength)
		}
	}

	if s.moderator != nil {
		censored, words := s.moderator.Censor(body)
		if len(words) > 0 {
			s.log.Info("Message censored before storage", "count", len(words))
			s.metrics.MessageCensored()
		}
		body = censored
	}

	now := s.now().UTC()
	stamp := domain.FormatTimestamp(now)
	msg := domain.Message{
		ID:            uuid.NewString(),
		Body:          body,
		CreatedAt:     stamp,
		UpdatedAt:     stamp,
		Version:       1,
		LastChangedAt: now.UnixMilli(),
	}
	if err := s.repository.StoreMessage(msg); err != nil {
		return domain.Message{}, err
	}
	s.log.Debug("Message stored", "id", msg.ID)
	s.metrics.MessageCreated()

	s.broadcast(ctx, msg)
	return msg, nil
}

// broadcast hands the message to every subscriber, including the author.
// The caller going away must not cut the broadcast short, and each
// subscriber gets sinkTimeout of its own to make room.
func (s *ChatService) broadcast(ctx context.Context, msg domain.Message) {
	sinks := s.registry.GetSinks()
	if len(sinks) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)

	failed := lo.CountBy(sinks, func(sink contract.EventSink) bool {
		ctx, cancel := context.WithTimeout(ctx, s.sinkTimeout)
		defer cancel()
		if err := sink.Consume(ctx, msg); err != nil {
			s.log.Warn("Subscriber did not accept message", "id", msg.ID, "error", err)
			return true
		}
		return false
	})
	s.log.Debug("Message broadcast", "id", msg.ID, "subscribers", len(sinks), "failed", failed)
}

func (s *ChatService) Subscribe(subscriberID string, sink contract.EventSink) {
	s.registry.Subscribe(subscriberID, sink)
	s.log.Debug("Subscriber joined", "subscriber_id", subscriberID)
}

func (s *ChatService) Unsubscribe(subscriberID string) {
	s.registry.Unsubscribe(subscriberID)
	s.log.Debug("Subscriber left", "subscriber_id", subscriberID)
}
