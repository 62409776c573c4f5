package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"chat-sync/client"
	"chat-sync/domain"
	grpcclient "chat-sync/infrastructure/grpc/client"
)

type testChatSuite struct {
	BaseGrpcSuite
}

func TestChatSuite(t *testing.T) {
	suite.Run(t, &testChatSuite{})
}

func (s *testChatSuite) TestTwoSessionsSeeEachOther() {
	s.WithBackend("Two sessions", func(ctx context.Context, backend *grpcclient.ChatClient) {
		config := client.Config{HistoryLimit: 100, ErrorBufferSize: 8}
		alice := client.NewSession(testLogger(), config, backend)
		bob := client.NewSession(testLogger(), config, backend)
		s.Require().NoError(alice.Start(ctx))
		defer alice.Stop()
		s.Require().NoError(bob.Start(ctx))
		defer bob.Stop()

		body := "hello from alice " + uuid.NewString()
		s.Require().NoError(alice.Submit(ctx, body))

		for _, session := range []*client.Session{alice, bob} {
			s.Eventually(func() bool { return contains(session.Messages(), body) }, 10*time.Second, 50*time.Millisecond)
		}
	})
}

func (s *testChatSuite) TestHistoryIsOrdered() {
	s.WithBackend("History ordering", func(ctx context.Context, backend *grpcclient.ChatClient) {
		for range 3 {
			_, err := backend.CreateMessage(ctx, domain.CreateInput{Body: "ordering " + uuid.NewString()})
			s.Require().NoError(err)
		}

		session := client.NewSession(testLogger(), client.Config{HistoryLimit: 100, ErrorBufferSize: 8}, backend)
		messages, err := session.Reload(ctx)
		s.Require().NoError(err)
		s.Require().GreaterOrEqual(len(messages), 3)
		for i := 1; i < len(messages); i++ {
			prev, _ := messages[i-1].CreatedTime()
			cur, _ := messages[i].CreatedTime()
			s.False(cur.Before(prev))
		}
	})
}

func (s *testChatSuite) TestEmptyBodyRefused() {
	s.WithBackend("Empty body", func(ctx context.Context, backend *grpcclient.ChatClient) {
		_, err := backend.CreateMessage(ctx, domain.CreateInput{Body: "   "})
		s.Equal(codes.InvalidArgument, status.Code(err))
	})
}

func contains(messages []domain.Message, body string) bool {
	return lo.ContainsBy(messages, func(msg domain.Message) bool { return msg.Body == body })
}
