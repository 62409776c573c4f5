package client

import (
	"chat-sync/domain"
	"chat-sync/errors"
	"chat-sync/mocks"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testConfig() Config {
	return Config{HistoryLimit: 100, ErrorBufferSize: 4}
}

func TestSession_HistoryThenPush(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	backend := mocks.NewMockIBackend(ctrl)
	sub := newFakeSubscription()

	// Given history holds a single record
	backend.EXPECT().OnCreateMessage(gomock.Any()).Return(sub, nil).Times(1)
	backend.EXPECT().ListMessages(gomock.Any(), domain.ListRequest{Limit: 100}).
		Return(domain.Page{Items: []domain.Message{record("a", 5, "hi")}}, nil).
		Times(1)

	session := NewSession(testLogger(), testConfig(), backend)
	req.NoError(session.Start(context.Background()))
	defer session.Stop()

	// Then the store becomes [a]
	req.Eventually(func() bool { return len(session.Messages()) == 1 }, time.Second, 5*time.Millisecond)
	req.Equal([]string{"a"}, ids(session.Messages()))

	// When an older record is pushed
	req.True(sub.push(record("b", 3, "yo")))

	// Then the store becomes [b, a]
	req.Eventually(func() bool { return len(session.Messages()) == 2 }, time.Second, 5*time.Millisecond)
	req.Equal([]string{"b", "a"}, ids(session.Messages()))
}

func TestSession_PushDuringSlowHistory_IsBuffered(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	backend := mocks.NewMockIBackend(ctrl)
	sub := newFakeSubscription()
	release := make(chan struct{})

	backend.EXPECT().OnCreateMessage(gomock.Any()).Return(sub, nil).Times(1)
	backend.EXPECT().ListMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ domain.ListRequest) (domain.Page, error) {
			<-release
			return domain.Page{Items: []domain.Message{record("h", 5, "history"), record("p", 7, "stale copy")}}, nil
		}).
		Times(1)

	session := NewSession(testLogger(), testConfig(), backend)
	req.NoError(session.Start(context.Background()))
	defer session.Stop()

	// Given pushes arrive while history is still loading
	pushed := record("p", 7, "pushed copy")
	req.True(sub.push(pushed))
	req.True(sub.push(record("q", 1, "early")))

	// Then they are not delivered ahead of initialization
	req.Empty(session.Messages())

	// When history completes
	close(release)

	// Then everything is merged, pushes applied after the batch
	req.Eventually(func() bool { return len(session.Messages()) == 3 }, time.Second, 5*time.Millisecond)
	messages := session.Messages()
	req.Equal([]string{"q", "h", "p"}, ids(messages))
	req.Equal("pushed copy", messages[2].Body)
}

func TestSession_FetchFailure_ReportedThenReload(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	backend := mocks.NewMockIBackend(ctrl)
	sub := newFakeSubscription()

	backend.EXPECT().OnCreateMessage(gomock.Any()).Return(sub, nil).Times(1)
	gomock.InOrder(
		backend.EXPECT().ListMessages(gomock.Any(), gomock.Any()).
			Return(domain.Page{}, fmt.Errorf("malformed response")),
		backend.EXPECT().ListMessages(gomock.Any(), gomock.Any()).
			Return(domain.Page{Items: []domain.Message{record("a", 1, "")}}, nil),
	)

	session := NewSession(testLogger(), testConfig(), backend)
	req.NoError(session.Start(context.Background()))
	defer session.Stop()

	// Then the failure is surfaced and the store stays empty
	select {
	case err := <-session.Errors():
		req.ErrorIs(err, errors.ErrFetch)
	case <-time.After(time.Second):
		req.Fail("fetch error should be reported")
	}
	req.Empty(session.Messages())

	// When the caller retries
	messages, err := session.Reload(context.Background())

	req.NoError(err)
	req.Equal([]string{"a"}, ids(messages))
}

func TestSession_FetchFailure_PushesStillVisible(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	backend := mocks.NewMockIBackend(ctrl)
	sub := newFakeSubscription()
	release := make(chan struct{})

	backend.EXPECT().OnCreateMessage(gomock.Any()).Return(sub, nil).Times(1)
	backend.EXPECT().ListMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ domain.ListRequest) (domain.Page, error) {
			<-release
			return domain.Page{}, fmt.Errorf("service unavailable")
		}).
		Times(1)

	session := NewSession(testLogger(), testConfig(), backend)
	req.NoError(session.Start(context.Background()))
	defer session.Stop()

	// Given a push arrives while history is being fetched
	req.True(sub.push(record("early", 1, "")))

	// When the fetch fails
	close(release)
	select {
	case err := <-session.Errors():
		req.ErrorIs(err, errors.ErrFetch)
	case <-time.After(time.Second):
		req.Fail("fetch error should be reported")
	}

	// Then the queued push is shown
	req.Eventually(func() bool { return len(session.Messages()) == 1 }, time.Second, 5*time.Millisecond)

	// And the following pushes keep coming in
	for i := 2; i <= 50; i++ {
		req.True(sub.push(record(fmt.Sprintf("live-%02d", i), i, "")))
	}
	req.Eventually(func() bool { return len(session.Messages()) == 50 }, time.Second, 5*time.Millisecond)
	req.Equal("early", session.Messages()[0].ID)
}

func TestSession_SubmitClearsInputBeforeEcho(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	backend := mocks.NewMockIBackend(ctrl)
	sub := newFakeSubscription()

	backend.EXPECT().OnCreateMessage(gomock.Any()).Return(sub, nil).Times(1)
	backend.EXPECT().ListMessages(gomock.Any(), gomock.Any()).Return(domain.Page{}, nil).Times(1)
	created := record("mine", 9, "hello")
	backend.EXPECT().CreateMessage(gomock.Any(), domain.CreateInput{Body: "hello"}).Return(created, nil).Times(1)

	session := NewSession(testLogger(), testConfig(), backend)
	req.NoError(session.Start(context.Background()))
	defer session.Stop()

	// When the user submits what they typed
	session.Input().Set("hello")
	req.NoError(session.SubmitInput(context.Background()))

	// Then the input is cleared although nothing was echoed yet
	req.Empty(session.Input().Text())
	req.Empty(session.Messages())

	// And the record only appears once pushed back
	req.True(sub.push(created))
	req.Eventually(func() bool { return len(session.Messages()) == 1 }, time.Second, 5*time.Millisecond)
}

func TestSession_ConnectionLost(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	backend := mocks.NewMockIBackend(ctrl)
	sub := newFakeSubscription()

	backend.EXPECT().OnCreateMessage(gomock.Any()).Return(sub, nil).Times(1)
	backend.EXPECT().ListMessages(gomock.Any(), gomock.Any()).Return(domain.Page{}, nil).Times(1)

	session := NewSession(testLogger(), testConfig(), backend)
	req.NoError(session.Start(context.Background()))
	defer session.Stop()

	sub.drop(fmt.Errorf("unavailable"))

	select {
	case err := <-session.Errors():
		req.ErrorIs(err, errors.ErrConnectionLost)
	case <-time.After(time.Second):
		req.Fail("connection loss should be reported")
	}
	select {
	case <-session.Disconnected():
	case <-time.After(time.Second):
		req.Fail("session should be disconnected")
	}
}

func TestSession_StartFailure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	backend := mocks.NewMockIBackend(ctrl)

	backend.EXPECT().OnCreateMessage(gomock.Any()).Return(nil, fmt.Errorf("dial tcp: refused")).Times(1)
	backend.EXPECT().ListMessages(gomock.Any(), gomock.Any()).Times(0)

	session := NewSession(testLogger(), testConfig(), backend)
	err := session.Start(context.Background())

	req.ErrorIs(err, errors.ErrConnectionLost)
	session.Stop()
}

func TestSession_Stop_ReleasesSubscription(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	backend := mocks.NewMockIBackend(ctrl)
	sub := newFakeSubscription()

	backend.EXPECT().OnCreateMessage(gomock.Any()).Return(sub, nil).Times(1)
	backend.EXPECT().ListMessages(gomock.Any(), gomock.Any()).Return(domain.Page{}, nil).Times(1)

	session := NewSession(testLogger(), testConfig(), backend)
	req.NoError(session.Start(context.Background()))
	session.Stop()
	session.Stop()

	select {
	case <-sub.unsubscribed:
	default:
		req.Fail("subscription should be released on stop")
	}
	req.False(sub.push(record("late", 1, "")))
	req.Empty(session.Messages())
}

func TestSession_AfterStop_RefusesReloadAndStart(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	backend := mocks.NewMockIBackend(ctrl)
	sub := newFakeSubscription()

	// Given a started session that loaded history once
	backend.EXPECT().OnCreateMessage(gomock.Any()).Return(sub, nil).Times(1)
	backend.EXPECT().ListMessages(gomock.Any(), gomock.Any()).Return(domain.Page{}, nil).Times(1)

	session := NewSession(testLogger(), testConfig(), backend)
	req.NoError(session.Start(context.Background()))
	req.Eventually(session.timeline.Loaded, time.Second, 5*time.Millisecond)

	// When it is stopped
	session.Stop()

	// Then the backend is not reached again
	messages, err := session.Reload(context.Background())
	req.ErrorIs(err, errors.ErrSessionStopped)
	req.Nil(messages)
	req.ErrorIs(session.Start(context.Background()), errors.ErrSessionStopped)
	req.Empty(session.Messages())
}

func TestSession_Stop_CancelsReload(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	backend := mocks.NewMockIBackend(ctrl)
	sub := newFakeSubscription()
	reloading := make(chan struct{})

	backend.EXPECT().OnCreateMessage(gomock.Any()).Return(sub, nil).Times(1)
	gomock.InOrder(
		backend.EXPECT().ListMessages(gomock.Any(), gomock.Any()).Return(domain.Page{}, nil),
		backend.EXPECT().ListMessages(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ domain.ListRequest) (domain.Page, error) {
				close(reloading)
				<-ctx.Done()
				return domain.Page{}, ctx.Err()
			}),
	)

	session := NewSession(testLogger(), testConfig(), backend)
	req.NoError(session.Start(context.Background()))
	req.Eventually(session.timeline.Loaded, time.Second, 5*time.Millisecond)

	// Given a reload blocked on the backend
	result := make(chan error, 1)
	go func() {
		_, err := session.Reload(context.Background())
		result <- err
	}()
	<-reloading

	// When the session is stopped
	session.Stop()

	// Then the reload was cut short
	select {
	case err := <-result:
		req.ErrorIs(err, errors.ErrFetch)
		req.ErrorIs(err, context.Canceled)
	case <-time.After(time.Second):
		req.Fail("reload should be cancelled by Stop")
	}
}
