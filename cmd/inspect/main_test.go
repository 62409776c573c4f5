package main

import (
	"bytes"
	"chat-sync/domain"
	"chat-sync/mocks"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDump_WalksEveryPage(t *testing.T) {
	req := require.New(t)
	repository := mocks.NewMockIMessageRepository(gomock.NewController(t))
	cursor := "cursor-1"
	gomock.InOrder(
		repository.EXPECT().GetMessages(2, nil).Return([]domain.Message{
			{ID: "id-c", Body: "third", Version: 1},
			{ID: "id-b", Body: "second", Version: 1},
		}, &cursor, nil),
		repository.EXPECT().GetMessages(2, &cursor).Return([]domain.Message{
			{ID: "id-a", Body: "first", Version: 1},
		}, nil, nil),
	)

	var out bytes.Buffer
	req.NoError(dump(&out, repository, 2, 0))

	text := out.String()
	req.Less(strings.Index(text, "third"), strings.Index(text, "second"))
	req.Less(strings.Index(text, "second"), strings.Index(text, "first"))
}

func TestDump_StopsAtMax(t *testing.T) {
	req := require.New(t)
	repository := mocks.NewMockIMessageRepository(gomock.NewController(t))
	cursor := "cursor-1"
	repository.EXPECT().GetMessages(2, nil).Return([]domain.Message{
		{ID: "id-c", Body: "third"},
		{ID: "id-b", Body: "second"},
	}, &cursor, nil)

	var out bytes.Buffer
	req.NoError(dump(&out, repository, 2, 1))

	req.Contains(out.String(), "third")
	req.NotContains(out.String(), "second")
}

func TestRow_TruncatesLongBody(t *testing.T) {
	cells := row(domain.Message{ID: "x", Body: strings.Repeat("é", 80), Version: 3})
	require.Equal(t, strings.Repeat("é", 60)+"...", cells[4])
	require.Equal(t, "3", cells[2])
}
