package main

import (
	"bytes"
	"chat-sync/errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisconnectCause(t *testing.T) {
	t.Run("should skip older errors queued before the connection loss", func(t *testing.T) {
		req := require.New(t)
		var out bytes.Buffer
		errs := make(chan error, 4)
		lost := errors.ConnectionLost(fmt.Errorf("stream reset"))

		// Given a fetch failure was queued before the stream dropped
		errs <- errors.Fetch(fmt.Errorf("timeout"))
		errs <- lost

		// When the cause is looked up
		err := disconnectCause(errs, newRenderer(&out, false))

		// Then the connection loss is returned and the older error is printed
		req.Equal(lost, err)
		req.Contains(out.String(), "history fetch failed")
		req.Empty(errs)
	})

	t.Run("should fall back to a bare connection loss", func(t *testing.T) {
		req := require.New(t)
		var out bytes.Buffer
		errs := make(chan error, 1)
		errs <- errors.Write(fmt.Errorf("refused"))

		err := disconnectCause(errs, newRenderer(&out, false))

		req.ErrorIs(err, errors.ErrConnectionLost)
		req.NotErrorIs(err, errors.ErrWrite)
		req.Contains(out.String(), "message write failed")
	})
}
