package main

import (
	"bufio"
	"chat-sync/client"
	"chat-sync/errors"
	grpcclient "chat-sync/infrastructure/grpc/client"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mama165/sdk-go/logs"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const reloadCommand = "/reload"

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run wires a Session to the terminal: the chat list is printed as it
// changes, every line typed on stdin is submitted.
func run() (int, error) {
	// 1. Configuration
	config, err := client.LoadConfig()
	if err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Connection
	conn, err := grpcclient.Dial(ctx, config.ServerAddress, 5*time.Second)
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to server at %s: %w", config.ServerAddress, err)
	}
	defer func() {
		log.Info("Closing connection...")
		_ = conn.Close()
	}()

	// 4. Session
	session := client.NewSession(log, config, grpcclient.NewChatClient(log, conn))
	if err := session.Start(ctx); err != nil {
		return exitRuntime, err
	}
	defer session.Stop()

	out := newRenderer(os.Stdout, config.Colours)
	out.info(fmt.Sprintf(">>> Connected to %s (type %s to reload history, Ctrl+C to quit)",
		config.ServerAddress, reloadCommand))

	lines := make(chan string)
	go readLines(os.Stdin, lines)

	// 5. Event loop
	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping client...")
			return exitOK, nil
		case <-session.Updates():
			out.render(session.Messages())
		case err := <-session.Errors():
			out.error(err)
		case <-session.Disconnected():
			out.render(session.Messages())
			return exitRuntime, disconnectCause(session.Errors(), out)
		case line, ok := <-lines:
			if !ok {
				return exitOK, nil
			}
			handleLine(ctx, session, out, line)
		}
	}
}

// disconnectCause drains what is left of errs and returns the
// errors.ErrConnectionLost that ended the session. Older errors are printed.
func disconnectCause(errs <-chan error, out *renderer) error {
	for {
		select {
		case err := <-errs:
			if stderrors.Is(err, errors.ErrConnectionLost) {
				return err
			}
			out.error(err)
		default:
			return errors.ErrConnectionLost
		}
	}
}

func handleLine(ctx context.Context, session *client.Session, out *renderer, line string) {
	if strings.TrimSpace(line) == reloadCommand {
		if _, err := session.Reload(ctx); err != nil {
			out.error(err)
		}
		return
	}
	session.Input().Set(line)
	if err := session.SubmitInput(ctx); err != nil {
		out.error(err)
	}
}

func readLines(r io.Reader, lines chan<- string) {
	defer close(lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines <- scanner.Text()
	}
}
