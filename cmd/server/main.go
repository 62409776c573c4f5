package main

import (
	"chat-sync/infrastructure/grpc/server"
	"chat-sync/moderation"
	"chat-sync/observability"
	pb "chat-sync/proto/chatsync/v1"
	"chat-sync/repositories"
	"chat-sync/runtime"
	"chat-sync/services"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run owns every resource so deferred cleanups execute before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Moderation
	moderator, err := newModerator(log, config)
	if err != nil {
		return fmt.Errorf("moderation setup failed: %w", err)
	}

	// 4. Service & Metrics
	metricsRegistry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(metricsRegistry)
	registry := runtime.NewRegistry()
	messageRepository := repositories.NewMessageRepository(db, log, config.LimitMessages)
	chatService := services.NewChatService(log, messageRepository, registry, moderator,
		config.MaxContentLength, config.SinkTimeout).WithMetrics(metrics)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. gRPC Server Setup
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(server.LoggingInterceptor(log)),
		grpc.ChainStreamInterceptor(server.StreamLoggingInterceptor(log)),
	)
	pb.RegisterChatServiceServer(s, server.NewChatServer(log, chatService, config.ConnectionBufferSize).WithMetrics(metrics))

	errChan := make(chan error, 2)
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", config.Host, config.MetricsPort),
		Handler:           observability.Handler(metricsRegistry),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("Starting metrics server", "address", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("metrics server error: %w", err)
		}
	}()
	defer func() { _ = metricsServer.Close() }()

	go func() {
		log.Info("Starting gRPC server", "address", address, "at", time.Now().UTC())
		if err := s.Serve(listener); err != nil && err != grpc.ErrServerStopped {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// Live streams only end when their client leaves, don't wait on them forever
	stopped := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		s.Stop()
	}
	log.Info("Program stopped cleanly")
	return nil
}

func newModerator(log *slog.Logger, config Config) (*moderation.Moderator, error) {
	words := moderation.ParseWords(config.CensoredWords)
	if config.CensoredWordsDir != "" {
		dictionary, err := moderation.LoadDictionary(os.DirFS(config.CensoredWordsDir), ".")
		if err != nil {
			return nil, err
		}
		log.Info("Censored words loaded", "languages", dictionary.Languages, "words", len(dictionary.Words))
		words = append(words, dictionary.Words...)
	}
	replacement, err := characterRune(config.CharacterReplacement)
	if err != nil {
		return nil, err
	}
	return moderation.NewModerator(words, replacement, log)
}
