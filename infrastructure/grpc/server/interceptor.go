package server

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// LoggingInterceptor logs every unary call with its status code and latency.
// A panic in a handler is turned into codes.Internal instead of killing the server.
func LoggingInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				log.Error("Handler panicked", "method", info.FullMethod, "panic", r)
				resp, err = nil, status.Error(codes.Internal, "internal error")
			}
			logCall(log, info.FullMethod, err, start)
		}()
		return handler(ctx, req)
	}
}

// StreamLoggingInterceptor does the same for streams, logging when the stream ends.
func StreamLoggingInterceptor(log *slog.Logger) grpc.StreamServerInterceptor {
	return func(srv any, stream grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				log.Error("Stream handler panicked", "method", info.FullMethod, "panic", r)
				err = status.Error(codes.Internal, "internal error")
			}
			logCall(log, info.FullMethod, err, start)
		}()
		return handler(srv, stream)
	}
}

func logCall(log *slog.Logger, method string, err error, start time.Time) {
	code := status.Code(err)
	level := slog.LevelDebug
	switch code {
	case codes.OK, codes.Canceled, codes.InvalidArgument:
	default:
		level = slog.LevelWarn
	}
	log.Log(context.Background(), level, "gRPC call",
		"method", method,
		"code", code.String(),
		"duration", time.Since(start))
}
