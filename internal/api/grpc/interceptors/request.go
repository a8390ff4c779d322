package interceptors

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// LoggingUnaryInterceptor логирует каждый unary RPC: метод, latency_ms, grpc_code.
// Клиентские ошибки (InvalidArgument, NotFound) — Warn, остальные — Error.
func LoggingUnaryInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	if log == nil {
		log = slog.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		attrs := []any{"method", info.FullMethod, "latency_ms", time.Since(start).Milliseconds(), "grpc_code", code.String()}
		switch code {
		case codes.OK:
			log.Info("grpc request", attrs...)
		case codes.InvalidArgument, codes.NotFound, codes.Unimplemented:
			log.Warn("grpc request", append(attrs, "error", status.Convert(err).Message())...)
		default:
			log.Error("grpc request", append(attrs, "error", status.Convert(err).Message())...)
		}
		return resp, err
	}
}
