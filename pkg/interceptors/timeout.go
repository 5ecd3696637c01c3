// Package interceptors содержит серверные unary-интерсепторы gRPC sections-service:
// таймаут, логирование с контекстным логгером и перехват паник.
package interceptors

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// EnsureDeadline ограничивает ctx сроком d, если у него нет своего дедлайна.
// При d <= 0 или уже заданном дедлайне ctx возвращается как есть, cancel — no-op.
// Используется и gRPC-интерсептором, и HTTP-мидлваром Timeout.
func EnsureDeadline(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || d <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, d)
}

// WithTimeout — unary-интерсептор поверх EnsureDeadline.
func WithTimeout(d time.Duration) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx, cancel := EnsureDeadline(ctx, d)
		defer cancel()

		return handler(ctx, req)
	}
}
