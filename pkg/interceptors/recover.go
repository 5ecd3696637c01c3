package interceptors

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/pribylovaa/hobby-sections/pkg/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// errPanic — ответ клиенту на панику обработчика; подробности остаются в логе.
var errPanic = status.Error(codes.Internal, "internal server error")

// Recover превращает панику обработчика в codes.Internal и пишет panic_recovered со стеком.
// Пишет в логгер запроса, если он уже положен в контекст, иначе в base.
func Recover(base *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			panicLogger(ctx, base).LogAttrs(ctx, slog.LevelError, "panic_recovered",
				slog.String("method", info.FullMethod),
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())),
			)

			resp, err = nil, errPanic
		}()

		return handler(ctx, req)
	}
}

func panicLogger(ctx context.Context, base *slog.Logger) *slog.Logger {
	l := log.From(ctx)
	if l == slog.Default() && base != nil {
		return base
	}

	return l
}
