package middleware

import (
	"net/http"
	"time"

	"github.com/pribylovaa/hobby-sections/pkg/interceptors"
)

// Timeout ограничивает обработку запроса сроком d по тем же правилам,
// что и gRPC-сервер (interceptors.EnsureDeadline): чужой дедлайн не трогаем, d <= 0 — без ограничения.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := interceptors.EnsureDeadline(r.Context(), d)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
