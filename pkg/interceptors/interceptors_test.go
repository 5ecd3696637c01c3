package interceptors

// Тесты pkg/interceptors: цепочка интерсепторов поверх настоящего gRPC-сервера
// (bufconn + health), плюс точечные проверки timeout/recover/logging.

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/hobby-sections/pkg/log"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type record struct {
	msg   string
	level slog.Level
	attrs map[string]any
}

// sink собирает записи всех дочерних логгеров.
type sink struct {
	mu      sync.Mutex
	records []record
}

// sinkHandler — slog.Handler, пишущий записи в общий sink (с учётом With).
type sinkHandler struct {
	s    *sink
	base []slog.Attr
}

func (h sinkHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h sinkHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, len(h.base)+r.NumAttrs())
	for _, a := range h.base {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.s.mu.Lock()
	h.s.records = append(h.s.records, record{msg: r.Message, level: r.Level, attrs: attrs})
	h.s.mu.Unlock()
	return nil
}

func (h sinkHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return sinkHandler{s: h.s, base: append(append([]slog.Attr{}, h.base...), attrs...)}
}

func (h sinkHandler) WithGroup(string) slog.Handler { return h }

func (s *sink) find(msg string) []record {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []record
	for _, r := range s.records {
		if r.msg == msg {
			out = append(out, r)
		}
	}
	return out
}

// startHealth поднимает gRPC-сервер с health и цепочкой интерсепторов как в main.
func startHealth(t *testing.T, logger *slog.Logger, timeout time.Duration) healthpb.HealthClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		Recover(logger),
		UnaryLoggingInterceptor(logger),
		WithTimeout(timeout),
	))

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return healthpb.NewHealthClient(conn)
}

func TestChain_HealthCheck_LogsCall(t *testing.T) {
	s := &sink{}
	client := startHealth(t, slog.New(sinkHandler{s: s}), time.Second)

	ctx := metadata.AppendToOutgoingContext(context.Background(), RequestIDHeader, "rid-42")
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	got := s.find("grpc")
	require.Len(t, got, 1)
	require.Equal(t, slog.LevelInfo, got[0].level)
	require.Equal(t, "rid-42", got[0].attrs["request_id"])
	require.Equal(t, healthpb.Health_Check_FullMethodName, got[0].attrs["method"])
	require.Equal(t, codes.OK.String(), got[0].attrs["code"])
	require.NotEqual(t, "-", got[0].attrs["peer"])
}

// Неизвестный сервис -> NotFound, код попадает в лог; request_id генерируется.
func TestChain_HealthCheck_UnknownService(t *testing.T) {
	s := &sink{}
	client := startHealth(t, slog.New(sinkHandler{s: s}), 0)

	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "nope"})
	require.Equal(t, codes.NotFound, status.Code(err))

	got := s.find("grpc")
	require.Len(t, got, 1)
	require.Equal(t, codes.NotFound.String(), got[0].attrs["code"])

	rid, _ := got[0].attrs["request_id"].(string)
	_, perr := uuid.Parse(rid)
	require.NoError(t, perr)
}

func TestUnaryLoggingInterceptor_ContextLoggerAndNoPeer(t *testing.T) {
	s := &sink{}
	info := &grpc.UnaryServerInfo{FullMethod: healthpb.Health_Watch_FullMethodName}

	var inner *slog.Logger
	_, err := UnaryLoggingInterceptor(slog.New(sinkHandler{s: s}))(context.Background(), nil, info,
		func(ctx context.Context, _ any) (any, error) {
			inner = log.From(ctx)
			inner.Info("inside")
			return nil, status.Error(codes.Unavailable, "down")
		})
	require.Equal(t, codes.Unavailable, status.Code(err))
	require.NotSame(t, slog.Default(), inner)

	inside := s.find("inside")
	require.Len(t, inside, 1)
	require.Equal(t, healthpb.Health_Watch_FullMethodName, inside[0].attrs["method"])

	call := s.find("grpc")
	require.Len(t, call, 1)
	require.Equal(t, "-", call[0].attrs["peer"])
	require.Equal(t, codes.Unavailable.String(), call[0].attrs["code"])
	_, ok := call[0].attrs["dur"].(time.Duration)
	require.True(t, ok)
}

func TestRecover(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: healthpb.Health_Check_FullMethodName}

	t.Run("panic becomes Internal", func(t *testing.T) {
		s := &sink{}
		resp, err := Recover(slog.New(sinkHandler{s: s}))(context.Background(), nil, info,
			func(context.Context, any) (any, error) { panic("secret details") })

		require.Nil(t, resp)
		require.Equal(t, codes.Internal, status.Code(err))
		require.NotContains(t, err.Error(), "secret details")

		got := s.find("panic_recovered")
		require.Len(t, got, 1)
		require.Equal(t, slog.LevelError, got[0].level)
		require.Equal(t, "secret details", got[0].attrs["panic"])
		require.NotEmpty(t, got[0].attrs["stack"])
	})

	t.Run("context logger wins over base", func(t *testing.T) {
		base, fromCtx := &sink{}, &sink{}
		ctx := log.Into(context.Background(), slog.New(sinkHandler{s: fromCtx}))

		_, err := Recover(slog.New(sinkHandler{s: base}))(ctx, nil, info,
			func(context.Context, any) (any, error) { panic(errors.New("boom")) })

		require.Equal(t, codes.Internal, status.Code(err))
		require.Len(t, fromCtx.find("panic_recovered"), 1)
		require.Empty(t, base.find("panic_recovered"))
	})

	t.Run("no panic passes through", func(t *testing.T) {
		resp, err := Recover(nil)(context.Background(), "req", info,
			func(_ context.Context, req any) (any, error) { return req, nil })

		require.NoError(t, err)
		require.Equal(t, "req", resp)
	})
}

func TestWithTimeout(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: healthpb.Health_Check_FullMethodName}

	existing, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()
	existingDeadline, _ := existing.Deadline()

	tests := []struct {
		name         string
		ctx          context.Context
		d            time.Duration
		wantDeadline bool
		check        func(t *testing.T, dl time.Time)
	}{
		{
			name:         "sets deadline",
			ctx:          context.Background(),
			d:            50 * time.Millisecond,
			wantDeadline: true,
			check: func(t *testing.T, dl time.Time) {
				require.WithinDuration(t, time.Now().Add(50*time.Millisecond), dl, 50*time.Millisecond)
			},
		},
		{
			name:         "keeps existing deadline",
			ctx:          existing,
			d:            time.Millisecond,
			wantDeadline: true,
			check: func(t *testing.T, dl time.Time) {
				require.True(t, existingDeadline.Equal(dl))
			},
		},
		{
			name: "zero disables",
			ctx:  context.Background(),
			d:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WithTimeout(tt.d)(tt.ctx, nil, info, func(ctx context.Context, _ any) (any, error) {
				dl, ok := ctx.Deadline()
				require.Equal(t, tt.wantDeadline, ok)
				if tt.check != nil {
					tt.check(t, dl)
				}
				return nil, nil
			})
			require.NoError(t, err)
		})
	}
}

// Медленный обработчик получает DeadlineExceeded от своего контекста.
func TestWithTimeout_Expires(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: healthpb.Health_Check_FullMethodName}

	_, err := WithTimeout(10*time.Millisecond)(context.Background(), nil, info,
		func(ctx context.Context, _ any) (any, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEnsureDeadline(t *testing.T) {
	ctx, cancel := EnsureDeadline(context.Background(), 0)
	cancel()
	_, ok := ctx.Deadline()
	require.False(t, ok)

	parent, parentCancel := context.WithTimeout(context.Background(), time.Hour)
	defer parentCancel()
	ctx, cancel = EnsureDeadline(parent, time.Millisecond)
	require.Same(t, parent, ctx)
	cancel()
	require.NoError(t, parent.Err())

	ctx, cancel = EnsureDeadline(context.Background(), time.Minute)
	_, ok = ctx.Deadline()
	require.True(t, ok)
	cancel()
	require.ErrorIs(t, ctx.Err(), context.Canceled)
}
