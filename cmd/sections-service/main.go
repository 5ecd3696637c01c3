package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/pribylovaa/hobby-sections/internal/cache"
	"github.com/pribylovaa/hobby-sections/internal/config"
	sectionshttp "github.com/pribylovaa/hobby-sections/internal/http"
	"github.com/pribylovaa/hobby-sections/internal/http/middleware"
	"github.com/pribylovaa/hobby-sections/internal/service"
	"github.com/pribylovaa/hobby-sections/internal/storage"
	"github.com/pribylovaa/hobby-sections/internal/storage/mongo"
	"github.com/pribylovaa/hobby-sections/internal/storage/postgres"
	"github.com/pribylovaa/hobby-sections/pkg/interceptors"
	"github.com/pribylovaa/hobby-sections/pkg/redact"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	health "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting sections-service", "env", cfg.Env, "storage", cfg.Storage.Driver)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	// Хранилище.
	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	store, err := openStorage(dbCtx, cfg, log)
	dbCancel()
	if err != nil {
		log.Error("storage_connect_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}

	// Кэш профилей (опционально).
	var profileCache service.ProfileCache
	var profiles *cache.Profiles
	if cfg.Redis.Enabled() {
		redisCtx, redisCancel := context.WithTimeout(rootCtx, 5*time.Second)
		rdb, err := cache.Connect(redisCtx, cfg.Redis.URL)
		redisCancel()
		if err != nil {
			log.Error("redis_connect_failed",
				slog.String("url", redact.DSN(cfg.Redis.URL)),
				slog.String("err", err.Error()),
			)
			rootCancel()
			store.Close()
			os.Exit(1)
		}

		profiles = cache.New(rdb, store, cfg.Redis.Prefix, cfg.Redis.TTL)
		profileCache = profiles
		log.Info("redis_connected", slog.String("url", redact.DSN(cfg.Redis.URL)), slog.Duration("ttl", cfg.Redis.TTL))
	}

	// Сервис.
	svc := service.New(store, store, profileCache, cfg)
	log.Info("service_initialized")

	var ready atomic.Bool

	apiHandler := sectionshttp.NewRouter(svc, sectionshttp.Options{
		Logger:         log,
		Timeout:        cfg.Timeouts.Service,
		BasePath:       cfg.HTTP.BasePath,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Metrics:        middleware.NewMetrics(nil),
	})

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           newOpsMux(apiHandler, &ready),
		ReadHeaderTimeout: 5 * time.Second,
	}

	httpLn, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		rootCancel()
		closeAll(store, profiles, log)
		os.Exit(1)
	}
	log.Info("http_listen_start", slog.String("addr", httpAddr), slog.String("base_path", cfg.HTTP.BasePath))

	grpcServer, hs := newGRPCServer(cfg, log)

	grpcAddr := cfg.GRPC.Addr()
	grpcLn, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Error("grpc_listen_failed",
			slog.String("addr", grpcAddr),
			slog.String("err", err.Error()),
		)
		rootCancel()
		_ = httpLn.Close()
		closeAll(store, profiles, log)
		os.Exit(1)
	}
	log.Info("grpc_listen_start", slog.String("addr", grpcAddr))

	serveErrCh := make(chan error, 2)
	go func() {
		if err := httpSrv.Serve(httpLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
	}()
	go func() {
		if err := grpcServer.Serve(grpcLn); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			serveErrCh <- err
		}
	}()

	// Сервис готов: health -> SERVING, /healthz -> 200.
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	ready.Store(true)
	log.Info("service_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		log.Error("serve_failed", slog.String("err", err.Error()))
	}

	ready.Store(false)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	done := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		log.Info("grpc_stopped")
	case <-shutdownCtx.Done():
		log.Warn("grpc_force_stop")
		grpcServer.Stop()
	}

	shutdownCancel()
	rootCancel()
	closeAll(store, profiles, log)

	log.Info("service_stopped")
}

// newOpsMux — служебные эндпоинты (/livez, /healthz, /metrics) и REST API на остальных путях.
func newOpsMux(api http.Handler, ready *atomic.Bool) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if !ready.Load() {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", api)

	return mux
}

// newGRPCServer собирает служебный gRPC-сервер: интерсепторы, метрики, health
// и рефлексия (только local/dev). Health стартует в NOT_SERVING до готовности сервиса.
func newGRPCServer(cfg *config.Config, log *slog.Logger) (*grpc.Server, *health.Server) {
	grpc_prometheus.EnableHandlingTimeHistogram()

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			interceptors.Recover(log),
			interceptors.UnaryLoggingInterceptor(log),
			interceptors.WithTimeout(cfg.Timeouts.Service),
			grpc_prometheus.UnaryServerInterceptor,
		),
		grpc.ChainStreamInterceptor(
			grpc_prometheus.StreamServerInterceptor,
		),
	)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	if cfg.Env == envLocal || cfg.Env == envDev {
		reflection.Register(srv)
	}

	grpc_prometheus.Register(srv)

	return srv, hs
}

// openStorage подключает хранилище выбранного драйвера.
// Для postgres при auto_migrate=true сначала применяются миграции.
func openStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverMongo:
		st, err := mongo.New(ctx, cfg.Mongo.URL)
		if err != nil {
			return nil, err
		}
		log.Info("mongo_connected", slog.String("url", redact.DSN(cfg.Mongo.URL)))

		return st, nil
	default:
		if cfg.Postgres.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.Postgres.URL); err != nil {
				return nil, err
			}
			log.Info("postgres_migrated")
		}

		st, err := postgres.New(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		log.Info("postgres_connected", slog.String("url", redact.DSN(cfg.Postgres.URL)))

		return st, nil
	}
}

func closeAll(store storage.Storage, profiles *cache.Profiles, log *slog.Logger) {
	if profiles != nil {
		if err := profiles.Close(); err != nil {
			log.Warn("redis_close_failed", slog.String("err", err.Error()))
		}
	}

	store.Close()
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
