package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "callerid/internal/auth/handler"
	authservice "callerid/internal/auth/service"
	dirhandler "callerid/internal/directory/handler"
	dirmetrics "callerid/internal/directory/metrics"
	dirservice "callerid/internal/directory/service"
	identitystore "callerid/internal/identity/store"
	jwttoken "callerid/internal/jwt_token"
	"callerid/internal/platform/config"
	"callerid/internal/platform/httpserver"
	"callerid/internal/platform/logger"
	platformmetrics "callerid/internal/platform/metrics"
	"callerid/internal/platform/postgres"
	platformredis "callerid/internal/platform/redis"
	rlmetrics "callerid/internal/ratelimit/metrics"
	rlmiddleware "callerid/internal/ratelimit/middleware"
	rlmodels "callerid/internal/ratelimit/models"
	rlservice "callerid/internal/ratelimit/service"
	"callerid/internal/ratelimit/store/bucket"
	audit "callerid/pkg/platform/audit"
	auditpublisher "callerid/pkg/platform/audit/publisher"
	kafkaaudit "callerid/pkg/platform/audit/publishers/kafka"
	auditmemory "callerid/pkg/platform/audit/store/memory"
	"callerid/pkg/platform/httputil"
	authmw "callerid/pkg/platform/middleware/auth"
	"callerid/pkg/platform/middleware/metadata"
	"callerid/pkg/platform/middleware/request"
	"callerid/pkg/platform/middleware/requesttime"
)

const auditBufferSize = 1024

type identityStore interface {
	dirservice.IdentityStore
	authservice.UserStore
}

// infra holds the backing resources so shutdown can release them in order.
type infra struct {
	store    identityStore
	buckets  rlservice.BucketStore
	audit    *auditpublisher.Publisher
	registry *prometheus.Registry
	closers  []func()
}

func (i *infra) close() {
	for j := len(i.closers) - 1; j >= 0; j-- {
		i.closers[j]()
	}
}

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		logger.New("development", "info").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Environment, cfg.LogLevel)
	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := buildInfra(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.close()

	router, err := buildRouter(cfg, log, deps)
	if err != nil {
		return err
	}

	srv := httpserver.New(cfg.Addr, router, cfg.RequestTimeout)
	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting callerid", "addr", cfg.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func buildInfra(ctx context.Context, cfg config.Server, log *slog.Logger) (*infra, error) {
	deps := &infra{registry: prometheus.NewRegistry()}
	deps.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, func() { _ = db.Close() })
		pg := identitystore.NewPostgres(db)
		if err := pg.Migrate(ctx); err != nil {
			deps.close()
			return nil, err
		}
		deps.store = pg
		log.Info("identity store: postgres")
	} else {
		deps.store = identitystore.NewInMemory()
		log.Info("identity store: in-memory")
	}

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		deps.close()
		return nil, err
	}
	if redisClient != nil {
		deps.closers = append(deps.closers, func() { _ = redisClient.Close() })
		deps.buckets = bucket.NewRedisStore(redisClient.Client)
		log.Info("rate limit buckets: redis")
	} else {
		deps.buckets = bucket.NewInMemoryBucketStore()
		log.Info("rate limit buckets: in-memory")
	}

	var sink audit.Store
	if len(cfg.Kafka.Brokers) > 0 {
		kafka, err := kafkaaudit.New(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
		if err != nil {
			deps.close()
			return nil, err
		}
		deps.closers = append(deps.closers, kafka.Close)
		if err := kafka.EnsureTopic(ctx, 3, 1); err != nil {
			deps.close()
			return nil, err
		}
		sink = kafka
		log.Info("audit sink: kafka", "topic", cfg.Kafka.AuditTopic)
	} else {
		sink = auditmemory.NewInMemoryStore()
		log.Info("audit sink: in-memory")
	}
	deps.audit = auditpublisher.NewPublisher(sink,
		auditpublisher.WithAsyncBuffer(auditBufferSize),
		auditpublisher.WithLogger(log),
	)
	// Registered last so it drains before the sink it writes to closes.
	deps.closers = append(deps.closers, deps.audit.Close)

	return deps, nil
}

func buildRouter(cfg config.Server, log *slog.Logger, deps *infra) (http.Handler, error) {
	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer)

	authSvc, err := authservice.New(deps.store, jwtService,
		authservice.WithLogger(log),
		authservice.WithAuditPublisher(deps.audit),
		authservice.WithTokenTTL(cfg.TokenTTL),
	)
	if err != nil {
		return nil, err
	}
	dirSvc, err := dirservice.New(deps.store,
		dirservice.WithLogger(log),
		dirservice.WithAuditPublisher(deps.audit),
		dirservice.WithMetrics(dirmetrics.New(deps.registry)),
		dirservice.WithScoreConcurrency(cfg.SearchScoreConcurrency),
	)
	if err != nil {
		return nil, err
	}
	limiter, err := rlservice.New(deps.buckets,
		rlmodels.Policy{Limit: cfg.RateLimit.Requests, Window: cfg.RateLimit.Window},
		rlservice.WithLogger(log),
		rlservice.WithMetrics(rlmetrics.New(deps.registry)),
		rlservice.WithAuditPublisher(deps.audit),
	)
	if err != nil {
		return nil, err
	}

	httpMetrics := platformmetrics.New(deps.registry)
	rateLimit := rlmiddleware.New(limiter, log, rlmiddleware.WithDisabled(cfg.RateLimit.Disabled))
	authHandler := authhandler.New(authSvc, log, int(authSvc.TokenTTL().Seconds()))
	dirHandler := dirhandler.New(dirSvc, log)

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(log))
	r.Use(request.Recovery(log))
	r.Use(httpMetrics.Instrument)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(deps.registry, promhttp.HandlerOpts{}))

	r.Route("/api/users", func(r chi.Router) {
		r.Use(request.Timeout(cfg.RequestTimeout))
		r.Use(rateLimit.RateLimit)
		r.Group(authHandler.RegisterPublic)
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAuth(jwttoken.NewJWTServiceAdapter(jwtService), log))
			authHandler.RegisterProtected(r)
			dirHandler.Register(r)
		})
	})
	return r, nil
}
