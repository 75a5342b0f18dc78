package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/schoolcare/counselor-dashboard/internal/api"
	"github.com/schoolcare/counselor-dashboard/internal/core/domain"
	"github.com/schoolcare/counselor-dashboard/internal/core/ports"
	"github.com/schoolcare/counselor-dashboard/internal/core/service"
	"github.com/schoolcare/counselor-dashboard/internal/infrastructure/db/mongo"
	"github.com/schoolcare/counselor-dashboard/internal/infrastructure/db/redis"
	"github.com/schoolcare/counselor-dashboard/internal/infrastructure/memory"
	"github.com/schoolcare/counselor-dashboard/internal/infrastructure/scheduler"
	"github.com/schoolcare/counselor-dashboard/internal/infrastructure/sis"
	"github.com/schoolcare/counselor-dashboard/internal/infrastructure/stream"
	"github.com/schoolcare/counselor-dashboard/internal/pkg/config"
	"github.com/schoolcare/counselor-dashboard/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "counselor-dashboard",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Audit.Backend).Msg("failed to open stores")
	}
	defer st.close()

	sisClient, err := sis.NewClient(sis.Config{
		BaseURL:     cfg.SIS.BaseURL,
		Timeout:     cfg.SIS.Timeout,
		TokenSecret: cfg.SIS.TokenSecret,
		Subject:     cfg.Admin.User,
		Role:        cfg.Admin.Role,
	}, log.With().Str("component", "sis").Logger())
	if err != nil {
		log.Fatal().Err(err).Msg("invalid SIS configuration")
	}

	auditLog := service.NewAuditLog(st.audit, time.Local, log)
	dashboard := service.NewDashboardService(sisClient, auditLog, st.reviews, log)
	mutations := service.NewMutationService(sisClient, dashboard, auditLog, st.reviews, st.guard,
		domain.Actor{User: cfg.Admin.User, Role: cfg.Admin.Role}, log)

	refresher := scheduler.NewRefresher(dashboard, cfg.RefreshInterval, log)
	refresher.Start(ctx)

	e := api.NewRouter(api.Deps{
		Dashboard: dashboard,
		Mutations: mutations,
		Mongo:     st.mongo,
		Redis:     st.redis,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Dur("refresh_interval", cfg.RefreshInterval).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	<-refresher.Done()
	log.Info().Msg("shutdown complete")
}

// stores bundles the storage backends selected by AUDIT_BACKEND.
type stores struct {
	audit   ports.AuditStore
	reviews ports.ReviewStore
	guard   ports.MutationGuard

	mongo  *mongodriver.Database
	redis  *goredis.Client
	closer []func()
}

func (s *stores) close() {
	for i := len(s.closer) - 1; i >= 0; i-- {
		s.closer[i]()
	}
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	st := &stores{}

	switch cfg.Audit.Backend {
	case "redis":
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		st.redis = rdb
		st.closer = append(st.closer, func() { _ = rdb.Close() })
		st.audit = redis.NewAuditStore(rdb, cfg.Audit.Key)
		st.reviews = redis.NewReviewStore(rdb)
		st.guard = redis.NewMutationGuard(rdb, cfg.MutationGuardTTL)

	case "mongo":
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		st.mongo = db
		st.closer = append(st.closer, func() { _ = client.Disconnect(context.Background()) })
		auditRepo := mongo.NewAuditRepository(db)
		if err := auditRepo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to ensure audit indexes")
		}
		st.audit = auditRepo
		st.reviews = mongo.NewReviewRepository(db)
		st.guard = memory.NewMutationGuard(cfg.MutationGuardTTL)

	default:
		st.audit = memory.NewAuditStore()
		st.reviews = memory.NewReviewStore()
		st.guard = memory.NewMutationGuard(cfg.MutationGuardTTL)
	}

	if w := stream.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic); w != nil {
		publishing := stream.NewPublishingAuditStore(st.audit, w, log.With().Str("component", "audit-stream").Logger())
		st.audit = publishing
		st.closer = append(st.closer, func() { _ = publishing.Close() })
		log.Info().Str("topic", cfg.Kafka.AuditTopic).Msg("audit stream enabled")
	}

	return st, nil
}
