package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/healthlens/healthlens-api/internal/application"
	appanalysis "github.com/healthlens/healthlens-api/internal/application/analysis"
	"github.com/healthlens/healthlens-api/internal/config"
	domain "github.com/healthlens/healthlens-api/internal/domain/analysis"
	domainproviders "github.com/healthlens/healthlens-api/internal/domain/providers"
	"github.com/healthlens/healthlens-api/internal/infra/ai/openai"
	"github.com/healthlens/healthlens-api/internal/infra/cache"
	mysqlp "github.com/healthlens/healthlens-api/internal/infra/db/mysql"
	postgresp "github.com/healthlens/healthlens-api/internal/infra/db/postgres"
	"github.com/healthlens/healthlens-api/internal/infra/httpserver"
	minioStore "github.com/healthlens/healthlens-api/internal/infra/storage"
	"github.com/healthlens/healthlens-api/internal/middleware"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal().Err(err).Msg("config load error")
	}

	ctx := context.Background()

	var db *sql.DB
	var repo domain.Repository
	var providerRepo domainproviders.Repository
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatal().Err(err).Msg("postgres connect error")
		}
		repo = postgresp.NewAnalysisRepository(db)
		providerRepo = postgresp.NewProviderRepository(db)
	default:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatal().Err(err).Msg("mysql connect error")
		}
		repo = mysqlp.NewAnalysisRepository(db)
		providerRepo = mysqlp.NewProviderRepository(db)
	}
	defer db.Close()

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		ttl := time.Duration(cfg.Redis.TTLSeconds) * time.Second
		providerRepo = cache.NewProviderCache(providerRepo, rdb, ttl, log)
	}

	visionClient, err := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, log)
	if err != nil {
		log.Fatal().Err(err).Msg("openai init error")
	}

	svc := &appanalysis.Service{
		Vision:        visionClient,
		Repo:          repo,
		Providers:     providerRepo,
		Clock:         application.SystemClock{},
		Log:           log,
		ProviderLimit: cfg.Providers.Limit,
	}

	if cfg.Minio.Endpoint != "" {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("minio init error")
		}
		svc.Images = store
	}

	handler := httpserver.NewRouter(svc, log, httpserver.Options{
		Repo:      repo,
		Providers: providerRepo,
		HealthCheckers: map[string]middleware.HealthChecker{
			"database": &middleware.DatabaseHealthChecker{DB: db},
		},
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutting down server")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
