package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authhttp "github.com/radieske/bet-tracker/internal/auth/http"
	authrepo "github.com/radieske/bet-tracker/internal/auth/repo"
	betshttp "github.com/radieske/bet-tracker/internal/bets/http"
	"github.com/radieske/bet-tracker/internal/bets/producer"
	betsrepo "github.com/radieske/bet-tracker/internal/bets/repo"

	"github.com/radieske/bet-tracker/internal/auth"
	"github.com/radieske/bet-tracker/internal/blob"
	"github.com/radieske/bet-tracker/internal/shared/cache"
	"github.com/radieske/bet-tracker/internal/shared/config"
	"github.com/radieske/bet-tracker/internal/shared/db"
	skafka "github.com/radieske/bet-tracker/internal/shared/kafka"
	"github.com/radieske/bet-tracker/internal/shared/logger"
	"github.com/radieske/bet-tracker/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Postgres + migrações embutidas
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()
	if err := db.RunMigrations(pg); err != nil {
		log.Fatal("migrations", zap.Error(err))
	}

	// Redis guarda as sessões de login
	rdb, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer rdb.Close()

	// Kafka writers para a trilha de auditoria
	recordedW := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetRecorded)
	defer recordedW.Close()
	changedW := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetStatusChanged)
	defer changedW.Close()

	// deps
	photos, err := blob.NewFSStore(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatal("blob store", zap.Error(err))
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	sessions := auth.NewSessionStore(rdb)
	authn := auth.NewAuthenticator(log, tokens, sessions)

	authAPI := authhttp.NewServer(log, authrepo.NewPostgres(pg), tokens, sessions, photos)
	betsAPI := betshttp.NewServer(log,
		betsrepo.NewPostgres(pg, cfg.StrictStatusTransitions),
		producer.NewKafkaPublisher(recordedW, changedW),
	)

	root := chi.NewRouter()
	authAPI.RegisterPublic(root)
	root.Group(func(pr chi.Router) {
		pr.Use(authn.Middleware)
		authAPI.RegisterProtected(pr)
		betsAPI.RegisterRoutes(pr)
	})
	// fotos de perfil servidas pelo próprio serviço
	root.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(photos.Dir()))))

	// metrics/health em porta separada
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return fmt.Errorf("pg: %w", err)
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		return nil
	})
	log.Info("metrics/health", zap.String("addr", ":"+cfg.MetricsPort))

	apiSrv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: root,
	}
	log.Info("api listening", zap.String("addr", apiSrv.Addr))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api srv", zap.Error(err))
	}
}
