package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/bet-tracker/internal/audit"
	"github.com/radieske/bet-tracker/internal/shared/config"
	"github.com/radieske/bet-tracker/internal/shared/db"
	skafka "github.com/radieske/bet-tracker/internal/shared/kafka"
	"github.com/radieske/bet-tracker/internal/shared/logger"
	"github.com/radieske/bet-tracker/internal/shared/metrics"
)

// readerAdapter encaixa o *kafka.Reader na interface que o worker consome.
type readerAdapter struct{ r *kafkago.Reader }

func (a readerAdapter) ReadMessage(ctx context.Context) ([]byte, []byte, error) {
	return skafka.ReadNext(ctx, a.r)
}

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg connect", zap.Error(err))
	}
	defer pg.Close()

	recordedR := skafka.NewReader(cfg.KafkaBrokers, cfg.TopicBetRecorded, "bet-audit")
	defer recordedR.Close()
	changedR := skafka.NewReader(cfg.KafkaBrokers, cfg.TopicBetStatusChanged, "bet-audit")
	defer changedR.Close()

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return pg.PingContext(ctx)
	})

	worker := audit.NewWorker(log, audit.NewStore(pg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("audit-worker started",
		zap.String("consume", cfg.TopicBetRecorded+","+cfg.TopicBetStatusChanged),
	)

	go worker.ConsumeStatusChanged(ctx, readerAdapter{changedR})
	worker.ConsumeRecorded(ctx, readerAdapter{recordedR})
}
