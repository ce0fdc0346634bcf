package audit

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/bet-tracker/pkg/contracts/events"
)

// Reader abstrai o consumer Kafka para os testes do worker.
type Reader interface {
	ReadMessage(ctx context.Context) (key []byte, value []byte, err error)
}

// Worker consome os tópicos de atividade e materializa a trilha em bet_audit.
type Worker struct {
	log   *zap.Logger
	store *Store
}

func NewWorker(log *zap.Logger, store *Store) *Worker {
	return &Worker{log: log, store: store}
}

// ConsumeRecorded roda o loop do tópico bet_recorded até o contexto cair.
func (w *Worker) ConsumeRecorded(ctx context.Context, r Reader) {
	w.consume(ctx, r, "bet_recorded", w.handleRecorded)
}

// ConsumeStatusChanged idem para bet_status_changed.
func (w *Worker) ConsumeStatusChanged(ctx context.Context, r Reader) {
	w.consume(ctx, r, "bet_status_changed", w.handleStatusChanged)
}

func (w *Worker) consume(ctx context.Context, r Reader, topic string, handle func(context.Context, []byte) error) {
	for {
		_, value, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.log.Warn("kafka read", zap.String("topic", topic), zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		if err := handle(ctx, value); err != nil {
			w.log.Error("handle event", zap.String("topic", topic), zap.Error(err))
			// backoff simples pra não inundar o log em falha de banco
			time.Sleep(500 * time.Millisecond)
		}
	}
}

func (w *Worker) handleRecorded(ctx context.Context, value []byte) error {
	var e events.BetRecorded
	if err := json.Unmarshal(value, &e); err != nil {
		w.log.Error("unmarshal bet_recorded", zap.Error(err))
		return nil // mensagem podre não é retryável
	}
	return w.store.Append(ctx, e.BetID, e.UserID, "bet_recorded", "", e.Status, value)
}

func (w *Worker) handleStatusChanged(ctx context.Context, value []byte) error {
	var e events.BetStatusChanged
	if err := json.Unmarshal(value, &e); err != nil {
		w.log.Error("unmarshal bet_status_changed", zap.Error(err))
		return nil
	}
	return w.store.Append(ctx, e.BetID, e.UserID, "bet_status_changed", e.OldStatus, e.NewStatus, value)
}
