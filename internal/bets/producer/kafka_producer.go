package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/radieske/bet-tracker/pkg/contracts/events"
)

// KafkaPublisher publica a atividade do ledger nos tópicos de auditoria.
// Publicação é best-effort: falha aqui nunca derruba a requisição.
type KafkaPublisher struct {
	Recorded *kafka.Writer
	Changed  *kafka.Writer
}

func NewKafkaPublisher(recorded, changed *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Recorded: recorded, Changed: changed}
}

func (p *KafkaPublisher) PublishBetRecorded(ctx context.Context, e events.BetRecorded) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return p.Recorded.WriteMessages(ctx, kafka.Message{Key: []byte(e.BetID), Value: b})
}

func (p *KafkaPublisher) PublishBetStatusChanged(ctx context.Context, e events.BetStatusChanged) error {
	e.Ts = time.Now().UTC()
	b, _ := json.Marshal(e)
	return p.Changed.WriteMessages(ctx, kafka.Message{Key: []byte(e.BetID), Value: b})
}
