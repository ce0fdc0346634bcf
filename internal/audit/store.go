package audit

import (
	"context"
	"database/sql"
	"fmt"
)

// Store grava a trilha de auditoria da atividade do ledger.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Append insere uma linha de auditoria; payload é o evento bruto em JSON.
func (s *Store) Append(ctx context.Context, betID, userID, eventType, oldStatus, newStatus string, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bet_audit (bet_id, user_id, event_type, old_status, new_status, payload)
		VALUES ($1,$2,$3,NULLIF($4,''),NULLIF($5,''),$6)`,
		betID, userID, eventType, oldStatus, newStatus, payload)
	if err != nil {
		return fmt.Errorf("insert audit row: %w", err)
	}
	return nil
}
