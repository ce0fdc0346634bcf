package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/radieske/bet-tracker/internal/bets"
)

var (
	ErrNotFound          = errors.New("bet not found")
	ErrInvalidTransition = bets.ErrInvalidTransition
)

// Postgres implementa a persistência do ledger de apostas.
type Postgres struct {
	db     *sql.DB
	strict bool // enforce pending -> completed|lost
}

// NewPostgres retorna o repositório de apostas. Com strict=true a transição de
// status só é aceita a partir de pending (ver STRICT_STATUS_TRANSITIONS).
func NewPostgres(db *sql.DB, strict bool) *Postgres {
	return &Postgres{db: db, strict: strict}
}

const betColumns = `id, user_id, stake, payout, category, status, house, description, placed_at, created_at, updated_at`

// List devolve as apostas do dono, aplicando o filtro normalizado.
// O recorte de datas compara placed_at::date, então as pontas são dias de
// calendário inclusivos.
func (p *Postgres) List(ctx context.Context, ownerID string, f bets.Filter) ([]bets.Bet, error) {
	var (
		where = []string{"user_id = $1"}
		args  = []any{ownerID}
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, cond+" $"+strconv.Itoa(len(args)))
	}
	if f.Category != "" {
		add("category =", string(f.Category))
	}
	if f.House != "" {
		add("house =", f.House)
	}
	if f.StartDate != "" {
		add("placed_at::date >=", f.StartDate)
	}
	if f.EndDate != "" {
		add("placed_at::date <=", f.EndDate)
	}

	q := `SELECT ` + betColumns + ` FROM bets WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY placed_at DESC, created_at DESC`

	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list bets: %w", err)
	}
	defer rows.Close()

	var out []bets.Bet
	for rows.Next() {
		b, err := scanBet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Insert grava uma aposta nova com id e timestamps atribuídos aqui.
func (p *Postgres) Insert(ctx context.Context, b bets.Bet) (bets.Bet, error) {
	b.ID = uuid.NewString()
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO bets (`+betColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		b.ID, b.OwnerID, b.Stake.String(), b.Payout.String(), string(b.Category),
		string(b.Status), b.House, b.Description, b.PlacedAt, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return bets.Bet{}, fmt.Errorf("insert bet: %w", err)
	}
	return b, nil
}

// UpdateStatus troca só o status, escopado ao dono, e devolve o registro novo
// mais o status anterior (a trilha de auditoria quer os dois). Retorna
// ErrNotFound quando o id não existe ou pertence a outro usuário; no modo
// estrito retorna ErrInvalidTransition fora de pending -> completed|lost.
func (p *Postgres) UpdateStatus(ctx context.Context, id, ownerID string, status bets.Status) (bets.Bet, bets.Status, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return bets.Bet{}, "", err
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM bets WHERE id=$1 AND user_id=$2 FOR UPDATE`,
		id, ownerID).Scan(&current)
	if err == sql.ErrNoRows {
		return bets.Bet{}, "", ErrNotFound
	} else if err != nil {
		return bets.Bet{}, "", fmt.Errorf("lock bet: %w", err)
	}
	old := bets.Status(current)

	if p.strict && !bets.CanTransition(old, status) {
		return bets.Bet{}, "", ErrInvalidTransition
	}

	row := tx.QueryRowContext(ctx, `
		UPDATE bets SET status=$1, updated_at=NOW()
		WHERE id=$2 AND user_id=$3
		RETURNING `+betColumns,
		string(status), id, ownerID)
	b, err := scanBet(row)
	if err != nil {
		return bets.Bet{}, "", fmt.Errorf("update bet status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return bets.Bet{}, "", err
	}
	return b, old, nil
}

// Delete remove a aposta do dono. Hard delete; id de outro dono vira ErrNotFound.
func (p *Postgres) Delete(ctx context.Context, id, ownerID string) error {
	res, err := p.db.ExecContext(ctx,
		`DELETE FROM bets WHERE id=$1 AND user_id=$2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete bet: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DistinctMonths lista os meses (YYYY-MM) presentes no ledger completo do dono,
// mais recente primeiro.
func (p *Postgres) DistinctMonths(ctx context.Context, ownerID string) ([]string, error) {
	return p.distinctLabels(ctx, ownerID, "YYYY-MM")
}

// DistinctYears idem, para anos (YYYY).
func (p *Postgres) DistinctYears(ctx context.Context, ownerID string) ([]string, error) {
	return p.distinctLabels(ctx, ownerID, "YYYY")
}

func (p *Postgres) distinctLabels(ctx context.Context, ownerID, format string) ([]string, error) {
	q := `
		SELECT DISTINCT to_char(placed_at, '` + format + `') AS label
		FROM bets
		WHERE user_id = $1
		ORDER BY label DESC`
	rows, err := p.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, fmt.Errorf("distinct labels: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBet(row scanner) (bets.Bet, error) {
	var (
		b           bets.Bet
		stake, pay  string
		cat, status string
	)
	err := row.Scan(&b.ID, &b.OwnerID, &stake, &pay, &cat, &status,
		&b.House, &b.Description, &b.PlacedAt, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return bets.Bet{}, err
	}
	if b.Stake, err = bets.ParseCents(stake); err != nil {
		return bets.Bet{}, fmt.Errorf("stake %q: %w", stake, err)
	}
	if b.Payout, err = bets.ParseCents(pay); err != nil {
		return bets.Bet{}, fmt.Errorf("payout %q: %w", pay, err)
	}
	b.Category = bets.Category(cat)
	b.Status = bets.Status(status)
	return b, nil
}
