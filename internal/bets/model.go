package bets

import (
	"errors"
	"time"
)

// Status do ciclo de vida de uma aposta.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusLost      Status = "lost"
)

// Category é o tipo da aposta/transação. Conjunto fechado.
type Category string

const (
	CategorySurebet  Category = "surebet"
	CategoryGiros    Category = "giros"
	CategorySuperodd Category = "superodd"
	CategoryDNC      Category = "dnc"
	CategoryGastos   Category = "gastos"
	CategoryBingos   Category = "bingos"
	CategoryExtracao Category = "extracao"
	CategoryVicio    Category = "vicio"
)

// Categories lista todas as categorias válidas, na ordem do enum original.
var Categories = []Category{
	CategorySurebet,
	CategoryGiros,
	CategorySuperodd,
	CategoryDNC,
	CategoryGastos,
	CategoryBingos,
	CategoryExtracao,
	CategoryVicio,
}

// Statuses lista todos os status válidos.
var Statuses = []Status{StatusPending, StatusCompleted, StatusLost}

var (
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidStake      = errors.New("invalid stake")
	ErrInvalidPayout     = errors.New("invalid payout")
	ErrMissingPlacedAt   = errors.New("placedAt is required")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusLost:
		return true
	}
	return false
}

func (c Category) Valid() bool {
	switch c {
	case CategorySurebet, CategoryGiros, CategorySuperodd, CategoryDNC,
		CategoryGastos, CategoryBingos, CategoryExtracao, CategoryVicio:
		return true
	}
	return false
}

// CanTransition diz se a mudança old -> next é permitida no modo estrito:
// apenas pending pode ir para completed ou lost.
func CanTransition(old, next Status) bool {
	if old == next {
		return true // no-op, idempotente
	}
	return old == StatusPending && (next == StatusCompleted || next == StatusLost)
}

// Bet é o registro persistido no Postgres.
type Bet struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"userId"`
	Stake       Cents     `json:"stake"`
	Payout      Cents     `json:"payout"`
	Category    Category  `json:"category"`
	Status      Status    `json:"status"`
	House       *string   `json:"house"`
	Description *string   `json:"description"`
	PlacedAt    time.Time `json:"placedAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate checa os campos obrigatórios de uma aposta nova.
func (b *Bet) Validate() error {
	if b.Stake < 0 {
		return ErrInvalidStake
	}
	if b.Payout < 0 {
		return ErrInvalidPayout
	}
	if !b.Category.Valid() {
		return ErrInvalidCategory
	}
	if !b.Status.Valid() {
		return ErrInvalidStatus
	}
	if b.PlacedAt.IsZero() {
		return ErrMissingPlacedAt
	}
	return nil
}
