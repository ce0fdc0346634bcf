package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/bet-tracker/internal/auth"
	"github.com/radieske/bet-tracker/internal/bets"
	"github.com/radieske/bet-tracker/internal/bets/dto"
	"github.com/radieske/bet-tracker/internal/bets/repo"
	"github.com/radieske/bet-tracker/internal/shared/metrics"
	"github.com/radieske/bet-tracker/pkg/contracts/events"
)

// Ledger é a interface de persistência consumida pelos handlers.
type Ledger interface {
	List(ctx context.Context, ownerID string, f bets.Filter) ([]bets.Bet, error)
	Insert(ctx context.Context, b bets.Bet) (bets.Bet, error)
	UpdateStatus(ctx context.Context, id, ownerID string, status bets.Status) (updated bets.Bet, previous bets.Status, err error)
	Delete(ctx context.Context, id, ownerID string) error
	DistinctMonths(ctx context.Context, ownerID string) ([]string, error)
	DistinctYears(ctx context.Context, ownerID string) ([]string, error)
}

// Publisher emite a atividade do ledger para auditoria. Best-effort.
type Publisher interface {
	PublishBetRecorded(ctx context.Context, e events.BetRecorded) error
	PublishBetStatusChanged(ctx context.Context, e events.BetStatusChanged) error
}

// Server expõe a API de apostas e estatísticas. Todas as rotas assumem o
// middleware de auth na frente: o dono vem sempre do contexto.
type Server struct {
	log    *zap.Logger
	ledger Ledger
	publ   Publisher
	now    func() time.Time
}

func NewServer(log *zap.Logger, l Ledger, p Publisher) *Server {
	return &Server{log: log, ledger: l, publ: p, now: time.Now}
}

// RegisterRoutes registra a API de apostas no router raiz (já protegido).
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/api/bets", s.listBets)
	r.Get("/api/bets/months", s.availableMonths)
	r.Get("/api/bets/years", s.availableYears)
	r.Get("/api/bets/stats", s.stats)
	r.Get("/api/bets/stats/previous", s.statsPrevious)
	r.Post("/api/bets", s.createBet)
	r.Patch("/api/bets/{id}/status", s.updateStatus)
	r.Delete("/api/bets/{id}", s.deleteBet)
}

// Router monta um router só com as rotas de apostas; usado nos testes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	s.RegisterRoutes(r)
	return r
}

func (s *Server) listBets(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.UserID(r.Context())
	f, err := bets.ParseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	items, err := s.ledger.List(r.Context(), ownerID, f)
	if err != nil {
		s.internal(w, r, "list bets", err)
		return
	}
	if items == nil {
		items = []bets.Bet{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) availableMonths(w http.ResponseWriter, r *http.Request) {
	s.distinct(w, r, s.ledger.DistinctMonths)
}

func (s *Server) availableYears(w http.ResponseWriter, r *http.Request) {
	s.distinct(w, r, s.ledger.DistinctYears)
}

func (s *Server) distinct(w http.ResponseWriter, r *http.Request, fn func(context.Context, string) ([]string, error)) {
	ownerID, _ := auth.UserID(r.Context())
	labels, err := fn(r.Context(), ownerID)
	if err != nil {
		s.internal(w, r, "distinct labels", err)
		return
	}
	writeJSON(w, http.StatusOK, labels)
}

// stats agrega a janela corrente do período pedido. month/year na query
// sobrescrevem a janela, igual à listagem.
func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	s.aggregateWindow(w, r, "current", bets.CurrentRange)
}

// statsPrevious agrega a janela anterior: ontem, mês passado ou ano passado.
func (s *Server) statsPrevious(w http.ResponseWriter, r *http.Request) {
	s.aggregateWindow(w, r, "previous", bets.PreviousRange)
}

func (s *Server) aggregateWindow(w http.ResponseWriter, r *http.Request, window string, rangeFn func(time.Time, bets.Period) bets.DateRange) {
	ownerID, _ := auth.UserID(r.Context())
	q := r.URL.Query()

	period, err := bets.ParsePeriod(q.Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period, expected daily|monthly|yearly")
		return
	}
	f, err := bets.ParseFilter(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	// sem month/year explícitos, a janela vem do bucketer
	if f.StartDate == "" && f.EndDate == "" {
		f = f.WithRange(rangeFn(s.now(), period))
	}

	items, err := s.ledger.List(r.Context(), ownerID, f)
	if err != nil {
		s.internal(w, r, "list bets for stats", err)
		return
	}
	metrics.StatsRequests.WithLabelValues(string(period), window).Inc()
	writeJSON(w, http.StatusOK, bets.Aggregate(items))
}

func (s *Server) createBet(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.UserID(r.Context())

	var req dto.CreateBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	stake, err := bets.ParseCents(req.Stake)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid stake")
		return
	}
	payout := bets.Cents(0)
	if req.Payout != "" {
		if payout, err = bets.ParseCents(req.Payout); err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid payout")
			return
		}
	}
	placedAt, err := parsePlacedAt(req.PlacedAt)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid placedAt")
		return
	}
	status := bets.StatusPending
	if req.Status != "" {
		status = bets.Status(req.Status)
	}

	b := bets.Bet{
		OwnerID:     ownerID,
		Stake:       stake,
		Payout:      payout,
		Category:    bets.Category(req.Category),
		Status:      status,
		House:       emptyToNil(req.House),
		Description: emptyToNil(req.Description),
		PlacedAt:    placedAt,
	}
	if err := b.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.ledger.Insert(r.Context(), b)
	if err != nil {
		s.internal(w, r, "insert bet", err)
		return
	}
	metrics.BetsRecorded.WithLabelValues(string(created.Category)).Inc()

	if s.publ != nil {
		if err := s.publ.PublishBetRecorded(r.Context(), events.BetRecorded{
			BetID:       created.ID,
			UserID:      created.OwnerID,
			Category:    string(created.Category),
			Status:      string(created.Status),
			StakeCents:  int64(created.Stake),
			PayoutCents: int64(created.Payout),
			PlacedAt:    created.PlacedAt.UTC().Format("2006-01-02 15:04:05"),
		}); err != nil {
			s.log.Warn("publish bet_recorded", zap.Error(err), zap.String("betId", created.ID))
		}
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateStatus(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.UserID(r.Context())
	id := chi.URLParam(r, "id")

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	status := bets.Status(req.Status)
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	updated, previous, err := s.ledger.UpdateStatus(r.Context(), id, ownerID, status)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		writeError(w, http.StatusNotFound, "bet not found")
		return
	case errors.Is(err, bets.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "status transition not allowed")
		return
	case err != nil:
		s.internal(w, r, "update bet status", err)
		return
	}
	metrics.StatusTransitions.WithLabelValues(string(status)).Inc()

	if s.publ != nil {
		if err := s.publ.PublishBetStatusChanged(r.Context(), events.BetStatusChanged{
			BetID:     updated.ID,
			UserID:    updated.OwnerID,
			OldStatus: string(previous),
			NewStatus: string(updated.Status),
		}); err != nil {
			s.log.Warn("publish bet_status_changed", zap.Error(err), zap.String("betId", updated.ID))
		}
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteBet(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.UserID(r.Context())
	id := chi.URLParam(r, "id")

	err := s.ledger.Delete(r.Context(), id, ownerID)
	if errors.Is(err, repo.ErrNotFound) {
		writeError(w, http.StatusNotFound, "bet not found")
		return
	}
	if err != nil {
		s.internal(w, r, "delete bet", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "bet deleted"})
}

// parsePlacedAt aceita RFC3339, datetime sem zona (input datetime-local) e
// dia puro.
func parsePlacedAt(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized placedAt format")
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func (s *Server) internal(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.log.Error(msg, zap.Error(err), zap.String("path", r.URL.Path))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
