package bets

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

var (
	ErrBadDate  = errors.New("invalid date, expected YYYY-MM-DD")
	ErrBadMonth = errors.New("invalid month, expected YYYY-MM")
	ErrBadYear  = errors.New("invalid year, expected YYYY")
)

// Filter é o conjunto normalizado de restrições sobre o ledger de um dono.
// Campos vazios não restringem nada. StartDate/EndDate são dias de calendário
// (YYYY-MM-DD), inclusivos nas duas pontas.
type Filter struct {
	Category  Category
	House     string
	StartDate string
	EndDate   string
}

// ParseFilter monta um Filter a partir dos query params soltos da requisição.
// Regras de precedência: year e month sobrescrevem startDate/endDate; month
// ganha de year. String vazia conta como ausente, nunca como filtro por "".
func ParseFilter(q url.Values) (Filter, error) {
	var f Filter

	if v := strings.TrimSpace(q.Get("category")); v != "" {
		c := Category(v)
		if !c.Valid() {
			return Filter{}, fmt.Errorf("%w: %q", ErrInvalidCategory, v)
		}
		f.Category = c
	}
	f.House = strings.TrimSpace(q.Get("house"))

	if v := strings.TrimSpace(q.Get("startDate")); v != "" {
		if _, err := time.Parse(dayLayout, v); err != nil {
			return Filter{}, fmt.Errorf("startDate: %w", ErrBadDate)
		}
		f.StartDate = v
	}
	if v := strings.TrimSpace(q.Get("endDate")); v != "" {
		if _, err := time.Parse(dayLayout, v); err != nil {
			return Filter{}, fmt.Errorf("endDate: %w", ErrBadDate)
		}
		f.EndDate = v
	}

	// year recobre start/end; month recobre year.
	if v := strings.TrimSpace(q.Get("year")); v != "" {
		y, err := time.Parse("2006", v)
		if err != nil {
			return Filter{}, ErrBadYear
		}
		f.StartDate = fmt.Sprintf("%04d-01-01", y.Year())
		f.EndDate = fmt.Sprintf("%04d-12-31", y.Year())
	}
	if v := strings.TrimSpace(q.Get("month")); v != "" {
		m, err := time.Parse("2006-01", v)
		if err != nil {
			return Filter{}, ErrBadMonth
		}
		f.StartDate = m.Format(dayLayout)
		// dia zero do mês seguinte = último dia do mês
		last := time.Date(m.Year(), m.Month()+1, 0, 0, 0, 0, 0, time.UTC)
		f.EndDate = last.Format(dayLayout)
	}

	return f, nil
}

// WithRange devolve uma cópia do filtro com o intervalo de datas trocado.
// Usado pelos endpoints de estatísticas, que calculam o próprio período.
func (f Filter) WithRange(r DateRange) Filter {
	f.StartDate = r.Start
	f.EndDate = r.End
	return f
}
