package bets

import (
	"errors"
	"time"
)

// Period é a granularidade de agregação pedida pelos endpoints de stats.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

var ErrInvalidPeriod = errors.New("invalid period")

// DateRange é um intervalo fechado de dias de calendário [Start, End],
// ambos no formato YYYY-MM-DD.
type DateRange struct {
	Start string
	End   string
}

// ParsePeriod valida o seletor vindo da query; vazio assume daily,
// igual à API original.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDaily, PeriodMonthly, PeriodYearly:
		return Period(s), nil
	case "":
		return PeriodDaily, nil
	}
	return "", ErrInvalidPeriod
}

// CurrentRange calcula a janela corrente para o instante de referência:
// o dia de hoje, o mês corrente (1 até o último dia) ou o ano corrente.
func CurrentRange(now time.Time, p Period) DateRange {
	y, m, _ := now.Date()
	switch p {
	case PeriodMonthly:
		first := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
		last := time.Date(y, m+1, 0, 0, 0, 0, 0, now.Location())
		return DateRange{Start: first.Format(dayLayout), End: last.Format(dayLayout)}
	case PeriodYearly:
		return DateRange{
			Start: time.Date(y, time.January, 1, 0, 0, 0, 0, now.Location()).Format(dayLayout),
			End:   time.Date(y, time.December, 31, 0, 0, 0, 0, now.Location()).Format(dayLayout),
		}
	default: // daily
		d := now.Format(dayLayout)
		return DateRange{Start: d, End: d}
	}
}

// PreviousRange calcula a janela anterior: ontem, o mês de calendário anterior
// (com rollover de ano e último dia exato, bissexto incluso) ou o ano anterior.
func PreviousRange(now time.Time, p Period) DateRange {
	y, m, _ := now.Date()
	switch p {
	case PeriodMonthly:
		first := time.Date(y, m-1, 1, 0, 0, 0, 0, now.Location())
		// dia zero do mês corrente = último dia do mês anterior
		last := time.Date(y, m, 0, 0, 0, 0, 0, now.Location())
		return DateRange{Start: first.Format(dayLayout), End: last.Format(dayLayout)}
	case PeriodYearly:
		return DateRange{
			Start: time.Date(y-1, time.January, 1, 0, 0, 0, 0, now.Location()).Format(dayLayout),
			End:   time.Date(y-1, time.December, 31, 0, 0, 0, 0, now.Location()).Format(dayLayout),
		}
	default: // daily
		d := now.AddDate(0, 0, -1).Format(dayLayout)
		return DateRange{Start: d, End: d}
	}
}
