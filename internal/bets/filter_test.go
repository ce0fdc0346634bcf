package bets

import (
	"net/url"
	"testing"
)

func TestParseFilterEmptyValuesAreAbsent(t *testing.T) {
	q := url.Values{}
	q.Set("category", "")
	q.Set("house", "  ")
	q.Set("startDate", "")

	f, err := ParseFilter(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Category != "" || f.House != "" || f.StartDate != "" || f.EndDate != "" {
		t.Fatalf("empty params must impose no restriction, got %+v", f)
	}
}

func TestParseFilterDateRange(t *testing.T) {
	q := url.Values{}
	q.Set("startDate", "2024-07-01")
	q.Set("endDate", "2024-07-15")
	q.Set("category", "surebet")
	q.Set("house", "bet365")

	f, err := ParseFilter(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.StartDate != "2024-07-01" || f.EndDate != "2024-07-15" {
		t.Fatalf("got range [%s, %s]", f.StartDate, f.EndDate)
	}
	if f.Category != CategorySurebet || f.House != "bet365" {
		t.Fatalf("got %+v", f)
	}
}

func TestParseFilterMonthOverridesDates(t *testing.T) {
	q := url.Values{}
	q.Set("startDate", "2020-01-01")
	q.Set("endDate", "2020-01-02")
	q.Set("month", "2024-07")

	f, err := ParseFilter(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.StartDate != "2024-07-01" || f.EndDate != "2024-07-31" {
		t.Fatalf("month must override explicit dates, got [%s, %s]", f.StartDate, f.EndDate)
	}
}

func TestParseFilterMonthLastDay(t *testing.T) {
	tests := []struct {
		month string
		end   string
	}{
		{"2024-02", "2024-02-29"}, // bissexto
		{"2023-02", "2023-02-28"},
		{"2024-12", "2024-12-31"},
		{"2024-04", "2024-04-30"},
	}
	for _, tt := range tests {
		q := url.Values{"month": {tt.month}}
		f, err := ParseFilter(q)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.month, err)
		}
		if f.EndDate != tt.end {
			t.Errorf("%s: end date got %s, want %s", tt.month, f.EndDate, tt.end)
		}
	}
}

func TestParseFilterYear(t *testing.T) {
	q := url.Values{"year": {"2023"}}
	f, err := ParseFilter(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.StartDate != "2023-01-01" || f.EndDate != "2023-12-31" {
		t.Fatalf("got [%s, %s]", f.StartDate, f.EndDate)
	}
}

func TestParseFilterRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown category", "category", "jackpot"},
		{"malformed startDate", "startDate", "07/01/2024"},
		{"malformed month", "month", "2024-13"},
		{"malformed year", "year", "24"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := url.Values{tt.key: {tt.val}}
			if _, err := ParseFilter(q); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}
