package bets

import "testing"

func bet(stake, payout Cents, cat Category, st Status) Bet {
	return Bet{Stake: stake, Payout: payout, Category: cat, Status: st}
}

func TestAggregateEmpty(t *testing.T) {
	st := Aggregate(nil)

	if st.TotalStake != 0 || st.TotalPayout != 0 || st.NetProfit != 0 {
		t.Fatalf("expected zeroed totals, got %+v", st)
	}
	if st.WinRate != 0 {
		t.Fatalf("expected win rate 0, got %f", st.WinRate)
	}
	// mapa de status sempre completo, mesmo sem registros
	for _, s := range Statuses {
		if _, ok := st.CountByStatus[s]; !ok {
			t.Fatalf("missing status key %q", s)
		}
	}
}

func TestAggregateTotals(t *testing.T) {
	items := []Bet{
		bet(1050, 2000, CategorySurebet, StatusCompleted), // +9.50
		bet(500, 0, CategoryGastos, StatusLost),
		bet(250, 0, CategoryGiros, StatusPending),
		bet(100, 325, CategorySurebet, StatusCompleted),
	}
	st := Aggregate(items)

	if st.TotalStake != 1900 {
		t.Errorf("total stake: got %d, want 1900", st.TotalStake)
	}
	if st.TotalPayout != 2325 {
		t.Errorf("total payout: got %d, want 2325", st.TotalPayout)
	}
	if st.NetProfit != st.TotalPayout-st.TotalStake {
		t.Errorf("net profit must equal payout-stake exactly: %d != %d-%d",
			st.NetProfit, st.TotalPayout, st.TotalStake)
	}
	if st.NetProfit != 425 {
		t.Errorf("net profit: got %d, want 425", st.NetProfit)
	}
	if got := st.CountByCategory[CategorySurebet]; got != 2 {
		t.Errorf("surebet count: got %d, want 2", got)
	}
	if got := st.CountByStatus[StatusPending]; got != 1 {
		t.Errorf("pending count: got %d, want 1", got)
	}
}

func TestAggregateWinRate(t *testing.T) {
	tests := []struct {
		name  string
		items []Bet
		want  float64
	}{
		{"no resolved bets", []Bet{bet(100, 0, CategoryGiros, StatusPending)}, 0},
		{"all completed", []Bet{
			bet(100, 200, CategorySurebet, StatusCompleted),
			bet(100, 150, CategorySurebet, StatusCompleted),
		}, 1},
		{"pending excluded from denominator", []Bet{
			bet(100, 200, CategorySurebet, StatusCompleted),
			bet(100, 0, CategorySurebet, StatusLost),
			bet(100, 0, CategorySurebet, StatusPending),
			bet(100, 0, CategorySurebet, StatusPending),
		}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Aggregate(tt.items)
			if st.WinRate != tt.want {
				t.Fatalf("win rate: got %f, want %f", st.WinRate, tt.want)
			}
			if st.WinRate < 0 || st.WinRate > 1 {
				t.Fatalf("win rate out of [0,1]: %f", st.WinRate)
			}
		})
	}
}
