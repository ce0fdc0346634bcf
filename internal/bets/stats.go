package bets

// Stats é o resumo financeiro de um conjunto já filtrado de apostas.
type Stats struct {
	TotalStake      Cents            `json:"totalStake"`
	TotalPayout     Cents            `json:"totalPayout"`
	NetProfit       Cents            `json:"netProfit"`
	CountByStatus   map[Status]int   `json:"countByStatus"`
	CountByCategory map[Category]int `json:"countByCategory"`
	WinRate         float64          `json:"winRate"`
}

// Aggregate computa os agregados sobre o conjunto recebido. É pura: entrada
// vazia devolve tudo zerado, nunca erro. Somas em centavos inteiros, então
// NetProfit == TotalPayout - TotalStake é exato sempre.
func Aggregate(items []Bet) Stats {
	st := Stats{
		CountByStatus:   make(map[Status]int, len(Statuses)),
		CountByCategory: make(map[Category]int),
	}
	// status sempre presentes no mapa, mesmo com contagem zero
	for _, s := range Statuses {
		st.CountByStatus[s] = 0
	}

	for i := range items {
		b := &items[i]
		st.TotalStake += b.Stake
		st.TotalPayout += b.Payout
		st.CountByStatus[b.Status]++
		st.CountByCategory[b.Category]++
	}
	st.NetProfit = st.TotalPayout - st.TotalStake

	// win rate só considera apostas resolvidas; denominador zero vira 0
	resolved := st.CountByStatus[StatusCompleted] + st.CountByStatus[StatusLost]
	if resolved > 0 {
		st.WinRate = float64(st.CountByStatus[StatusCompleted]) / float64(resolved)
	}
	return st
}
