package topics

const (
	// Atividade do ledger de apostas
	BetRecorded      = "bet_recorded"
	BetStatusChanged = "bet_status_changed"
)
