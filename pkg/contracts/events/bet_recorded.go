package events

// Evento emitido pela API quando uma aposta entra no ledger.
type BetRecorded struct {
	BetID       string `json:"betId"`
	UserID      string `json:"userId"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	StakeCents  int64  `json:"stake_cents"`
	PayoutCents int64  `json:"payout_cents"`
	PlacedAt    string `json:"placedAt"` // YYYY-MM-DD HH:MM:SS UTC
	TsUnixMs    int64  `json:"ts_unix_ms"`
}
