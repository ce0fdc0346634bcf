package dto

// CreateBetRequest espelha o corpo aceito pela API original: valores
// monetários chegam como string decimal.
type CreateBetRequest struct {
	Stake       string  `json:"stake"`
	Payout      string  `json:"payout"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	House       *string `json:"house"`
	Description *string `json:"description"`
	PlacedAt    string  `json:"placedAt"` // RFC3339 ou YYYY-MM-DD
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}
