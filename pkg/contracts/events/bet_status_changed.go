package events

import "time"

// Evento emitido pela API quando o status de uma aposta muda.
type BetStatusChanged struct {
	BetID     string    `json:"betId"`
	UserID    string    `json:"userId"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
	Ts        time.Time `json:"ts"`
}
