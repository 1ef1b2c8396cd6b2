package dto

import (
	"time"
)

type CodeResponse struct {
	ReservationID string    `json:"reservation_id"`
	Code          string    `json:"code"`
	ExpiresAt     time.Time `json:"expires_at"`
}

type RedeemRequest struct {
	Code string `json:"code" validate:"required"`
}
