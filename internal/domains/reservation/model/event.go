package model

import "time"

const (
	EventCreated   = "reservation.created"
	EventUpdated   = "reservation.updated"
	EventDeleted   = "reservation.deleted"
	EventCheckedIn = "reservation.checked_in"
)

// Event is published on the reservation topic, keyed by store id so one
// store's changes stay ordered.
type Event struct {
	Type          string    `json:"type"`
	ReservationID string    `json:"reservation_id"`
	StoreID       string    `json:"store_id"`
	Date          string    `json:"date"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
	Actor         string    `json:"actor"`
}

func NewEvent(eventType string, reservation Reservation, actor string, at time.Time) Event {
	return Event{
		Type:          eventType,
		ReservationID: reservation.ID,
		StoreID:       reservation.StoreID,
		Date:          reservation.ReservationDate.String(),
		Status:        reservation.Status,
		OccurredAt:    at,
		Actor:         actor,
	}
}
