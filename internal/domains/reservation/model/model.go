package model

import (
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/assignment"
	seatingModel "github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/seating/model"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID              = "id"
	FieldStoreID         = "store_id"
	FieldSeatingUnitID   = "seating_unit_id"
	FieldUnitIndex       = "unit_index"
	FieldGuestName       = "guest_name"
	FieldGuestPhone      = "guest_phone"
	FieldPartySize       = "party_size"
	FieldReservationDate = "reservation_date"
	FieldStartTime       = "start_time"
	FieldEndTime         = "end_time"
	FieldStatus          = "status"
	FieldNote            = "note"
	FieldCreatedAt       = "created_at"
)

// Reservation holds one seating instance, addressed by unit type and 1-based index,
// for a window on a single date.
type Reservation struct {
	ID              string      `db:"id"`
	StoreID         string      `db:"store_id"`
	SeatingUnitID   string      `db:"seating_unit_id"`
	UnitIndex       int         `db:"unit_index"`
	SeatingUnitName string      `column:"name"            db:"seating_unit_name" table:"seating_units"`
	GuestName       string      `db:"guest_name"`
	GuestPhone      string      `db:"guest_phone"`
	PartySize       int         `db:"party_size"`
	ReservationDate model.Date  `db:"reservation_date"`
	StartTime       model.Clock `db:"start_time"`
	EndTime         model.Clock `db:"end_time"`
	Status          string      `db:"status"`
	Note            string      `db:"note"`
	model.Metadata
}

func (Reservation) GetJoinQuery() string {
	return "JOIN " + seatingModel.TableName + " ON " + seatingModel.TableName + "." + seatingModel.FieldID +
		" = " + TableName + "." + FieldSeatingUnitID
}

func (r Reservation) Label() string {
	return assignment.Label(r.SeatingUnitName, r.UnitIndex)
}

func (r Reservation) Window() assignment.Window {
	return assignment.Window{Start: r.StartTime.String(), End: r.EndTime.String()}
}

func (r Reservation) ToSlot() assignment.ReservationSlot {
	return assignment.ReservationSlot{
		ID:         r.ID,
		Date:       r.ReservationDate.String(),
		UnitTypeID: r.SeatingUnitID,
		UnitIndex:  r.UnitIndex,
		Start:      r.StartTime.String(),
		End:        r.EndTime.String(),
		Status:     assignment.Status(r.Status),
	}
}

// Slots converts reservations for the engine, leaving out the one being moved.
func Slots(reservations []Reservation, exceptID string) []assignment.ReservationSlot {
	slots := make([]assignment.ReservationSlot, 0, len(reservations))

	for _, reservation := range reservations {
		if reservation.ID == exceptID {
			continue
		}

		slots = append(slots, reservation.ToSlot())
	}

	return slots
}
