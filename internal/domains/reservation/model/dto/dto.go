package dto

import (
	"time"

	"github.com/ymjo140/rendezvous-merchant-sub000/internal/assignment"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/reservation/model"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared"
	gDto "github.com/ymjo140/rendezvous-merchant-sub000/shared/dto"
	gModel "github.com/ymjo140/rendezvous-merchant-sub000/shared/model"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/timezone"

	"github.com/google/uuid"
)

// CreateReservationRequest asks for a table. Naming a seating unit and index
// pins the instance; otherwise one is assigned.
type CreateReservationRequest struct {
	GuestName     string `json:"guest_name"      validate:"required_unless=Status blocked,max=100"`
	GuestPhone    string `json:"guest_phone"     validate:"omitempty,max=20"`
	PartySize     int    `json:"party_size"      validate:"required,min=1,max=100"`
	Date          string `json:"date"            validate:"required,date"`
	StartTime     string `json:"start_time"      validate:"required,clock"`
	EndTime       string `json:"end_time"        validate:"required,clock"`
	Note          string `json:"note"            validate:"omitempty,max=500"`
	Status        string `json:"status"          validate:"omitempty,oneof=pending confirmed blocked"`
	SeatingUnitID string `json:"seating_unit_id" validate:"omitempty,uuid"`
	UnitIndex     int    `json:"unit_index"      validate:"required_with=SeatingUnitID,omitempty,min=1"`
}

func (c *CreateReservationRequest) Request() assignment.Request {
	return assignment.Request{
		PartySize: c.PartySize,
		Date:      c.Date,
		Window:    assignment.Window{Start: c.StartTime, End: c.EndTime},
	}
}

// Pinned reports whether the caller chose the instance.
func (c *CreateReservationRequest) Pinned() bool {
	return c.SeatingUnitID != ""
}

func (c *CreateReservationRequest) ToModel(storeID, user string, placement assignment.Result) model.Reservation {
	status := string(assignment.StatusPending)
	if c.Status != "" {
		status = c.Status
	}

	now := timezone.Now()

	return model.Reservation{
		ID:              uuid.NewString(),
		StoreID:         storeID,
		SeatingUnitID:   placement.UnitTypeID,
		UnitIndex:       placement.UnitIndex,
		GuestName:       c.GuestName,
		GuestPhone:      c.GuestPhone,
		PartySize:       c.PartySize,
		ReservationDate: gModel.Date(c.Date),
		StartTime:       gModel.Clock(c.StartTime),
		EndTime:         gModel.Clock(c.EndTime),
		Status:          status,
		Note:            c.Note,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateReservationRequest changes guest details directly. Any of the placement
// fields (party size, date, window, unit) sends the reservation back through
// placement, keeping its current instance when that is still free.
type UpdateReservationRequest struct {
	GuestName     string `db:"guest_name"      json:"guest_name"      validate:"omitempty,max=100"`
	GuestPhone    string `db:"guest_phone"     json:"guest_phone"     validate:"omitempty,max=20"`
	Note          string `db:"note"            json:"note"            validate:"omitempty,max=500"`
	PartySize     *int   `json:"party_size"      validate:"omitempty,min=1,max=100"`
	Date          string `json:"date"            validate:"omitempty,date"`
	StartTime     string `json:"start_time"      validate:"omitempty,clock"`
	EndTime       string `json:"end_time"        validate:"omitempty,clock"`
	SeatingUnitID string `json:"seating_unit_id" validate:"omitempty,uuid"`
	UnitIndex     *int   `json:"unit_index"      validate:"required_with=SeatingUnitID,omitempty,min=1"`
}

func (u *UpdateReservationRequest) IsEmpty() bool {
	return u.GuestName == "" && u.GuestPhone == "" && u.Note == "" && !u.MovesPlacement()
}

func (u *UpdateReservationRequest) MovesPlacement() bool {
	return u.PartySize != nil || u.Date != "" || u.StartTime != "" || u.EndTime != "" || u.SeatingUnitID != ""
}

// Merged applies the placement fields over current.
func (u *UpdateReservationRequest) Merged(current model.Reservation) assignment.Request {
	req := assignment.Request{
		PartySize: current.PartySize,
		Date:      current.ReservationDate.String(),
		Window:    current.Window(),
	}

	if u.PartySize != nil {
		req.PartySize = *u.PartySize
	}

	if u.Date != "" {
		req.Date = u.Date
	}

	if u.StartTime != "" {
		req.Window.Start = u.StartTime
	}

	if u.EndTime != "" {
		req.Window.End = u.EndTime
	}

	return req
}

// PlacementFields is the column set written when a reservation is re-placed.
func PlacementFields(req assignment.Request, placement assignment.Result) map[string]any {
	return map[string]any{
		model.FieldPartySize:       req.PartySize,
		model.FieldReservationDate: gModel.Date(req.Date),
		model.FieldStartTime:       gModel.Clock(req.Window.Start),
		model.FieldEndTime:         gModel.Clock(req.Window.End),
		model.FieldSeatingUnitID:   placement.UnitTypeID,
		model.FieldUnitIndex:       placement.UnitIndex,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled no_show blocked"`
}

type ReservationResponse struct {
	ID            string `json:"id"`
	SeatingUnitID string `json:"seating_unit_id"`
	UnitIndex     int    `json:"unit_index"`
	Label         string `json:"label"`
	GuestName     string `json:"guest_name"`
	GuestPhone    string `json:"guest_phone,omitempty"`
	PartySize     int    `json:"party_size"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Status        string `json:"status"`
	Note          string `json:"note,omitempty"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.SeatingUnitID = model.SeatingUnitID
	r.UnitIndex = model.UnitIndex
	r.Label = model.Label()
	r.GuestName = model.GuestName
	r.GuestPhone = model.GuestPhone
	r.PartySize = model.PartySize
	r.Date = model.ReservationDate.String()
	r.StartTime = model.StartTime.String()
	r.EndTime = model.EndTime.String()
	r.Status = model.Status
	r.Note = model.Note
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

type AvailabilityRequest struct {
	StoreID   string    `validate:"required,uuid"`
	At        time.Time `validate:"required"`
	PartySize int       `validate:"required,min=1,max=100"`
}

type AvailabilityResponse struct {
	StoreID   string    `json:"store_id"`
	At        time.Time `json:"at"`
	PartySize int       `json:"party_size"`
	Available bool      `json:"available"`
}
