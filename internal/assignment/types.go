package assignment

import "strconv"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
	StatusBlocked   Status = "blocked"
)

// Occupying reports whether a reservation in this status holds its instance.
func (s Status) Occupying() bool {
	return s != StatusCancelled && s != StatusNoShow
}

type SeatingUnitType struct {
	ID          string
	Name        string
	MinCapacity int
	MaxCapacity int
	Quantity    int
	IsPrivate   bool
}

// Fits reports whether a party of the given size may be seated at this type.
func (u SeatingUnitType) Fits(partySize int) bool {
	return u.MinCapacity <= partySize && partySize <= u.MaxCapacity
}

// ReservationSlot is the part of a stored reservation the engine looks at.
type ReservationSlot struct {
	ID         string
	Date       string
	UnitTypeID string
	UnitIndex  int
	Start      string
	End        string
	Status     Status
}

type Window struct {
	Start string
	End   string
}

type Request struct {
	PartySize int
	Date      string
	Window    Window
}

type Result struct {
	UnitTypeID string
	UnitIndex  int
	Label      string
}

func Label(name string, index int) string {
	return name + "-" + strconv.Itoa(index)
}
