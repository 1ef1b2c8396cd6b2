package assignment

import (
	"cmp"
	"slices"
)

type instance struct {
	unitTypeID string
	index      int
}

// Candidates returns the unit types that fit partySize, smallest MaxCapacity
// first. Types with equal MaxCapacity keep their catalog order.
func Candidates(partySize int, catalog []SeatingUnitType) []SeatingUnitType {
	candidates := make([]SeatingUnitType, 0, len(catalog))

	for _, unit := range catalog {
		if unit.Fits(partySize) {
			candidates = append(candidates, unit)
		}
	}

	slices.SortStableFunc(candidates, func(a, b SeatingUnitType) int {
		return cmp.Compare(a.MaxCapacity, b.MaxCapacity)
	})

	return candidates
}

// Assign picks the first free instance of the best-fitting unit type for req.
// A nil result with a nil error means nothing is available.
func Assign(req Request, catalog []SeatingUnitType, reservations []ReservationSlot) (*Result, error) {
	busy, err := busyInstances(req, reservations)
	if err != nil {
		return nil, err
	}

	for _, unit := range Candidates(req.PartySize, catalog) {
		for index := 1; index <= unit.Quantity; index++ {
			if _, taken := busy[instance{unitTypeID: unit.ID, index: index}]; taken {
				continue
			}

			return &Result{
				UnitTypeID: unit.ID,
				UnitIndex:  index,
				Label:      Label(unit.Name, index),
			}, nil
		}
	}

	return nil, nil
}

// InstanceFree reports whether one specific instance can host req.
func InstanceFree(req Request, unitTypeID string, index int, reservations []ReservationSlot) (bool, error) {
	busy, err := busyInstances(req, reservations)
	if err != nil {
		return false, err
	}

	_, taken := busy[instance{unitTypeID: unitTypeID, index: index}]

	return !taken, nil
}

// busyInstances collects every instance held by an occupying reservation on
// req's date whose window overlaps req's window.
func busyInstances(req Request, reservations []ReservationSlot) (map[instance]struct{}, error) {
	if req.PartySize < 1 {
		return nil, ErrInvalidPartySize
	}

	start, end, err := req.Window.Bounds()
	if err != nil {
		return nil, err
	}

	busy := map[instance]struct{}{}

	for _, slot := range reservations {
		if slot.Date != req.Date || !slot.Status.Occupying() {
			continue
		}

		slotStart, slotEnd, err := parseRange(slot.Start, slot.End)
		if err != nil {
			return nil, err
		}

		if overlaps(start, end, slotStart, slotEnd) {
			busy[instance{unitTypeID: slot.UnitTypeID, index: slot.UnitIndex}] = struct{}{}
		}
	}

	return busy, nil
}
