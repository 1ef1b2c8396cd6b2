package assignment

import (
	"fmt"
	"time"
)

// AvailabilityWindow is how far either side of the requested time the coarse
// availability check looks for competing reservations.
const AvailabilityWindow = 2 * time.Hour

const dateLayout = "2006-01-02"

// HasHeadroom is a store-level pre-check: it counts occupying reservations per
// unit type whose window touches target±AvailabilityWindow, ignoring which
// instance they hold, and reports whether any fitting type still has spare
// quantity. It can disagree with Assign near capacity; Assign is authoritative.
func HasHeadroom(catalog []SeatingUnitType, reservations []ReservationSlot, target time.Time, partySize int) (bool, error) {
	if partySize < 1 {
		return false, ErrInvalidPartySize
	}

	from := target.Add(-AvailabilityWindow)
	to := target.Add(AvailabilityWindow)

	used := map[string]int{}

	for _, slot := range reservations {
		if !slot.Status.Occupying() {
			continue
		}

		start, end, err := slot.span(target.Location())
		if err != nil {
			return false, err
		}

		if start.Before(to) && end.After(from) {
			used[slot.UnitTypeID]++
		}
	}

	for _, unit := range catalog {
		if unit.Fits(partySize) && unit.Quantity-used[unit.ID] > 0 {
			return true, nil
		}
	}

	return false, nil
}

func (r ReservationSlot) span(loc *time.Location) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, r.Date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid reservation date %q: %w", r.Date, err)
	}

	start, end, err := parseRange(r.Start, r.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return day.Add(time.Duration(start) * time.Minute), day.Add(time.Duration(end) * time.Minute), nil
}
