package assignment_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymjo140/rendezvous-merchant-sub000/internal/assignment"
)

const testDate = "2026-02-01"

func hallCatalog() []assignment.SeatingUnitType {
	return []assignment.SeatingUnitType{
		{ID: "hall", Name: "Hall", MinCapacity: 2, MaxCapacity: 4, Quantity: 1},
	}
}

func hallReservation(status assignment.Status) assignment.ReservationSlot {
	return assignment.ReservationSlot{
		ID:         "r-1",
		Date:       testDate,
		UnitTypeID: "hall",
		UnitIndex:  1,
		Start:      "18:00",
		End:        "20:00",
		Status:     status,
	}
}

func request(partySize int, start, end string) assignment.Request {
	return assignment.Request{
		PartySize: partySize,
		Date:      testDate,
		Window:    assignment.Window{Start: start, End: end},
	}
}

func TestAssign_OnlyInstanceOccupied(t *testing.T) {
	existing := []assignment.ReservationSlot{hallReservation(assignment.StatusConfirmed)}

	res, err := assignment.Assign(request(3, "18:30", "19:30"), hallCatalog(), existing)

	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestAssign_AdjacentWindowIsFree(t *testing.T) {
	existing := []assignment.ReservationSlot{hallReservation(assignment.StatusConfirmed)}

	res, err := assignment.Assign(request(3, "20:00", "21:00"), hallCatalog(), existing)

	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "hall", res.UnitTypeID)
	assert.Equal(t, 1, res.UnitIndex)
	assert.Equal(t, "Hall-1", res.Label)
}

func TestAssign_StatusBlocking(t *testing.T) {
	tests := []struct {
		status  assignment.Status
		blocked bool
	}{
		{status: assignment.StatusConfirmed, blocked: true},
		{status: assignment.StatusPending, blocked: true},
		{status: assignment.StatusCompleted, blocked: true},
		{status: assignment.StatusBlocked, blocked: true},
		{status: assignment.StatusCancelled, blocked: false},
		{status: assignment.StatusNoShow, blocked: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			existing := []assignment.ReservationSlot{hallReservation(tt.status)}

			res, err := assignment.Assign(request(3, "18:30", "19:30"), hallCatalog(), existing)
			require.NoError(t, err)

			if tt.blocked {
				assert.Nil(t, res)
			} else {
				assert.NotNil(t, res)
			}
		})
	}
}

func TestAssign_OtherDateDoesNotBlock(t *testing.T) {
	other := hallReservation(assignment.StatusConfirmed)
	other.Date = "2026-02-02"

	res, err := assignment.Assign(request(3, "18:30", "19:30"), hallCatalog(), []assignment.ReservationSlot{other})

	require.NoError(t, err)
	assert.NotNil(t, res)
}

func TestAssign_PrefersSmallestFittingType(t *testing.T) {
	catalog := []assignment.SeatingUnitType{
		{ID: "large", Name: "Large", MinCapacity: 2, MaxCapacity: 6, Quantity: 2},
		{ID: "small", Name: "Small", MinCapacity: 2, MaxCapacity: 4, Quantity: 2},
	}

	res, err := assignment.Assign(request(4, "18:00", "19:00"), catalog, nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "small", res.UnitTypeID)

	existing := []assignment.ReservationSlot{
		{Date: testDate, UnitTypeID: "small", UnitIndex: 1, Start: "17:00", End: "19:00", Status: assignment.StatusConfirmed},
		{Date: testDate, UnitTypeID: "small", UnitIndex: 2, Start: "18:30", End: "20:00", Status: assignment.StatusPending},
	}

	res, err = assignment.Assign(request(4, "18:00", "19:00"), catalog, existing)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "large", res.UnitTypeID)
	assert.Equal(t, 1, res.UnitIndex)
}

func TestAssign_FirstFitWithinType(t *testing.T) {
	catalog := []assignment.SeatingUnitType{
		{ID: "bar", Name: "Bar", MinCapacity: 1, MaxCapacity: 2, Quantity: 3},
	}
	existing := []assignment.ReservationSlot{
		{Date: testDate, UnitTypeID: "bar", UnitIndex: 1, Start: "18:00", End: "19:00", Status: assignment.StatusConfirmed},
	}

	res, err := assignment.Assign(request(2, "18:00", "19:00"), catalog, existing)

	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 2, res.UnitIndex)
	assert.Equal(t, "Bar-2", res.Label)
}

func TestAssign_TieKeepsCatalogOrder(t *testing.T) {
	catalog := []assignment.SeatingUnitType{
		{ID: "window", Name: "Window", MinCapacity: 2, MaxCapacity: 4, Quantity: 1},
		{ID: "terrace", Name: "Terrace", MinCapacity: 1, MaxCapacity: 4, Quantity: 1},
	}

	res, err := assignment.Assign(request(2, "12:00", "13:00"), catalog, nil)

	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "window", res.UnitTypeID)
}

func TestAssign_PartyOutsideEveryRange(t *testing.T) {
	for _, size := range []int{1, 5} {
		res, err := assignment.Assign(request(size, "12:00", "13:00"), hallCatalog(), nil)

		require.NoError(t, err)
		assert.Nil(t, res)
	}
}

func TestAssign_ZeroQuantity(t *testing.T) {
	catalog := []assignment.SeatingUnitType{
		{ID: "room", Name: "Room", MinCapacity: 1, MaxCapacity: 10, Quantity: 0},
	}

	res, err := assignment.Assign(request(4, "12:00", "13:00"), catalog, nil)

	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestAssign_InvalidInput(t *testing.T) {
	_, err := assignment.Assign(request(0, "12:00", "13:00"), hallCatalog(), nil)
	assert.ErrorIs(t, err, assignment.ErrInvalidPartySize)

	_, err = assignment.Assign(request(2, "13:00", "12:00"), hallCatalog(), nil)
	assert.ErrorIs(t, err, assignment.ErrInvalidWindow)

	_, err = assignment.Assign(request(2, "noon", "13:00"), hallCatalog(), nil)
	assert.ErrorIs(t, err, assignment.ErrInvalidClock)

	broken := hallReservation(assignment.StatusConfirmed)
	broken.End = "8pm"

	_, err = assignment.Assign(request(2, "12:00", "13:00"), hallCatalog(), []assignment.ReservationSlot{broken})
	assert.ErrorIs(t, err, assignment.ErrInvalidClock)
}

func TestAssign_DoesNotMutateInputs(t *testing.T) {
	catalog := []assignment.SeatingUnitType{
		{ID: "b", Name: "B", MinCapacity: 1, MaxCapacity: 8, Quantity: 1},
		{ID: "a", Name: "A", MinCapacity: 1, MaxCapacity: 4, Quantity: 1},
	}
	snapshot := append([]assignment.SeatingUnitType(nil), catalog...)

	_, err := assignment.Assign(request(2, "12:00", "13:00"), catalog, nil)

	require.NoError(t, err)
	assert.Equal(t, snapshot, catalog)
}

func TestInstanceFree(t *testing.T) {
	existing := []assignment.ReservationSlot{hallReservation(assignment.StatusConfirmed)}

	free, err := assignment.InstanceFree(request(2, "19:00", "21:00"), "hall", 1, existing)
	require.NoError(t, err)
	assert.False(t, free)

	free, err = assignment.InstanceFree(request(2, "20:00", "21:00"), "hall", 1, existing)
	require.NoError(t, err)
	assert.True(t, free)

	free, err = assignment.InstanceFree(request(2, "19:00", "21:00"), "hall", 2, existing)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestCandidates(t *testing.T) {
	for range 200 {
		catalog := randomCatalog()
		partySize := gofakeit.Number(1, 12)

		candidates := assignment.Candidates(partySize, catalog)

		for i, unit := range candidates {
			assert.True(t, unit.Fits(partySize), "%+v does not fit %d", unit, partySize)

			if i > 0 {
				assert.LessOrEqual(t, candidates[i-1].MaxCapacity, unit.MaxCapacity)
			}
		}

		fitting := 0
		for _, unit := range catalog {
			if unit.Fits(partySize) {
				fitting++
			}
		}

		assert.Len(t, candidates, fitting)
	}
}

func TestAssign_Properties(t *testing.T) {
	for range 200 {
		catalog := randomCatalog()
		reservations := randomReservations(catalog)
		start, end := randomWindow()
		req := request(gofakeit.Number(1, 12), start, end)

		first, err := assignment.Assign(req, catalog, reservations)
		require.NoError(t, err)

		second, err := assignment.Assign(req, catalog, reservations)
		require.NoError(t, err)
		assert.Equal(t, first, second)

		if first == nil {
			continue
		}

		free, err := assignment.InstanceFree(req, first.UnitTypeID, first.UnitIndex, reservations)
		require.NoError(t, err)
		assert.True(t, free)

		chosen := unitByID(catalog, first.UnitTypeID)
		assert.True(t, chosen.Fits(req.PartySize))

		// no fitting type with a strictly smaller MaxCapacity may have a free instance
		for _, unit := range catalog {
			if !unit.Fits(req.PartySize) || unit.MaxCapacity >= chosen.MaxCapacity {
				continue
			}

			for index := 1; index <= unit.Quantity; index++ {
				free, err := assignment.InstanceFree(req, unit.ID, index, reservations)
				require.NoError(t, err)
				assert.False(t, free, "%s-%d was free but %s was chosen", unit.ID, index, chosen.ID)
			}
		}
	}
}

func randomCatalog() []assignment.SeatingUnitType {
	size := gofakeit.Number(0, 6)
	catalog := make([]assignment.SeatingUnitType, size)

	for i := range catalog {
		minCapacity := gofakeit.Number(1, 6)
		catalog[i] = assignment.SeatingUnitType{
			ID:          gofakeit.LetterN(8),
			Name:        gofakeit.LetterN(5),
			MinCapacity: minCapacity,
			MaxCapacity: gofakeit.Number(minCapacity, 12),
			Quantity:    gofakeit.Number(0, 3),
		}
	}

	return catalog
}

func randomReservations(catalog []assignment.SeatingUnitType) []assignment.ReservationSlot {
	statuses := []assignment.Status{
		assignment.StatusPending,
		assignment.StatusConfirmed,
		assignment.StatusCompleted,
		assignment.StatusCancelled,
		assignment.StatusNoShow,
		assignment.StatusBlocked,
	}

	var reservations []assignment.ReservationSlot

	for _, unit := range catalog {
		for index := 1; index <= unit.Quantity; index++ {
			for range gofakeit.Number(0, 3) {
				start, end := randomWindow()
				reservations = append(reservations, assignment.ReservationSlot{
					Date:       testDate,
					UnitTypeID: unit.ID,
					UnitIndex:  index,
					Start:      start,
					End:        end,
					Status:     statuses[gofakeit.Number(0, len(statuses)-1)],
				})
			}
		}
	}

	return reservations
}

func unitByID(catalog []assignment.SeatingUnitType, id string) assignment.SeatingUnitType {
	for _, unit := range catalog {
		if unit.ID == id {
			return unit
		}
	}

	return assignment.SeatingUnitType{}
}
