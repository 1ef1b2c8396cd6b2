package assignment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymjo140/rendezvous-merchant-sub000/internal/assignment"
)

func TestHasHeadroom(t *testing.T) {
	catalog := []assignment.SeatingUnitType{
		{ID: "hall", Name: "Hall", MinCapacity: 2, MaxCapacity: 4, Quantity: 2},
		{ID: "vip", Name: "VIP", MinCapacity: 6, MaxCapacity: 10, Quantity: 1, IsPrivate: true},
	}
	target := time.Date(2026, 2, 1, 19, 0, 0, 0, time.UTC)

	slot := func(unit string, index int, start, end string, status assignment.Status) assignment.ReservationSlot {
		return assignment.ReservationSlot{Date: testDate, UnitTypeID: unit, UnitIndex: index, Start: start, End: end, Status: status}
	}

	tests := []struct {
		name         string
		partySize    int
		reservations []assignment.ReservationSlot
		want         bool
	}{
		{
			name:      "empty store",
			partySize: 3,
			want:      true,
		},
		{
			name:      "one of two hall tables used",
			partySize: 3,
			reservations: []assignment.ReservationSlot{
				slot("hall", 1, "18:00", "20:00", assignment.StatusConfirmed),
			},
			want: true,
		},
		{
			name:      "both hall tables used somewhere in the window",
			partySize: 3,
			reservations: []assignment.ReservationSlot{
				slot("hall", 1, "17:30", "18:00", assignment.StatusConfirmed),
				slot("hall", 2, "20:30", "21:30", assignment.StatusPending),
			},
			want: false,
		},
		{
			name:      "counted regardless of instance",
			partySize: 3,
			reservations: []assignment.ReservationSlot{
				slot("hall", 1, "17:00", "18:00", assignment.StatusConfirmed),
				slot("hall", 1, "20:00", "21:00", assignment.StatusConfirmed),
			},
			want: false,
		},
		{
			name:      "outside the window is ignored",
			partySize: 3,
			reservations: []assignment.ReservationSlot{
				slot("hall", 1, "12:00", "17:00", assignment.StatusConfirmed),
				slot("hall", 2, "21:00", "23:00", assignment.StatusConfirmed),
			},
			want: true,
		},
		{
			name:      "cancelled and no-show do not count",
			partySize: 3,
			reservations: []assignment.ReservationSlot{
				slot("hall", 1, "18:00", "20:00", assignment.StatusCancelled),
				slot("hall", 2, "18:00", "20:00", assignment.StatusNoShow),
			},
			want: true,
		},
		{
			name:      "party too large for every type",
			partySize: 11,
			want:      false,
		},
		{
			name:      "other type still has room",
			partySize: 8,
			reservations: []assignment.ReservationSlot{
				slot("hall", 1, "18:00", "20:00", assignment.StatusConfirmed),
				slot("hall", 2, "18:00", "20:00", assignment.StatusConfirmed),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := assignment.HasHeadroom(catalog, tt.reservations, target, tt.partySize)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasHeadroom_CrossesMidnight(t *testing.T) {
	catalog := []assignment.SeatingUnitType{
		{ID: "bar", Name: "Bar", MinCapacity: 1, MaxCapacity: 2, Quantity: 1},
	}
	reservations := []assignment.ReservationSlot{
		{Date: "2026-02-02", UnitTypeID: "bar", UnitIndex: 1, Start: "00:00", End: "01:00", Status: assignment.StatusConfirmed},
	}
	target := time.Date(2026, 2, 1, 23, 30, 0, 0, time.UTC)

	got, err := assignment.HasHeadroom(catalog, reservations, target, 2)

	require.NoError(t, err)
	assert.False(t, got)
}

func TestHasHeadroom_InvalidInput(t *testing.T) {
	_, err := assignment.HasHeadroom(nil, nil, time.Now(), 0)
	assert.ErrorIs(t, err, assignment.ErrInvalidPartySize)

	broken := []assignment.ReservationSlot{
		{Date: "01/02/2026", UnitTypeID: "bar", UnitIndex: 1, Start: "00:00", End: "01:00", Status: assignment.StatusConfirmed},
	}

	_, err = assignment.HasHeadroom(nil, broken, time.Now(), 2)
	assert.Error(t, err)
}
