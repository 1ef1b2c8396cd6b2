package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ymjo140/rendezvous-merchant-sub000/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("bad")), code: http.StatusBadRequest, msg: "bad"},
		{name: "bad request from string", err: failure.BadRequestFromString("invalid window"), code: http.StatusBadRequest, msg: "invalid window"},
		{name: "unauthorized", err: failure.Unauthorized("no token"), code: http.StatusUnauthorized, msg: "no token"},
		{name: "not found", err: failure.NotFound("reservation not found"), code: http.StatusNotFound, msg: "reservation not found"},
		{name: "conflict", err: failure.Conflict("taken"), code: http.StatusConflict, msg: "taken"},
		{name: "forbidden", err: failure.Forbidden("other store"), code: http.StatusForbidden, msg: "other store"},
		{name: "no seating", err: failure.NoSeatingAvailable, code: http.StatusConflict, msg: "no seating available for the requested time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestBadRequest_Nil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("failed to create reservation: %w", failure.NoSeatingAvailable)

	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
}

func TestPublicMessage(t *testing.T) {
	wrapped := fmt.Errorf("failed to update seating unit: %w", failure.NotFound("seating unit not found"))
	internal := errors.New(`pq: relation "reservations" does not exist`)

	assert.Equal(t, "seating unit not found", failure.PublicMessage(wrapped))
	assert.Equal(t, "Internal Server Error", failure.PublicMessage(internal))
}
