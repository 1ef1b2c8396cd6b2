package reservation_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "github.com/ymjo140/rendezvous-merchant-sub000/infras/otel/mocks"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/reservation/model/dto"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/reservation/service/mocks"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/handlers/reservation"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/failure"
)

const storeID = "7d6f1c1e-2f8a-4a51-9d1b-6a4c0c7f9e21"

func setup(t *testing.T) (*mocks.MockReservation, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockReservation(ctrl)

	handler := reservation.New(svc, nil, otelMocks.NewOtel())

	mux := chi.NewRouter()
	handler.Router(mux)
	handler.PublicRouter(mux)

	return svc, mux
}

func serve(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	return rec
}

func TestHandler_CreateReservation(t *testing.T) {
	const body = `{"guest_name":"Kim","party_size":4,"date":"2025-03-14","start_time":"18:00","end_time":"20:00"}`

	tests := []struct {
		name       string
		body       string
		setupMock  func(svc *mocks.MockReservation)
		wantStatus int
	}{
		{
			name: "placed",
			body: body,
			setupMock: func(svc *mocks.MockReservation) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error) {
						assert.Equal(t, 4, req.PartySize)

						return dto.ReservationResponse{ID: "r-1", Label: "4-top #1", PartySize: 4}, nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "no table fits",
			body: body,
			setupMock: func(svc *mocks.MockReservation) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(dto.ReservationResponse{}, fmt.Errorf("failed to assign: %w", failure.NoSeatingAvailable))
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "empty party",
			body:       `{"guest_name":"Kim","party_size":0,"date":"2025-03-14","start_time":"18:00","end_time":"20:00"}`,
			setupMock:  func(*mocks.MockReservation) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			body:       `{"guest_name":`,
			setupMock:  func(*mocks.MockReservation) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mux := setup(t)
			tt.setupMock(svc)

			rec := serve(mux, http.MethodPost, "/reservations", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_UpdateReservationStatus(t *testing.T) {
	svc, mux := setup(t)

	svc.EXPECT().UpdateStatus(gomock.Any(), dto.UpdateStatusRequest{Status: "cancelled"}, "r-404").
		Return(failure.NotFound("reservation not found"))

	rec := serve(mux, http.MethodPatch, "/reservations/r-404/status", `{"status":"cancelled"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_CheckAvailability(t *testing.T) {
	at := time.Date(2025, 3, 14, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		target     string
		setupMock  func(svc *mocks.MockReservation)
		wantStatus int
	}{
		{
			name:   "available",
			target: "/stores/" + storeID + "/availability?at=2025-03-14T19:00:00Z&party_size=2",
			setupMock: func(svc *mocks.MockReservation) {
				svc.EXPECT().CheckAvailability(gomock.Any(), dto.AvailabilityRequest{StoreID: storeID, At: at, PartySize: 2}).
					Return(dto.AvailabilityResponse{StoreID: storeID, At: at, PartySize: 2, Available: true}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "bad timestamp",
			target:     "/stores/" + storeID + "/availability?at=tonight&party_size=2",
			setupMock:  func(*mocks.MockReservation) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad party size",
			target:     "/stores/" + storeID + "/availability?at=2025-03-14T19:00:00Z&party_size=two",
			setupMock:  func(*mocks.MockReservation) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "store id is not a uuid",
			target:     "/stores/bistro/availability?at=2025-03-14T19:00:00Z&party_size=2",
			setupMock:  func(*mocks.MockReservation) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mux := setup(t)
			tt.setupMock(svc)

			rec := serve(mux, http.MethodGet, tt.target, "")

			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus != http.StatusOK {
				return
			}

			var body struct {
				Data dto.AvailabilityResponse `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.True(t, body.Data.Available)
		})
	}
}
