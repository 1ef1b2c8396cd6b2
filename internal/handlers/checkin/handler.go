package checkin

import (
	"net/http"

	"github.com/ymjo140/rendezvous-merchant-sub000/infras/otel"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/checkin/model/dto"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/checkin/service"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/constant"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/validator"
	"github.com/ymjo140/rendezvous-merchant-sub000/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.CheckIn
	otel    otel.Otel
}

func New(service service.CheckIn, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/checkins", handler.RedeemCheckInCode)
}

// RedeemCheckInCode marks the reservation behind a scanned code as completed.
// @Summary Redeem a check-in code
// @Tags CheckIn
// @Accept json
// @Produce json
// @Param request body dto.RedeemRequest true "Scanned code"
// @Success 200 {object} response.Data
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/checkins [post]
// @Security BearerAuth
func (handler *Handler) RedeemCheckInCode(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RedeemCheckInCode")
	defer scope.End()

	var req dto.RedeemRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Redeem(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to redeem check-in code")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation " + reservation.ID + " checked in by user " + shared.UserID(ctx))

	response.WithJSON(w, http.StatusOK, reservation)
}
