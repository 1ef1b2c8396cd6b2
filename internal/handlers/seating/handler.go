package seating

import (
	"net/http"

	"github.com/ymjo140/rendezvous-merchant-sub000/infras/otel"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/seating/model"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/seating/model/dto"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/seating/service"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/constant"
	gDto "github.com/ymjo140/rendezvous-merchant-sub000/shared/dto"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/failure"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/validator"
	"github.com/ymjo140/rendezvous-merchant-sub000/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.SeatingUnit
	otel    otel.Otel
}

func New(service service.SeatingUnit, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/seating-units", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateSeatingUnit)
		routerGroup.Get("/", handler.GetSeatingUnits)
		routerGroup.Get("/{id}", handler.GetSeatingUnitByID)
		routerGroup.Patch("/{id}", handler.UpdateSeatingUnit)
		routerGroup.Put("/{id}/image", handler.UploadSeatingUnitImage)
		routerGroup.Delete("/{id}", handler.DeleteSeatingUnit)
	})
}

// CreateSeatingUnit adds a seating unit type to the caller's store.
// @Summary Create a seating unit
// @Description Create a seating unit type with a capacity range and a quantity of physical instances.
// @Tags SeatingUnit
// @Accept json
// @Produce json
// @Param request body dto.CreateSeatingUnitRequest true "Seating unit"
// @Success 201 {object} response.Data[dto.SeatingUnitResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/seating-units [post]
// @Security BearerAuth
func (handler *Handler) CreateSeatingUnit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSeatingUnit")
	defer scope.End()

	var req dto.CreateSeatingUnitRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	unit, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create seating unit")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Seating unit created by user " + shared.UserID(ctx))

	response.WithJSON(w, http.StatusCreated, unit)
}

// GetSeatingUnits lists the store's seating units.
// @Summary Get all seating units
// @Tags SeatingUnit
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param active query boolean false "Filter by active status"
// @Param is_private query boolean false "Filter by private rooms"
// @Success 200 {object} response.Data[dto.GetSeatingUnitsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/seating-units [get]
// @Security BearerAuth
func (handler *Handler) GetSeatingUnits(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSeatingUnits")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.Sortable(model.TableName, model.FieldCreatedAt, model.FieldName, model.FieldMaxCapacity, model.FieldQuantity)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorLike,
				Value:    query.Get(model.FieldName),
				Table:    model.TableName,
			},
		},
	}

	for _, field := range []string{model.FieldActive, model.FieldIsPrivate} {
		if value := shared.ConvertStringToBool(query.Get(field)); value != nil {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    *value,
				Table:    model.TableName,
			})
		}
	}

	units, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get seating units")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, units)
}

// GetSeatingUnitByID returns one seating unit.
// @Summary Get a seating unit by ID
// @Tags SeatingUnit
// @Produce json
// @Param id path string true "Seating unit ID"
// @Success 200 {object} response.Data[dto.SeatingUnitResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/seating-units/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetSeatingUnitByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSeatingUnitByID")
	defer scope.End()

	unit, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get seating unit")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, unit)
}

// UpdateSeatingUnit applies a partial update.
// @Summary Update a seating unit
// @Description Lowering quantity leaves reservations on removed instances in place.
// @Tags SeatingUnit
// @Accept json
// @Produce json
// @Param id path string true "Seating unit ID"
// @Param request body dto.UpdateSeatingUnitRequest true "Fields to change"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/seating-units/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateSeatingUnit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSeatingUnit")
	defer scope.End()

	var req dto.UpdateSeatingUnitRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update seating unit")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Seating unit updated by user " + shared.UserID(ctx))

	response.WithMessage(w, http.StatusOK, "Seating unit updated successfully")
}

// UploadSeatingUnitImage replaces the unit's photo.
// @Summary Upload a seating unit image
// @Tags SeatingUnit
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Seating unit ID"
// @Param file formData file true "PNG, JPEG or WebP image, at most 2 MB"
// @Success 200 {object} response.Data[dto.SeatingUnitResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/seating-units/{id}/image [put]
// @Security BearerAuth
func (handler *Handler) UploadSeatingUnitImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadSeatingUnitImage")
	defer scope.End()

	r.Body = http.MaxBytesReader(w, r.Body, constant.RequestMaxMemory)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	file, header, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, failure.BadRequestFromString("file is required"))

		return
	}
	defer file.Close()

	var req dto.UploadImageRequest
	req.FromFileHeader(file, header)

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate image")

		response.WithError(w, err)

		return
	}

	unit, err := handler.service.UploadImage(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload seating unit image")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, unit)
}

// DeleteSeatingUnit removes a seating unit that no reservation references.
// @Summary Delete a seating unit
// @Tags SeatingUnit
// @Produce json
// @Param id path string true "Seating unit ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/seating-units/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSeatingUnit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSeatingUnit")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete seating unit")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Seating unit deleted by user " + shared.UserID(ctx))

	response.WithMessage(w, http.StatusOK, "Seating unit deleted successfully")
}
