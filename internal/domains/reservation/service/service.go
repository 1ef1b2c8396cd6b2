package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/ymjo140/rendezvous-merchant-sub000/config"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/kafka"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/metrics"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/otel"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/postgres"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/assignment"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/reservation/model"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/reservation/model/dto"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/reservation/repository"
	seatingRepo "github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/seating/repository"
	seatingService "github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/seating/service"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/cache"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/constant"
	gDto "github.com/ymjo140/rendezvous-merchant-sub000/shared/dto"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/failure"
	gModel "github.com/ymjo140/rendezvous-merchant-sub000/shared/model"
	gRepo "github.com/ymjo140/rendezvous-merchant-sub000/shared/repository"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGet    = "get"
	cacheGetAll = "gets"
	cacheCount  = "count"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	GetFresh(ctx context.Context, id string) (dto.ReservationResponse, error)
	Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (dto.ReservationResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
	CheckIn(ctx context.Context, id string) (dto.ReservationResponse, error)
	CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	repo        repository.Reservation
	seatingRepo seatingRepo.SeatingUnit
	seating     seatingService.SeatingUnit
	transactor  gRepo.Transactor
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	kafka       kafka.Client
	metrics     metrics.Metrics
}

func New(
	repo repository.Reservation,
	seatingRepo seatingRepo.SeatingUnit,
	seating seatingService.SeatingUnit,
	transactor gRepo.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	kafka kafka.Client,
	metrics metrics.Metrics,
) Reservation {
	return &serviceImpl{
		repo:        repo,
		seatingRepo: seatingRepo,
		seating:     seating,
		transactor:  transactor,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		kafka:       kafka,
		metrics:     metrics,
	}
}

func cachePrefix(storeID string) string {
	return shared.BuildCacheKey(constant.CachePrefixReservation, storeID)
}

func availabilityPrefix(storeID string) string {
	return shared.BuildCacheKey(constant.CachePrefixAvailability, storeID)
}

// CachePrefixes lists every cache prefix a reservation write makes stale.
func CachePrefixes(storeID string) []string {
	return []string{cachePrefix(storeID), availabilityPrefix(storeID)}
}

func byID(storeID, id string) gDto.FilterGroup {
	return shared.FilterByStore(storeID, model.FieldStoreID, model.TableName, shared.FilterByID(id, model.FieldID, model.TableName))
}

// occupyingOn selects the store's reservations that can hold an instance on one of dates.
func occupyingOn(storeID string, dates ...string) gDto.FilterGroup {
	return shared.FilterByStore(storeID, model.FieldStoreID, model.TableName,
		gDto.Filter{Field: model.FieldReservationDate, Value: dates, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		gDto.Filter{
			Field:    model.FieldStatus,
			Value:    []string{string(assignment.StatusCancelled), string(assignment.StatusNoShow)},
			Operator: gDto.FilterOperatorNotIn,
			Table:    model.TableName,
		},
	)
}

// afterWrite drops the store's cached reads and publishes evt.
func (s *serviceImpl) afterWrite(ctx context.Context, evt model.Event) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, prefix := range CachePrefixes(evt.StoreID) {
			shared.InvalidateCaches(c, s.cache, prefix)
		}

		msg := kafka.Message{Key: evt.StoreID, Value: evt}
		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.Reservation, msg); err != nil {
			log.Error().Err(err).Str("type", evt.Type).Str("reservationID", evt.ReservationID).Msg("failed to publish reservation event")
		}
	}()
}

// placementError turns engine input errors into client errors.
func placementError(err error) error {
	if errors.Is(err, assignment.ErrInvalidClock) || errors.Is(err, assignment.ErrInvalidWindow) ||
		errors.Is(err, assignment.ErrInvalidPartySize) {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	return err
}

// withRetry runs fn in a transaction, starting over from a fresh snapshot when
// the exclusion constraint reports that another reservation won the instance.
func (s *serviceImpl) withRetry(ctx context.Context, fn gRepo.TxFunc) error {
	attempts := max(s.cfg.App.Assignment.MaxAttempts, 1)

	for attempt := 1; ; attempt++ {
		err := s.transactor.WithinTx(ctx, fn)
		if err == nil || !postgres.IsSeatingConflict(err) {
			return err
		}

		if attempt >= attempts {
			log.Warn().Err(err).Int("attempts", attempt).Msg("giving up on seating after repeated conflicts")
			s.metrics.ObserveAssignment(ctx, metrics.OutcomeConflict)

			return failure.SeatingConflict
		}

		log.Info().Int("attempt", attempt).Msg("seating conflict, retrying placement")
		s.metrics.ObserveConflictRetry()
	}
}

type placement struct {
	result  assignment.Result
	unit    string
	outcome string
}

// place chooses an instance for req inside tx. pinned names an instance the
// caller insists on; keep names one to prefer if it is still free. Reservation
// exceptID is left out of the snapshot so a reservation never blocks itself.
func (s *serviceImpl) place(ctx context.Context, tx *sqlx.Tx, storeID string, req assignment.Request, pinned, keep *assignment.Result, exceptID string) (placement, error) {
	units, err := s.seatingRepo.GetAllTx(ctx, tx, seatingRepo.CatalogOrder, seatingRepo.ActiveCatalog(storeID))
	if err != nil {
		return placement{}, fmt.Errorf("failed to read seating catalog: %w", err)
	}

	catalog := make([]assignment.SeatingUnitType, len(units))
	for i, unit := range units {
		catalog[i] = unit.ToAssignment()
	}

	reservations, err := s.repo.GetAllTx(ctx, tx, gDto.QueryParams{}, occupyingOn(storeID, req.Date))
	if err != nil {
		return placement{}, fmt.Errorf("failed to read reservations: %w", err)
	}

	slots := model.Slots(reservations, exceptID)

	if pinned != nil {
		unit, ok := instanceOf(catalog, *pinned)
		if !ok {
			return placement{}, failure.BadRequestFromString("seating unit or index does not exist") // nolint:wrapcheck
		}

		if !unit.Fits(req.PartySize) {
			return placement{}, failure.BadRequestFromString(fmt.Sprintf("a party of %d does not fit %s", req.PartySize, unit.Name)) // nolint:wrapcheck
		}

		free, err := assignment.InstanceFree(req, unit.ID, pinned.UnitIndex, slots)
		if err != nil {
			return placement{}, placementError(err)
		}

		label := assignment.Label(unit.Name, pinned.UnitIndex)
		if !free {
			return placement{}, failure.Conflict(label + " is already taken for that time") // nolint:wrapcheck
		}

		return placement{
			result:  assignment.Result{UnitTypeID: unit.ID, UnitIndex: pinned.UnitIndex, Label: label},
			unit:    unit.Name,
			outcome: metrics.OutcomeManual,
		}, nil
	}

	if keep != nil {
		if unit, ok := instanceOf(catalog, *keep); ok && unit.Fits(req.PartySize) {
			free, err := assignment.InstanceFree(req, unit.ID, keep.UnitIndex, slots)
			if err != nil {
				return placement{}, placementError(err)
			}

			if free {
				return placement{
					result:  assignment.Result{UnitTypeID: unit.ID, UnitIndex: keep.UnitIndex, Label: assignment.Label(unit.Name, keep.UnitIndex)},
					unit:    unit.Name,
					outcome: metrics.OutcomeAssigned,
				}, nil
			}
		}
	}

	result, err := assignment.Assign(req, catalog, slots)
	if err != nil {
		return placement{}, placementError(err)
	}

	if result == nil {
		s.metrics.ObserveAssignment(ctx, metrics.OutcomeNoAvailability)

		return placement{}, failure.NoSeatingAvailable
	}

	unit, _ := instanceOf(catalog, *result)

	return placement{result: *result, unit: unit.Name, outcome: metrics.OutcomeAssigned}, nil
}

func instanceOf(catalog []assignment.SeatingUnitType, want assignment.Result) (assignment.SeatingUnitType, bool) {
	idx := slices.IndexFunc(catalog, func(unit assignment.SeatingUnitType) bool { return unit.ID == want.UnitTypeID })
	if idx < 0 || want.UnitIndex < 1 || want.UnitIndex > catalog[idx].Quantity {
		return assignment.SeatingUnitType{}, false
	}

	return catalog[idx], true
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	storeID := shared.StoreID(ctx)
	user := shared.UserID(ctx)
	request := req.Request()

	var pinned *assignment.Result
	if req.Pinned() {
		pinned = &assignment.Result{UnitTypeID: req.SeatingUnitID, UnitIndex: req.UnitIndex}
	}

	var (
		reservation model.Reservation
		outcome     string
	)

	err = s.withRetry(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		placed, err := s.place(ctx, tx, storeID, request, pinned, nil, "")
		if err != nil {
			return err
		}

		reservation = req.ToModel(storeID, user, placed.result)
		reservation.SeatingUnitName = placed.unit
		outcome = placed.outcome

		if err := s.repo.InsertTx(ctx, tx, reservation); err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("storeID", storeID).Str("date", req.Date).Msg("failed to create reservation")

		return res, err
	}

	s.metrics.ObserveAssignment(ctx, outcome)

	scope.SetAttribute("reservation.label", reservation.Label())
	s.afterWrite(ctx, model.NewEvent(model.EventCreated, reservation, user, timezone.Now()))

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	storeID := shared.StoreID(ctx)
	filter = shared.FilterByStore(storeID, model.FieldStoreID, model.TableName, filter)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cachePrefix(storeID), cacheGetAll), req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.count(ctx, storeID, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	storeID := shared.StoreID(ctx)

	return s.count(ctx, storeID, req, shared.FilterByStore(storeID, model.FieldStoreID, model.TableName, filter))
}

func (s *serviceImpl) count(ctx context.Context, storeID string, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cachePrefix(storeID), cacheCount), req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	storeID := shared.StoreID(ctx)
	cacheKey := shared.BuildCacheKey(cachePrefix(storeID), cacheGet, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		return res, nil
	}

	if res, err = s.load(ctx, storeID, id); err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

// GetFresh skips the cache, for decisions that must not see a stale status.
func (s *serviceImpl) GetFresh(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetFresh")
	defer scope.End()
	defer scope.TraceIfError(&err)

	return s.load(ctx, shared.StoreID(ctx), id)
}

func (s *serviceImpl) load(ctx context.Context, storeID, id string) (res dto.ReservationResponse, err error) {
	reservation, err := s.repo.Get(ctx, byID(storeID, id))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	res.FromModel(reservation)

	return res, nil
}

// lock reads a reservation for update inside tx.
func (s *serviceImpl) lock(ctx context.Context, tx *sqlx.Tx, storeID, id string) (model.Reservation, error) {
	reservation, err := s.repo.GetForUpdateTx(ctx, tx, byID(storeID, id))
	if err != nil {
		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	return reservation, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	storeID := shared.StoreID(ctx)
	user := shared.UserID(ctx)

	if req.SeatingUnitID != "" && req.UnitIndex == nil {
		return res, failure.BadRequestFromString("unit_index is required with seating_unit_id") // nolint:wrapcheck
	}

	var (
		reservation model.Reservation
		outcome     string
	)

	err = s.withRetry(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		outcome = ""

		current, err := s.lock(ctx, tx, storeID, id)
		if err != nil {
			return err
		}

		fields := shared.TransformFields(req, user)

		if req.MovesPlacement() {
			if !assignment.Status(current.Status).Occupying() {
				return failure.BadRequestFromString("cannot move a " + current.Status + " reservation") // nolint:wrapcheck
			}

			request := req.Merged(current)
			keep := &assignment.Result{UnitTypeID: current.SeatingUnitID, UnitIndex: current.UnitIndex}

			var pinned *assignment.Result
			if req.SeatingUnitID != "" {
				pinned = &assignment.Result{UnitTypeID: req.SeatingUnitID, UnitIndex: *req.UnitIndex}
			}

			placed, err := s.place(ctx, tx, storeID, request, pinned, keep, current.ID)
			if err != nil {
				return err
			}

			for column, value := range dto.PlacementFields(request, placed.result) {
				fields[column] = value
			}

			current.PartySize = request.PartySize
			current.ReservationDate = gModel.Date(request.Date)
			current.StartTime, current.EndTime = gModel.Clock(request.Window.Start), gModel.Clock(request.Window.End)
			current.SeatingUnitID, current.UnitIndex, current.SeatingUnitName = placed.result.UnitTypeID, placed.result.UnitIndex, placed.unit
			outcome = placed.outcome
		}

		if err := s.repo.UpdateTx(ctx, tx, fields, byID(storeID, id)); err != nil {
			return fmt.Errorf("failed to update reservation: %w", err)
		}

		applyGuestFields(&current, req)
		reservation = current

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update reservation")

		return res, err
	}

	if outcome != "" {
		s.metrics.ObserveAssignment(ctx, outcome)
	}

	s.afterWrite(ctx, model.NewEvent(model.EventUpdated, reservation, user, timezone.Now()))

	res.FromModel(reservation)

	return res, nil
}

func applyGuestFields(reservation *model.Reservation, req dto.UpdateReservationRequest) {
	if req.GuestName != "" {
		reservation.GuestName = req.GuestName
	}

	if req.GuestPhone != "" {
		reservation.GuestPhone = req.GuestPhone
	}

	if req.Note != "" {
		reservation.Note = req.Note
	}
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(&err)

	_, err = s.transition(ctx, id, assignment.Status(req.Status), model.EventUpdated)

	return err
}

// CheckIn completes a reservation when its guest arrives.
func (s *serviceImpl) CheckIn(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer scope.TraceIfError(&err)

	reservation, err := s.transition(ctx, id, assignment.StatusCompleted, model.EventCheckedIn)
	if err != nil {
		return res, err
	}

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) transition(ctx context.Context, id string, to assignment.Status, eventType string) (model.Reservation, error) {
	storeID := shared.StoreID(ctx)
	user := shared.UserID(ctx)

	var reservation model.Reservation

	err := s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.lock(ctx, tx, storeID, id)
		if err != nil {
			return err
		}

		from := assignment.Status(current.Status)
		if !model.CanTransition(from, to) {
			return failure.BadRequestFromString(fmt.Sprintf("cannot change a %s reservation to %s", from, to)) // nolint:wrapcheck
		}

		fields := map[string]any{
			model.FieldStatus:        string(to),
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		if err := s.repo.UpdateTx(ctx, tx, fields, byID(storeID, id)); err != nil {
			return fmt.Errorf("failed to update reservation status: %w", err)
		}

		current.Status = string(to)
		reservation = current

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Str("status", string(to)).Msg("failed to change reservation status")

		return reservation, err
	}

	s.afterWrite(ctx, model.NewEvent(eventType, reservation, user, timezone.Now()))

	return reservation, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	storeID := shared.StoreID(ctx)

	reservation, err := s.repo.Get(ctx, byID(storeID, id))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, byID(storeID, id)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete reservation")

		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	s.afterWrite(ctx, model.NewEvent(model.EventDeleted, reservation, shared.UserID(ctx), timezone.Now()))

	return nil
}

// CheckAvailability answers the coarse pre-booking question for a public form.
// It is a hint only; Create decides with the exact per-instance check.
func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(&err)

	at := timezone.ToAppTime(req.At)
	res = dto.AvailabilityResponse{StoreID: req.StoreID, At: at, PartySize: req.PartySize}

	cacheKey := shared.BuildCacheKey(availabilityPrefix(req.StoreID),
		at.Truncate(time.Minute).Format(constant.DateFormat), strconv.Itoa(req.PartySize))

	if err = s.cache.Get(ctx, cacheKey, &res.Available); err == nil {
		return res, nil
	}

	catalog, err := s.seating.ListForAssignment(ctx, req.StoreID)
	if err != nil {
		return res, fmt.Errorf("failed to check availability: %w", err)
	}

	from := at.Add(-assignment.AvailabilityWindow).Format(constant.DateOnlyFormat)
	to := at.Add(assignment.AvailabilityWindow).Format(constant.DateOnlyFormat)

	reservations, err := s.repo.GetAll(ctx, gDto.QueryParams{}, occupyingOn(req.StoreID, slices.Compact([]string{from, to})...))
	if err != nil {
		log.Error().Err(err).Str("storeID", req.StoreID).Msg("failed to read reservations for availability")

		return res, fmt.Errorf("failed to check availability: %w", err)
	}

	res.Available, err = assignment.HasHeadroom(catalog, model.Slots(reservations, ""), at, req.PartySize)
	if err != nil {
		return res, placementError(err)
	}

	s.metrics.ObserveAvailability(res.Available)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res.Available, s.cfg.App.Availability.CacheTTLSeconds); err != nil {
			log.Error().Err(err).Msg("failed to save availability to cache")
		}
	}()

	return res, nil
}
