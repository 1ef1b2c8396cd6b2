package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/ymjo140/rendezvous-merchant-sub000/config"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/otel"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/postgres"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/s3"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/assignment"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/seating/model"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/seating/model/dto"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/seating/repository"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/cache"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/constant"
	gDto "github.com/ymjo140/rendezvous-merchant-sub000/shared/dto"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGet     = "get"
	cacheGetAll  = "gets"
	cacheCount   = "count"
	cacheCatalog = "catalog"

	imageDirectory = "stores"
)

type SeatingUnit interface {
	Create(ctx context.Context, req dto.CreateSeatingUnitRequest) (dto.SeatingUnitResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSeatingUnitsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.SeatingUnitResponse, error)
	Update(ctx context.Context, req dto.UpdateSeatingUnitRequest, id string) error
	UploadImage(ctx context.Context, req dto.UploadImageRequest, id string) (dto.SeatingUnitResponse, error)
	Delete(ctx context.Context, id string) error
	ListForAssignment(ctx context.Context, storeID string) ([]assignment.SeatingUnitType, error)
}

type serviceImpl struct {
	repo  repository.SeatingUnit
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.SeatingUnit, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) SeatingUnit {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func cachePrefix(storeID string) string {
	return shared.BuildCacheKey(constant.CachePrefixSeating, storeID)
}

func (s *serviceImpl) invalidate(ctx context.Context, storeID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cachePrefix(storeID))
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(constant.CachePrefixAvailability, storeID))
	}()
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSeatingUnitRequest) (res dto.SeatingUnitResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	storeID := shared.StoreID(ctx)
	unit := req.ToModel(storeID, shared.UserID(ctx))

	if err = s.repo.Insert(ctx, unit); err != nil {
		log.Error().Err(err).Str("storeID", storeID).Msg("failed to create seating unit")

		if postgres.IsUniqueViolation(err) {
			return res, failure.Conflict(fmt.Sprintf("seating unit %q already exists", req.Name)) // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to create seating unit: %w", err)
	}

	s.invalidate(ctx, storeID)

	res.FromModel(unit)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSeatingUnitsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	storeID := shared.StoreID(ctx)
	filter = shared.FilterByStore(storeID, model.FieldStoreID, model.TableName, filter)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cachePrefix(storeID), cacheGetAll), req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for seating units")

		return res, nil
	}

	total, err := s.count(ctx, storeID, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get seating units")

		return res, fmt.Errorf("failed to get seating units: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save seating units to cache")
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

// count expects filter to be store-scoped already.
func (s *serviceImpl) count(ctx context.Context, storeID string, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cachePrefix(storeID), cacheCount), req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count seating units")

		return res, fmt.Errorf("failed to count seating units: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save seating unit count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, storeID, id string) (model.SeatingUnit, error) {
	unit, err := s.repo.Get(ctx, shared.FilterByStore(storeID, model.FieldStoreID, model.TableName,
		shared.FilterByID(id, model.FieldID, model.TableName)))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get seating unit")

		return unit, fmt.Errorf("failed to get seating unit: %w", err)
	}

	if unit.ID == constant.Empty {
		return unit, failure.NotFound("seating unit not found") // nolint:wrapcheck
	}

	return unit, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SeatingUnitResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	storeID := shared.StoreID(ctx)
	cacheKey := shared.BuildCacheKey(cachePrefix(storeID), cacheGet, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for seating unit")

		return res, nil
	}

	unit, err := s.find(ctx, storeID, id)
	if err != nil {
		return res, err
	}

	res.FromModel(unit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save seating unit to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateSeatingUnitRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	storeID := shared.StoreID(ctx)

	current, err := s.find(ctx, storeID, id)
	if err != nil {
		return err
	}

	if minCapacity, maxCapacity := req.Merged(current); maxCapacity < minCapacity {
		return failure.BadRequestFromString(fmt.Sprintf("MaxCapacity must be greater than or equal to MinCapacity (%d)", minCapacity)) // nolint:wrapcheck
	}

	filter := shared.FilterByStore(storeID, model.FieldStoreID, model.TableName, shared.FilterByID(id, model.FieldID, model.TableName))

	if err = s.repo.Update(ctx, shared.TransformFields(req, shared.UserID(ctx)), filter); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update seating unit")

		if postgres.IsUniqueViolation(err) {
			return failure.Conflict(fmt.Sprintf("seating unit %q already exists", req.Name)) // nolint:wrapcheck
		}

		return fmt.Errorf("failed to update seating unit: %w", err)
	}

	s.invalidate(ctx, storeID)

	return nil
}

func (s *serviceImpl) UploadImage(ctx context.Context, req dto.UploadImageRequest, id string) (res dto.SeatingUnitResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImage")
	defer scope.End()
	defer scope.TraceIfError(&err)

	storeID := shared.StoreID(ctx)

	unit, err := s.find(ctx, storeID, id)
	if err != nil {
		return res, err
	}

	data, err := io.ReadAll(io.LimitReader(req.File, dto.MaxImageBytes+1))
	if err != nil {
		log.Error().Err(err).Msg("failed to read image")

		return res, failure.BadRequest(fmt.Errorf("failed to read image: %w", err)) // nolint:wrapcheck
	}

	if len(data) > dto.MaxImageBytes {
		return res, failure.BadRequestFromString("image must not exceed 2 MB") // nolint:wrapcheck
	}

	fileName := uuid.NewString() + strings.ToLower(path.Ext(req.FileName))
	directory := path.Join(imageDirectory, storeID, model.TableName)

	url, err := s.s3.Upload(ctx, directory, fileName, req.ContentType, data)
	if err != nil {
		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	filter := shared.FilterByStore(storeID, model.FieldStoreID, model.TableName, shared.FilterByID(id, model.FieldID, model.TableName))
	fields := shared.TransformFields(struct {
		Image string `db:"image"`
	}{url}, shared.UserID(ctx))

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to save seating unit image")

		if delErr := s.s3.DeleteByURL(context.WithoutCancel(ctx), url); delErr != nil {
			log.Error().Err(delErr).Str("url", url).Msg("failed to remove orphaned image")
		}

		return res, fmt.Errorf("failed to save seating unit image: %w", err)
	}

	if previous := unit.Image; previous != constant.Empty {
		go func() {
			if err := s.s3.DeleteByURL(context.WithoutCancel(ctx), previous); err != nil {
				log.Error().Err(err).Str("url", previous).Msg("failed to delete previous image")
			}
		}()
	}

	s.invalidate(ctx, storeID)

	unit.Image = url
	res.FromModel(unit)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	storeID := shared.StoreID(ctx)

	unit, err := s.find(ctx, storeID, id)
	if err != nil {
		return err
	}

	filter := shared.FilterByStore(storeID, model.FieldStoreID, model.TableName, shared.FilterByID(id, model.FieldID, model.TableName))

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete seating unit")

		if postgres.IsForeignKeyViolation(err) {
			return failure.Conflict("seating unit still has reservations, deactivate it instead") // nolint:wrapcheck
		}

		return fmt.Errorf("failed to delete seating unit: %w", err)
	}

	if unit.Image != constant.Empty {
		go func() {
			if err := s.s3.DeleteByURL(context.WithoutCancel(ctx), unit.Image); err != nil {
				log.Error().Err(err).Str("url", unit.Image).Msg("failed to delete seating unit image")
			}
		}()
	}

	s.invalidate(ctx, storeID)

	return nil
}

// ListForAssignment returns the store's active catalog in catalog order.
func (s *serviceImpl) ListForAssignment(ctx context.Context, storeID string) (res []assignment.SeatingUnitType, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListForAssignment")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cachePrefix(storeID), cacheCatalog)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	units, err := s.repo.GetAll(ctx, repository.CatalogOrder, repository.ActiveCatalog(storeID))
	if err != nil {
		log.Error().Err(err).Str("storeID", storeID).Msg("failed to list seating catalog")

		return nil, fmt.Errorf("failed to list seating catalog: %w", err)
	}

	res = make([]assignment.SeatingUnitType, len(units))
	for i, unit := range units {
		res[i] = unit.ToAssignment()
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save seating catalog to cache")
		}
	}()

	return res, nil
}
