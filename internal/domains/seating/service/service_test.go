package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ymjo140/rendezvous-merchant-sub000/config"
	otelMocks "github.com/ymjo140/rendezvous-merchant-sub000/infras/otel/mocks"
	s3Mocks "github.com/ymjo140/rendezvous-merchant-sub000/infras/s3/mocks"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/seating/mocks"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/seating/model"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/seating/model/dto"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/seating/repository"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/seating/service"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared"
	cacheMocks "github.com/ymjo140/rendezvous-merchant-sub000/shared/cache/mocks"
	gDto "github.com/ymjo140/rendezvous-merchant-sub000/shared/dto"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/failure"
)

const storeID = "store-1"

type fixture struct {
	repo  *mocks.MockSeatingUnit
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.SeatingUnit
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := fixture{
		repo:  mocks.NewMockSeatingUnit(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}
	f.svc = service.New(f.repo, cfg, f.cache, otelMocks.NewOtel(), f.s3)

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.s3.EXPECT().DeleteByURL(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func storeCtx() context.Context {
	return shared.WithIdentity(context.Background(), "user-1", storeID, "owner@example.com", "owner")
}

func fakeUnit() model.SeatingUnit {
	minCapacity := gofakeit.IntRange(1, 4)

	return model.SeatingUnit{
		ID:          gofakeit.UUID(),
		StoreID:     storeID,
		Name:        gofakeit.Noun(),
		MinCapacity: minCapacity,
		MaxCapacity: minCapacity + gofakeit.IntRange(0, 4),
		Quantity:    gofakeit.IntRange(1, 10),
		Active:      true,
	}
}

func TestSeatingService_Create(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantCode int
	}{
		{name: "created"},
		{name: "duplicate name", repoErr: &pq.Error{Code: "23505"}, wantCode: 409},
		{name: "database error", repoErr: errors.New("database error"), wantCode: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			var inserted model.SeatingUnit

			f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, unit model.SeatingUnit) error {
					inserted = unit

					return tt.repoErr
				})

			res, err := f.svc.Create(storeCtx(), dto.CreateSeatingUnitRequest{
				Name: "Hall", MinCapacity: 2, MaxCapacity: 4, Quantity: 3,
			})

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, storeID, inserted.StoreID)
			assert.Equal(t, "user-1", inserted.CreatedBy)
			assert.True(t, inserted.Active)
			assert.Equal(t, inserted.ID, res.ID)
		})
	}
}

func TestSeatingService_GetAll(t *testing.T) {
	t.Run("cache miss reads count and rows", func(t *testing.T) {
		f := newFixture(t)
		units := []model.SeatingUnit{fakeUnit(), fakeUnit()}

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).Times(2)
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(12, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.SeatingUnit, error) {
				clause, _ := filter.GetWhereClause()
				assert.True(t, strings.HasPrefix(clause, "(seating_units.store_id = :"))

				return units, nil
			})

		res, err := f.svc.GetAll(storeCtx(), gDto.QueryParams{Page: 1, Limit: 5}, gDto.FilterGroup{})

		require.NoError(t, err)
		assert.Equal(t, 12, res.TotalData)
		assert.Equal(t, 3, res.TotalPage)
		assert.Len(t, res.SeatingUnits, 2)
	})

	t.Run("count error", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).Times(2)
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("count error"))

		_, err := f.svc.GetAll(storeCtx(), gDto.QueryParams{Page: 1, Limit: 5}, gDto.FilterGroup{})
		assert.Error(t, err)
	})
}

func TestSeatingService_Get(t *testing.T) {
	unit := fakeUnit()

	tests := []struct {
		name     string
		found    model.SeatingUnit
		repoErr  error
		wantCode int
	}{
		{name: "found", found: unit},
		{name: "not found", wantCode: 404},
		{name: "database error", repoErr: errors.New("database error"), wantCode: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.found, tt.repoErr)

			res, err := f.svc.Get(storeCtx(), unit.ID)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, unit.ID, res.ID)
		})
	}
}

func TestSeatingService_Update(t *testing.T) {
	unit := fakeUnit()
	unit.MinCapacity, unit.MaxCapacity = 2, 4

	intPtr := func(v int) *int { return &v }

	t.Run("empty request", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Update(storeCtx(), dto.UpdateSeatingUnitRequest{}, unit.ID)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("max below merged min", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(unit, nil)

		err := f.svc.Update(storeCtx(), dto.UpdateSeatingUnitRequest{MaxCapacity: intPtr(1)}, unit.ID)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("updates only provided fields", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(unit, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, intPtr(6), fields[model.FieldQuantity])
				assert.NotContains(t, fields, model.FieldName)

				return nil
			})

		err := f.svc.Update(storeCtx(), dto.UpdateSeatingUnitRequest{Quantity: intPtr(6)}, unit.ID)
		assert.NoError(t, err)
	})
}

func TestSeatingService_UploadImage(t *testing.T) {
	unit := fakeUnit()

	t.Run("uploads and stores url", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(unit, nil)
		f.s3.EXPECT().Upload(gomock.Any(), "stores/"+storeID+"/seating_units", gomock.Any(), "image/png", []byte("png")).
			Return("https://cdn.example.com/a.png", nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.UploadImage(storeCtx(), dto.UploadImageRequest{
			FileName: "a.PNG", ContentType: "image/png", Size: 3, File: nopFile{strings.NewReader("png")},
		}, unit.ID)

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/a.png", res.Image)
	})

	t.Run("upload failure", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(unit, nil)
		f.s3.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("s3 down"))

		_, err := f.svc.UploadImage(storeCtx(), dto.UploadImageRequest{
			FileName: "a.png", ContentType: "image/png", Size: 3, File: nopFile{strings.NewReader("png")},
		}, unit.ID)
		assert.Error(t, err)
	})
}

func TestSeatingService_Delete(t *testing.T) {
	unit := fakeUnit()

	tests := []struct {
		name     string
		repoErr  error
		wantCode int
	}{
		{name: "deleted"},
		{name: "still referenced", repoErr: &pq.Error{Code: "23503"}, wantCode: 409},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(unit, nil)
			f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(tt.repoErr)

			err := f.svc.Delete(storeCtx(), unit.ID)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestSeatingService_ListForAssignment(t *testing.T) {
	f := newFixture(t)
	units := []model.SeatingUnit{fakeUnit(), fakeUnit()}

	f.cache.EXPECT().Get(gomock.Any(), "seating:"+storeID+":catalog", gomock.Any()).Return(errors.New("miss"))
	f.repo.EXPECT().GetAll(gomock.Any(), repository.CatalogOrder, gomock.Any()).Return(units, nil)

	catalog, err := f.svc.ListForAssignment(context.Background(), storeID)

	require.NoError(t, err)
	require.Len(t, catalog, 2)
	assert.Equal(t, units[1].ID, catalog[1].ID)
	assert.Equal(t, units[1].Quantity, catalog[1].Quantity)
}

type nopFile struct {
	*strings.Reader
}

func (nopFile) Close() error { return nil }
