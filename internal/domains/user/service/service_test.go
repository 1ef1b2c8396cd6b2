package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ymjo140/rendezvous-merchant-sub000/config"
	otelMocks "github.com/ymjo140/rendezvous-merchant-sub000/infras/otel/mocks"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/user/mocks"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/user/model"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/user/model/dto"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/user/service"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared"
	cacheMocks "github.com/ymjo140/rendezvous-merchant-sub000/shared/cache/mocks"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/constant"
	gDto "github.com/ymjo140/rendezvous-merchant-sub000/shared/dto"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/failure"
)

const (
	ownerID = "owner-1"
	storeID = "store-1"
)

func setup(t *testing.T) (*mocks.MockUser, *cacheMocks.MockRedisCache, service.User) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUser(ctrl)
	redis := cacheMocks.NewMockRedisCache(ctrl)

	redis.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return repo, redis, service.New(repo, &config.Config{}, redis, otelMocks.NewOtel())
}

func ownerCtx() context.Context {
	return shared.WithIdentity(context.Background(), ownerID, storeID, "owner@example.com", constant.RoleOwner)
}

func TestUserService_Create(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantCode int
	}{
		{name: "created as staff of the owner's store"},
		{name: "email taken", repoErr: &pq.Error{Code: "23505"}, wantCode: 409},
		{name: "database error", repoErr: errors.New("database error"), wantCode: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, svc := setup(t)

			repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, user model.User) error {
					assert.Equal(t, storeID, user.StoreID)
					assert.Equal(t, constant.RoleStaff, user.Role)
					assert.Equal(t, ownerID, user.CreatedBy)

					return tt.repoErr
				})

			res, err := svc.Create(ownerCtx(), dto.CreateUserRequest{Email: "host@example.com", Password: "password123"})

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "host@example.com", res.Email)
		})
	}
}

func TestUserService_Me(t *testing.T) {
	repo, redis, svc := setup(t)

	redis.EXPECT().Get(gomock.Any(), "user:"+storeID+":get:"+ownerID, gomock.Any()).Return(errors.New("miss"))
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.User, error) {
			_, args := filter.GetWhereClause()
			assert.Len(t, args, 2)

			return model.User{ID: ownerID, StoreID: storeID, StoreName: "Seongsu", Role: constant.RoleOwner}, nil
		})

	res, err := svc.Me(ownerCtx())

	require.NoError(t, err)
	assert.Equal(t, "Seongsu", res.StoreName)
}

func TestUserService_Update(t *testing.T) {
	active := false

	t.Run("owner cannot deactivate themselves", func(t *testing.T) {
		_, _, svc := setup(t)

		err := svc.Update(ownerCtx(), dto.UpdateUserRequest{Active: &active}, ownerID)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("empty request", func(t *testing.T) {
		_, _, svc := setup(t)

		err := svc.Update(ownerCtx(), dto.UpdateUserRequest{}, "staff-1")
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("user from another store", func(t *testing.T) {
		repo, _, svc := setup(t)
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(ownerCtx(), dto.UpdateUserRequest{Active: &active}, "staff-9")
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("deactivates staff", func(t *testing.T) {
		repo, _, svc := setup(t)
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, &active, fields[model.FieldActive])

				return nil
			})

		assert.NoError(t, svc.Update(ownerCtx(), dto.UpdateUserRequest{Active: &active}, "staff-1"))
	})
}

func TestUserService_Delete(t *testing.T) {
	t.Run("owner cannot delete themselves", func(t *testing.T) {
		_, _, svc := setup(t)

		assert.Equal(t, 400, failure.GetCode(svc.Delete(ownerCtx(), ownerID)))
	})

	t.Run("deletes staff", func(t *testing.T) {
		repo, _, svc := setup(t)
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Delete(ownerCtx(), "staff-1"))
	})
}
