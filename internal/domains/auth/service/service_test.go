package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/ymjo140/rendezvous-merchant-sub000/config"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/jwt"
	jwtMocks "github.com/ymjo140/rendezvous-merchant-sub000/infras/jwt/mocks"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/otel/mocks"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/auth/model/dto"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/auth/service"
	storeMocks "github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/store/mocks"
	storeModel "github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/store/model"
	userMocks "github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/user/mocks"
	userModel "github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/user/model"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/constant"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/failure"
	gModel "github.com/ymjo140/rendezvous-merchant-sub000/shared/model"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/password"
	gRepo "github.com/ymjo140/rendezvous-merchant-sub000/shared/repository"
	repoMocks "github.com/ymjo140/rendezvous-merchant-sub000/shared/repository/mocks"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/timezone"
)

// "password" hashed with bcrypt.
const passwordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

type fixture struct {
	users      *userMocks.MockUser
	stores     *storeMocks.MockStore
	transactor *repoMocks.MockTransactor
	jwt        *jwtMocks.MockJWT
	svc        service.Auth
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		users:      userMocks.NewMockUser(ctrl),
		stores:     storeMocks.NewMockStore(ctrl),
		transactor: repoMocks.NewMockTransactor(ctrl),
		jwt:        jwtMocks.NewMockJWT(ctrl),
	}
	f.svc = service.New(f.users, f.stores, f.transactor, &config.Config{}, mocks.NewOtel(), f.jwt)

	f.transactor.EXPECT().WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn gRepo.TxFunc) error {
			return fn(ctx, (*sqlx.Tx)(nil))
		}).AnyTimes()

	return f
}

func staff() userModel.User {
	return userModel.User{
		ID:       "user-id-123",
		StoreID:  "store-1",
		Email:    "test@example.com",
		Password: passwordHash,
		Role:     constant.RoleOwner,
		FullName: stringPtr("Test User"),
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "system",
			ModifiedBy: "system",
		},
	}
}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{
		StoreName: "Rendezvous Seongsu",
		Email:     "owner@example.com",
		Password:  "password123",
	}

	t.Run("creates store and owner in one transaction", func(t *testing.T) {
		f := newFixture(t)

		var store storeModel.Store

		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.stores.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, s storeModel.Store) error {
				store = s

				return nil
			})
		f.users.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, u userModel.User) error {
				assert.Equal(t, store.ID, u.StoreID)
				assert.Equal(t, constant.RoleOwner, u.Role)
				assert.NotEqual(t, "password123", u.Password)

				return nil
			})

		res, err := f.svc.Register(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, store.ID, res.StoreID)
		assert.NotEmpty(t, res.UserID)
	})

	t.Run("email already registered", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Register(context.Background(), req)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("email taken between check and insert", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.stores.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.users.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})

		_, err := f.svc.Register(context.Background(), req)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("store insert fails", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.stores.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		_, err := f.svc.Register(context.Background(), req)
		assert.Equal(t, 500, failure.GetCode(err))
	})
}

func TestAuthService_Login(t *testing.T) {
	validUser := staff()

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				f.jwt.EXPECT().
					GenerateTokenPair(jwt.Identity{
						UserID:  validUser.ID,
						StoreID: validUser.StoreID,
						Email:   validUser.Email,
						Role:    validUser.Role,
					}).
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Contains(t, fields, userModel.FieldLastLogin)
						assert.NotContains(t, fields, userModel.FieldPassword)

						return nil
					})
			},
		},
		{
			name: "outdated hash cost is upgraded",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				weak, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
				assert.NoError(t, err)

				outdated := validUser
				outdated.Password = string(weak)

				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(outdated, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any()).
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						hash, ok := fields[userModel.FieldPassword].(string)
						assert.True(t, ok)
						assert.False(t, password.NeedsRehash(hash))

						return nil
					})
			},
		},
		{
			name: "user not found",
			req:  dto.LoginRequest{Email: "nonexistent@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: 400,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "wrongpassword"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
			},
			wantCode: 400,
		},
		{
			name: "inactive user",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				inactiveUser := validUser
				inactiveUser.Active = false

				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactiveUser, nil)
			},
			wantCode: 400,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any()).Return(nil, errors.New("token generation failed"))
			},
			wantCode: 500,
		},
		{
			name: "database error",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("database error"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			result, err := f.svc.Login(context.Background(), tt.req)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, result.AccessToken)
			assert.NotEmpty(t, result.RefreshToken)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name:  "successful token refresh",
			token: "valid-refresh-token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().
					RefreshTokens("valid-refresh-token").
					Return(&jwt.TokenPair{AccessToken: "new-access-token", RefreshToken: "new-refresh-token"}, nil)
			},
		},
		{
			name:  "invalid refresh token",
			token: "invalid-refresh-token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().RefreshTokens("invalid-refresh-token").Return(nil, errors.New("invalid token"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			result, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: tt.token})

			if tt.wantErr {
				assert.Equal(t, 401, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "new-access-token", result.AccessToken)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	validUser := staff()
	ctx := shared.WithIdentity(context.Background(), validUser.ID, validUser.StoreID, validUser.Email, validUser.Role)

	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "successful password change",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Contains(t, fields, userModel.FieldPassword)
						assert.Equal(t, validUser.ID, fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name: "user not found",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: 404,
		},
		{
			name: "wrong current password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "wrongpassword", NewPassword: "newpassword123"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
			},
			wantCode: 400,
		},
		{
			name: "update password error",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.ChangePassword(ctx, tt.req)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func stringPtr(s string) *string {
	return &s
}
