package dto

import (
	"time"

	"github.com/ymjo140/rendezvous-merchant-sub000/infras/jwt"
	storeModel "github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/store/model"
	userModel "github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/user/model"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/constant"
	gModel "github.com/ymjo140/rendezvous-merchant-sub000/shared/model"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/timezone"

	"github.com/google/uuid"
)

// RegisterRequest signs up a new store together with its owner account.
type RegisterRequest struct {
	StoreName  string  `json:"store_name"            validate:"required,max=100"`
	StorePhone string  `json:"store_phone,omitempty" validate:"omitempty,max=20"`
	Email      string  `json:"email"                 validate:"required,email"`
	Password   string  `json:"password"              validate:"required,min=8"`
	FullName   *string `json:"full_name,omitempty"   validate:"omitempty,min=2,max=100"`
}

func (r *RegisterRequest) ToModels(hashedPassword string) (storeModel.Store, userModel.User) {
	now := timezone.Now()
	ownerID := uuid.NewString()

	metadata := gModel.Metadata{
		CreatedAt:  now,
		ModifiedAt: now,
		CreatedBy:  ownerID,
		ModifiedBy: ownerID,
	}

	store := storeModel.Store{
		ID:       uuid.NewString(),
		Name:     r.StoreName,
		Phone:    r.StorePhone,
		Metadata: metadata,
	}

	owner := userModel.User{
		ID:       ownerID,
		StoreID:  store.ID,
		Email:    r.Email,
		Password: hashedPassword,
		Role:     constant.RoleOwner,
		FullName: r.FullName,
		Active:   true,
		Metadata: metadata,
	}

	return store, owner
}

type RegisterResponse struct {
	StoreID string `json:"store_id"`
	UserID  string `json:"user_id"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateLastLoginRequest may carry a fresh hash when the stored one used an outdated cost.
type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
	Password  string    `db:"password"   json:"-"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse = LoginResponse

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}
