package dto

import (
	"time"

	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/user/model"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/constant"
	gDto "github.com/ymjo140/rendezvous-merchant-sub000/shared/dto"
	gModel "github.com/ymjo140/rendezvous-merchant-sub000/shared/model"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/timezone"

	"github.com/google/uuid"
)

// CreateUserRequest adds a staff account to the owner's store.
type CreateUserRequest struct {
	Email    string  `json:"email"               validate:"required,email"`
	Password string  `json:"password"            validate:"required,min=8"`
	Role     string  `json:"role"                validate:"omitempty,oneof=owner staff"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=2,max=100"`
}

func (r *CreateUserRequest) ToModel(storeID, createdBy, hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = constant.RoleStaff
	}

	now := timezone.Now()

	return model.User{
		ID:       uuid.NewString(),
		StoreID:  storeID,
		Email:    r.Email,
		Password: hashedPassword,
		Role:     role,
		FullName: r.FullName,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}
}

type UpdateUserRequest struct {
	Role     string  `db:"role"      json:"role,omitempty"      validate:"omitempty,oneof=owner staff"`
	FullName *string `db:"full_name" json:"full_name,omitempty" validate:"omitempty,min=2,max=100"`
	Active   *bool   `db:"active"    json:"active,omitempty"`
}

func (u *UpdateUserRequest) IsEmpty() bool {
	return u.Role == "" && u.FullName == nil && u.Active == nil
}

type UserResponse struct {
	ID        string     `json:"id"`
	StoreID   string     `json:"store_id"`
	StoreName string     `json:"store_name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	FullName  *string    `json:"full_name,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	Active    bool       `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.StoreID = model.StoreID
	r.StoreName = model.StoreName
	r.Email = model.Email
	r.Role = model.Role
	r.FullName = model.FullName
	r.LastLogin = model.LastLogin
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
