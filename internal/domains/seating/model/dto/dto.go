package dto

import (
	"mime/multipart"

	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/seating/model"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/constant"
	gDto "github.com/ymjo140/rendezvous-merchant-sub000/shared/dto"
	gModel "github.com/ymjo140/rendezvous-merchant-sub000/shared/model"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/timezone"

	"github.com/google/uuid"
)

type CreateSeatingUnitRequest struct {
	Name        string `json:"name"         validate:"required,max=100"`
	MinCapacity int    `json:"min_capacity" validate:"required,min=1"`
	MaxCapacity int    `json:"max_capacity" validate:"required,gtefield=MinCapacity"`
	Quantity    int    `json:"quantity"     validate:"min=0,max=500"`
	IsPrivate   bool   `json:"is_private"`
	Active      *bool  `json:"active"`
}

func (c *CreateSeatingUnitRequest) ToModel(storeID, user string) model.SeatingUnit {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	now := timezone.Now()

	return model.SeatingUnit{
		ID:          uuid.NewString(),
		StoreID:     storeID,
		Name:        c.Name,
		MinCapacity: c.MinCapacity,
		MaxCapacity: c.MaxCapacity,
		Quantity:    c.Quantity,
		IsPrivate:   c.IsPrivate,
		Active:      active,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateSeatingUnitRequest is a partial update; nil fields are left alone.
type UpdateSeatingUnitRequest struct {
	Name        string `db:"name"         json:"name"         validate:"omitempty,max=100"`
	MinCapacity *int   `db:"min_capacity" json:"min_capacity" validate:"omitempty,min=1"`
	MaxCapacity *int   `db:"max_capacity" json:"max_capacity" validate:"omitempty,min=1"`
	Quantity    *int   `db:"quantity"     json:"quantity"     validate:"omitempty,min=0,max=500"`
	IsPrivate   *bool  `db:"is_private"   json:"is_private"`
	Active      *bool  `db:"active"       json:"active"`
}

func (u UpdateSeatingUnitRequest) IsEmpty() bool {
	return u == (UpdateSeatingUnitRequest{})
}

// Merged returns the capacity bounds after applying the update to current.
func (u UpdateSeatingUnitRequest) Merged(current model.SeatingUnit) (minCapacity, maxCapacity int) {
	minCapacity, maxCapacity = current.MinCapacity, current.MaxCapacity

	if u.MinCapacity != nil {
		minCapacity = *u.MinCapacity
	}

	if u.MaxCapacity != nil {
		maxCapacity = *u.MaxCapacity
	}

	return minCapacity, maxCapacity
}

const MaxImageBytes = 2 << 20

type UploadImageRequest struct {
	FileName    string         `validate:"required"`
	ContentType string         `validate:"required,mimetypes=image/png image/jpeg image/webp"`
	Size        int64          `validate:"gt=0,maxfilesize=2"`
	File        multipart.File `validate:"-"`
}

func (u *UploadImageRequest) FromFileHeader(file multipart.File, header *multipart.FileHeader) {
	u.File = file
	u.FileName = header.Filename
	u.ContentType = header.Header.Get(constant.RequestHeaderContentType)
	u.Size = header.Size
}

type SeatingUnitResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MinCapacity int    `json:"min_capacity"`
	MaxCapacity int    `json:"max_capacity"`
	Quantity    int    `json:"quantity"`
	IsPrivate   bool   `json:"is_private"`
	Image       string `json:"image,omitempty"`
	Active      bool   `json:"active"`
	gDto.Metadata
}

func (r *SeatingUnitResponse) FromModel(model model.SeatingUnit) {
	r.ID = model.ID
	r.Name = model.Name
	r.MinCapacity = model.MinCapacity
	r.MaxCapacity = model.MaxCapacity
	r.Quantity = model.Quantity
	r.IsPrivate = model.IsPrivate
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetSeatingUnitsResponse struct {
	SeatingUnits []SeatingUnitResponse `json:"seating_units"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetSeatingUnitsResponse) FromModels(models []model.SeatingUnit, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.SeatingUnits = make([]SeatingUnitResponse, len(models))
	for i, mod := range models {
		r.SeatingUnits[i].FromModel(mod)
	}
}
