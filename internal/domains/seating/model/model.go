package model

import (
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/assignment"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/model"
)

const (
	TableName  = "seating_units"
	EntityName = "seating_unit"

	FieldID          = "id"
	FieldStoreID     = "store_id"
	FieldName        = "name"
	FieldMinCapacity = "min_capacity"
	FieldMaxCapacity = "max_capacity"
	FieldQuantity    = "quantity"
	FieldIsPrivate   = "is_private"
	FieldImage       = "image"
	FieldActive      = "active"
	FieldCreatedAt   = "created_at"
)

// SeatingUnit is one kind of table a store sells, stocked Quantity times.
type SeatingUnit struct {
	ID          string `db:"id"`
	StoreID     string `db:"store_id"`
	Name        string `db:"name"`
	MinCapacity int    `db:"min_capacity"`
	MaxCapacity int    `db:"max_capacity"`
	Quantity    int    `db:"quantity"`
	IsPrivate   bool   `db:"is_private"`
	Image       string `db:"image"`
	Active      bool   `db:"active"`
	model.Metadata
}

func (s SeatingUnit) ToAssignment() assignment.SeatingUnitType {
	return assignment.SeatingUnitType{
		ID:          s.ID,
		Name:        s.Name,
		MinCapacity: s.MinCapacity,
		MaxCapacity: s.MaxCapacity,
		Quantity:    s.Quantity,
		IsPrivate:   s.IsPrivate,
	}
}
