package model

import "github.com/ymjo140/rendezvous-merchant-sub000/shared/model"

const (
	TableName  = "stores"
	EntityName = "store"

	FieldID   = "id"
	FieldName = "name"
)

// Store is a merchant's venue. Seating units, reservations and staff all
// belong to exactly one store.
type Store struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Phone string `db:"phone"`
	model.Metadata
}
