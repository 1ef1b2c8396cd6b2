package model

import (
	"time"

	"github.com/ymjo140/rendezvous-merchant-sub000/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldStoreID   = "store_id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldFullName  = "full_name"
	FieldLastLogin = "last_login"
	FieldActive    = "active"
)

// User is a staff account. Owners manage the store's catalog and staff.
type User struct {
	ID        string     `db:"id"`
	StoreID   string     `db:"store_id"`
	StoreName string     `column:"name" db:"store_name" table:"stores"`
	Email     string     `db:"email"`
	Password  string     `db:"password"`
	Role      string     `db:"role"`
	FullName  *string    `db:"full_name"`
	LastLogin *time.Time `db:"last_login"`
	Active    bool       `db:"active"`
	model.Metadata
}

func (User) GetJoinQuery() string {
	return "JOIN stores ON stores.id = users.store_id"
}
