package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/ymjo140/rendezvous-merchant-sub000/infras/otel"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/postgres"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/seating/model"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared"
	gDto "github.com/ymjo140/rendezvous-merchant-sub000/shared/dto"
	gRepo "github.com/ymjo140/rendezvous-merchant-sub000/shared/repository"

	"github.com/jmoiron/sqlx"
)

// CatalogOrder is the order the assignment engine breaks capacity ties in.
// Units created in the same instant fall back to id order.
var CatalogOrder = gDto.QueryParams{SortBy: model.TableName + "." + model.FieldCreatedAt, SortDir: gDto.SortDirAsc}

// ActiveCatalog selects the units a store currently sells.
func ActiveCatalog(storeID string) gDto.FilterGroup {
	return shared.FilterByStore(storeID, model.FieldStoreID, model.TableName,
		gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	)
}

type SeatingUnit interface {
	Insert(ctx context.Context, model model.SeatingUnit) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.SeatingUnit, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.SeatingUnit, error)
	GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.SeatingUnit, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.SeatingUnit]
}

func New(db *postgres.Connection, otel otel.Otel) SeatingUnit {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.SeatingUnit](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
