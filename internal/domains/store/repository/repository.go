package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/ymjo140/rendezvous-merchant-sub000/infras/otel"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/postgres"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/store/model"
	gDto "github.com/ymjo140/rendezvous-merchant-sub000/shared/dto"
	gRepo "github.com/ymjo140/rendezvous-merchant-sub000/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Store interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Store) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Store, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Store]
}

func New(db *postgres.Connection, otel otel.Otel) Store {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Store](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
