package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"cadence/infras/otel"
	"cadence/infras/postgres"
	"cadence/internal/domains/lead/model"
	gDto "cadence/shared/dto"
	gRepo "cadence/shared/repository"
)

type Lead interface {
	Insert(ctx context.Context, model model.Lead) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Lead, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Lead, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Lead]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Lead {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Lead](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
