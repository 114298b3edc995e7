package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"cadence/infras/otel"
	"cadence/infras/postgres"
	"cadence/internal/domains/booking/model"
	"cadence/shared/constant"
	gDto "cadence/shared/dto"
	"cadence/shared/logger"
	gRepo "cadence/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertWithConflictCheck(ctx context.Context, booking model.Booking) ([]model.Booking, error)
	FindOverlapping(ctx context.Context, userID string, start, end time.Time) ([]model.Booking, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// InsertWithConflictCheck inserts the booking only if no blocking booking of
// the same user overlaps its interval. The check and the insert run in a
// single serializable transaction so two concurrent requests for the same
// slot cannot both pass the check.
func (r *repositoryImpl) InsertWithConflictCheck(ctx context.Context, booking model.Booking) (conflicts []model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".InsertWithConflictCheck")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := r.db.Write.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	defer func() {
		if err != nil || len(conflicts) > 0 {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to rollback booking transaction")
			}
		}
	}()

	conflicts, err = r.findOverlapping(ctx, tx, booking.UserID, booking.StartTime, booking.EndTime)
	if err != nil {
		return nil, err
	}

	if len(conflicts) > 0 {
		return conflicts, nil
	}

	if err = r.InsertTx(ctx, tx, booking); err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to commit transaction (%s): %w", model.EntityName, err)
	}

	return nil, nil
}

// FindOverlapping probes the user's calendar for blocking bookings that
// overlap the half-open interval [start, end) without writing anything.
func (r *repositoryImpl) FindOverlapping(ctx context.Context, userID string, start, end time.Time) (conflicts []model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".FindOverlapping")
	defer scope.End()
	defer scope.TraceIfError(err)

	return r.findOverlapping(ctx, r.db.Read, userID, start, end)
}

func (r *repositoryImpl) findOverlapping(ctx context.Context, ext sqlx.ExtContext, userID string, start, end time.Time) ([]model.Booking, error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".findOverlapping")
	defer scope.End()

	// Half-open interval overlap: two ranges collide when each starts
	// before the other ends. Touching boundaries do not collide.
	query, args, err := sqlx.In(
		fmt.Sprintf(`SELECT * FROM %s
			WHERE %s = ?
			AND %s IN (?)
			AND %s <> ?
			AND %s < ?
			AND %s > ?
			ORDER BY %s ASC`,
			model.TableName,
			model.FieldUserID,
			model.FieldStatus,
			model.FieldApprovalStatus,
			model.FieldStartTime,
			model.FieldEndTime,
			model.FieldStartTime,
		),
		userID, model.ActiveStatuses, model.ApprovalRejected, end, start,
	)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to build overlap query (%s): %w", model.EntityName, err)
	}

	query = ext.Rebind(query)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var conflicts []model.Booking

	if err := sqlx.SelectContext(ctx, ext, &conflicts, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to find overlapping bookings (%s): %w", model.EntityName, err)
	}

	return conflicts, nil
}
