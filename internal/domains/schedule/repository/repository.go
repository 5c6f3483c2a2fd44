package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"pomade/infras/otel"
	"pomade/infras/postgres"
	"pomade/internal/domains/schedule/model"
	"pomade/shared/constant"
	gDto "pomade/shared/dto"
	gRepo "pomade/shared/repository"
)

type Template interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Template, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Upsert(ctx context.Context, template model.Template, conflictColumns, updateColumns []string) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type templateRepositoryImpl struct {
	gRepo.Repository[model.Template]
	db   *postgres.Connection
	otel otel.Otel
}

func NewTemplate(db *postgres.Connection, otel otel.Otel) Template {
	return &templateRepositoryImpl{
		Repository: gRepo.NewRepository[model.Template](model.TemplateEntityName, model.TemplateTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type Override interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Override, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Override, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Upsert(ctx context.Context, override model.Override, conflictColumns, updateColumns []string) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	ReplaceMonth(ctx context.Context, staffID, firstDay, lastDay string, overrides []model.Override) error
}

type overrideRepositoryImpl struct {
	gRepo.Repository[model.Override]
	db   *postgres.Connection
	otel otel.Otel
}

func NewOverride(db *postgres.Connection, otel otel.Otel) Override {
	return &overrideRepositoryImpl{
		Repository: gRepo.NewRepository[model.Override](model.OverrideEntityName, model.OverrideTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ReplaceMonth swaps out every override a staff member has between firstDay
// and lastDay for the given set, atomically. Callers pass the full month so
// days without an explicit edit end up overridden too.
func (repo *overrideRepositoryImpl) ReplaceMonth(ctx context.Context, staffID, firstDay, lastDay string, overrides []model.Override) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.OverrideEntityName+".ReplaceMonth")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.Beginx()
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to rollback month replace")
			}
		}
	}()

	monthFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStaffID,
				Value:    staffID,
				Operator: gDto.FilterOperatorEq,
			},
			gDto.Filter{
				ArgName:  "day_start",
				Field:    model.FieldDay,
				Value:    firstDay,
				Operator: gDto.FilterOperatorGreaterEq,
			},
			gDto.Filter{
				ArgName:  "day_end",
				Field:    model.FieldDay,
				Value:    lastDay,
				Operator: gDto.FilterOperatorLessEq,
			},
		},
	}

	if err = repo.DeleteTx(ctx, tx, monthFilter); err != nil {
		log.Error().Err(err).Msg("failed to clear month overrides")

		return fmt.Errorf("failed to clear month overrides: %w", err)
	}

	if len(overrides) > 0 {
		if err = repo.InsertBulkTx(ctx, tx, overrides); err != nil {
			log.Error().Err(err).Msg("failed to insert month overrides")

			return fmt.Errorf("failed to insert month overrides: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit month replace")

		return fmt.Errorf("failed to commit month replace: %w", err)
	}

	return nil
}
