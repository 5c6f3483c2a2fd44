package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"

	"github.com/lib/pq"

	"pomade/infras/otel"
	"pomade/infras/postgres"
	"pomade/internal/domains/appointment/model"
	"pomade/shared/constant"
	gDto "pomade/shared/dto"
	gRepo "pomade/shared/repository"
)

// activeSlotConstraint is the partial unique index on (staff_id, day,
// start_time) over active statuses. It is the database-side half of the
// booking guard.
const activeSlotConstraint = "idx_appointments_active_slot"

type Appointment interface {
	Insert(ctx context.Context, model model.Appointment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Appointment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Appointment, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Appointment]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Appointment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Appointment](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// IsSlotTaken reports whether err is the unique violation raised by the
// active-slot index, meaning the write lost the race for the slot to a
// concurrent booking.
func IsSlotTaken(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	return string(pqErr.Code) == constant.PqErrorCodeUniqueViolation && pqErr.Constraint == activeSlotConstraint
}

// ActiveSlotFilter matches the appointments that still hold the given slot.
func ActiveSlotFilter(staffID, day, startTime string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStaffID,
				Value:    staffID,
				Operator: gDto.FilterOperatorEq,
			},
			gDto.Filter{
				Field:    model.FieldDay,
				Value:    day,
				Operator: gDto.FilterOperatorEq,
			},
			gDto.Filter{
				Field:    model.FieldStartTime,
				Value:    startTime,
				Operator: gDto.FilterOperatorEq,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.ActiveStatuses(),
				Operator: gDto.FilterOperatorIn,
			},
		},
	}
}

// ActiveDayFilter matches every active appointment of one staff member on
// one day.
func ActiveDayFilter(staffID, day string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStaffID,
				Value:    staffID,
				Operator: gDto.FilterOperatorEq,
			},
			gDto.Filter{
				Field:    model.FieldDay,
				Value:    day,
				Operator: gDto.FilterOperatorEq,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.ActiveStatuses(),
				Operator: gDto.FilterOperatorIn,
			},
		},
	}
}

// ActiveRangeFilter matches every active appointment of one staff member
// between firstDay and lastDay inclusive.
func ActiveRangeFilter(staffID, firstDay, lastDay string) gDto.FilterGroup {
	return gDto.FilterGroup{
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
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.ActiveStatuses(),
				Operator: gDto.FilterOperatorIn,
			},
		},
	}
}
