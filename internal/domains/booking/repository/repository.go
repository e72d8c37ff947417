package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/Suya678/Surf/infras/otel"
	"github.com/Suya678/Surf/infras/postgres"
	"github.com/Suya678/Surf/internal/domains/booking/model"
	"github.com/Suya678/Surf/shared/constant"
	gDto "github.com/Suya678/Surf/shared/dto"
	"github.com/Suya678/Surf/shared/logger"
	gRepo "github.com/Suya678/Surf/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	UpdateStatusForOwner(ctx context.Context, bookingID, ownerID, status, modifiedBy string) (bool, error)
	CompleteExpired(ctx context.Context, now time.Time) (int64, error)
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

const updateStatusForOwnerQuery = `
	UPDATE bookings SET status = :status, modified_at = :modified_at, modified_by = :modified_by
	FROM listings
	WHERE bookings.listing_id = listings.id
	  AND bookings.id = :booking_id
	  AND listings.user_id = :owner_id`

// UpdateStatusForOwner moves a booking to the given status only when the
// caller owns the listing. Returns false when no row matched, which covers
// both a missing booking and a booking on someone else's listing.
func (repo *repositoryImpl) UpdateStatusForOwner(ctx context.Context, bookingID, ownerID, status, modifiedBy string) (updated bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.UpdateStatusForOwner")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, updateStatusForOwnerQuery)

	args := map[string]any{
		"status":      status,
		"booking_id":  bookingID,
		"owner_id":    ownerID,
		"modified_at": time.Now().UTC(),
		"modified_by": modifiedBy,
	}

	result, err := repo.db.Write.NamedExecContext(ctx, updateStatusForOwnerQuery, args)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to update booking status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

const completeExpiredQuery = `
	UPDATE bookings SET status = :completed, modified_at = :now, modified_by = :modified_by
	WHERE status = :approved AND end_date <= :now`

// CompleteExpired marks every Approved booking whose departure date has
// passed as Completed. Used by the periodic sweep.
func (repo *repositoryImpl) CompleteExpired(ctx context.Context, now time.Time) (affected int64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CompleteExpired")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, completeExpiredQuery)

	args := map[string]any{
		"completed":   constant.BookingStatusCompleted,
		"approved":    constant.BookingStatusApproved,
		"now":         now,
		"modified_by": "completion-sweep",
	}

	result, err := repo.db.Write.NamedExecContext(ctx, completeExpiredQuery, args)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to complete expired bookings: %w", err)
	}

	affected, err = result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected, nil
}
