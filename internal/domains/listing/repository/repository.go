package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/Suya678/Surf/infras/otel"
	"github.com/Suya678/Surf/infras/postgres"
	"github.com/Suya678/Surf/internal/domains/listing/model"
	"github.com/Suya678/Surf/shared/constant"
	gDto "github.com/Suya678/Surf/shared/dto"
	"github.com/Suya678/Surf/shared/logger"
	gRepo "github.com/Suya678/Surf/shared/repository"
)

type Listing interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Listing, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Listing, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	CreateWithCoordinates(ctx context.Context, listing model.Listing, coordinates model.Coordinates) error
	UpdateWithCoordinates(ctx context.Context, req map[string]any, filter gDto.FilterGroup, coordinates *model.Coordinates) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Listing]
	coordinates gRepo.Repository[model.Coordinates]
	db          *postgres.Connection
	otel        otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Listing {
	return &repositoryImpl{
		Repository:  gRepo.NewRepository[model.Listing](model.EntityName, model.TableName, model.FieldID, db, otel),
		coordinates: gRepo.NewRepository[model.Coordinates](model.CoordinatesEntityName, model.CoordinatesTableName, model.FieldCoordinatesListingID, db, otel),
		db:          db,
		otel:        otel,
	}
}

// CreateWithCoordinates inserts the listing row and its coordinates row in
// one transaction. Both succeed or both roll back.
func (repo *repositoryImpl) CreateWithCoordinates(ctx context.Context, listing model.Listing, coordinates model.Coordinates) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".listing.CreateWithCoordinates")
	defer scope.End()
	defer scope.TraceIfError(err)

	sqltx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	defer func() {
		if err != nil {
			if rbErr := sqltx.Rollback(); rbErr != nil {
				logger.ErrorWithStack(rbErr)
			}
		}
	}()

	if err = repo.InsertTx(ctx, sqltx, listing); err != nil {
		return err
	}

	if err = repo.coordinates.InsertTx(ctx, sqltx, coordinates); err != nil {
		return err
	}

	if err = sqltx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction (%s): %w", model.EntityName, err)
	}

	return nil
}

// UpdateWithCoordinates updates the listing row and, when new coordinates
// are given, the coordinates row, atomically.
func (repo *repositoryImpl) UpdateWithCoordinates(ctx context.Context, req map[string]any, filter gDto.FilterGroup, coordinates *model.Coordinates) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".listing.UpdateWithCoordinates")
	defer scope.End()
	defer scope.TraceIfError(err)

	sqltx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	defer func() {
		if err != nil {
			if rbErr := sqltx.Rollback(); rbErr != nil {
				logger.ErrorWithStack(rbErr)
			}
		}
	}()

	if err = repo.UpdateTx(ctx, sqltx, req, filter); err != nil {
		return err
	}

	if coordinates != nil {
		coordinateFields := map[string]any{
			model.FieldLatitude:      coordinates.Latitude,
			model.FieldLongitude:     coordinates.Longitude,
			constant.FieldModifiedAt: coordinates.ModifiedAt,
			constant.FieldModifiedBy: coordinates.ModifiedBy,
		}

		coordinateFilter := gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{
					Field:    model.FieldCoordinatesListingID,
					Operator: gDto.FilterOperatorEq,
					Value:    coordinates.ListingID,
					Table:    model.CoordinatesTableName,
				},
			},
		}

		if err = repo.coordinates.UpdateTx(ctx, sqltx, coordinateFields, coordinateFilter); err != nil {
			return err
		}
	}

	if err = sqltx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction (%s): %w", model.EntityName, err)
	}

	return nil
}
