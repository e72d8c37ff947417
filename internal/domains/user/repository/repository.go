package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/Suya678/Surf/infras/otel"
	"github.com/Suya678/Surf/infras/postgres"
	"github.com/Suya678/Surf/internal/domains/user/model"
	"github.com/Suya678/Surf/shared/constant"
	gDto "github.com/Suya678/Surf/shared/dto"
	"github.com/Suya678/Surf/shared/logger"
	gRepo "github.com/Suya678/Surf/shared/repository"

	"github.com/jmoiron/sqlx"
)

type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
}

type UserInfo interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.UserInfo, error)
	Upsert(ctx context.Context, info model.UserInfo) error
	UpsertTx(ctx context.Context, sqltx *sqlx.Tx, info model.UserInfo) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	sqltx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	return sqltx, nil
}

type infoRepositoryImpl struct {
	gRepo.Repository[model.UserInfo]
	db   *postgres.Connection
	otel otel.Otel
}

func NewInfo(db *postgres.Connection, otel otel.Otel) UserInfo {
	return &infoRepositoryImpl{
		Repository: gRepo.NewRepository[model.UserInfo](model.InfoEntityName, model.InfoTableName, model.FieldInfoID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const upsertInfoQuery = `
	INSERT INTO user_info (id, age, gender, race, bio, created_at, modified_at, created_by, modified_by)
	VALUES (:id, :age, :gender, :race, :bio, :created_at, :modified_at, :created_by, :modified_by)
	ON CONFLICT (id) DO UPDATE SET
		age = EXCLUDED.age,
		gender = EXCLUDED.gender,
		race = EXCLUDED.race,
		bio = EXCLUDED.bio,
		modified_at = EXCLUDED.modified_at,
		modified_by = EXCLUDED.modified_by`

func (repo *infoRepositoryImpl) Upsert(ctx context.Context, info model.UserInfo) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user_info.Upsert")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, upsertInfoQuery)

	_, err = repo.db.Write.NamedExecContext(ctx, upsertInfoQuery, info)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to upsert data (%s): %w", model.InfoEntityName, err)
	}

	return nil
}

func (repo *infoRepositoryImpl) UpsertTx(ctx context.Context, sqltx *sqlx.Tx, info model.UserInfo) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user_info.UpsertTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, upsertInfoQuery)

	_, err = sqltx.NamedExecContext(ctx, upsertInfoQuery, info)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to upsert data (%s): %w", model.InfoEntityName, err)
	}

	return nil
}
