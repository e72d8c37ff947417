package service

import (
	"context"
	"fmt"

	"github.com/Suya678/Surf/config"
	"github.com/Suya678/Surf/infras/otel"
	"github.com/Suya678/Surf/internal/domains/user/model"
	"github.com/Suya678/Surf/internal/domains/user/model/dto"
	"github.com/Suya678/Surf/internal/domains/user/repository"
	"github.com/Suya678/Surf/shared"
	"github.com/Suya678/Surf/shared/cache"
	"github.com/Suya678/Surf/shared/constant"
	"github.com/Suya678/Surf/shared/failure"
	"github.com/Suya678/Surf/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser = "user:get"
)

type User interface {
	CheckOnboarding(ctx context.Context, userID string) (dto.OnboardingStatusResponse, error)
	UpdateOnboarding(ctx context.Context, req dto.UpdateOnboardingRequest, userID string) error
	UpdateInfo(ctx context.Context, req dto.UpdateInfoRequest, userID string) (dto.InfoResponse, error)
	Me(ctx context.Context, userID string) (dto.ProfileResponse, error)
}

type serviceImpl struct {
	repo     repository.User
	infoRepo repository.UserInfo
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.User, infoRepo repository.UserInfo, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		repo:     repo,
		infoRepo: infoRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) CheckOnboarding(ctx context.Context, userID string) (res dto.OnboardingStatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckOnboarding")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.repo.Get(ctx, shared.FilterByID(userID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found") //nolint:wrapcheck
	}

	res.OnboardingCompleted = user.OnboardingCompleted

	return res, nil
}

func (s *serviceImpl) UpdateOnboarding(ctx context.Context, req dto.UpdateOnboardingRequest, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateOnboarding")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(userID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return failure.NotFound("user not found") //nolint:wrapcheck
	}

	sqltx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin onboarding transaction")

		return fmt.Errorf("failed to begin onboarding transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := sqltx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to rollback onboarding transaction")
			}
		}
	}()

	if err = s.infoRepo.UpsertTx(ctx, sqltx, req.ToInfoModel(userID)); err != nil {
		log.Error().Err(err).Msg("failed to upsert user info")

		return failure.NotFoundOnFkViolation(err, "user not found") //nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldAccountType:         req.AccountType,
		model.FieldOnboardingCompleted: true,
		constant.FieldModifiedAt:       timezone.Now(),
		constant.FieldModifiedBy:       userID,
	}

	filter := shared.FilterByID(userID, model.FieldID, model.TableName)
	if err = s.repo.UpdateTx(ctx, sqltx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update onboarding state")

		return fmt.Errorf("failed to update onboarding state: %w", err)
	}

	if err = sqltx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit onboarding transaction")

		return fmt.Errorf("failed to commit onboarding transaction: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, userID)); err != nil {
			log.Error().Err(err).Msg("failed to delete user from cache")
		}
	}()

	return nil
}

func (s *serviceImpl) UpdateInfo(ctx context.Context, req dto.UpdateInfoRequest, userID string) (res dto.InfoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateInfo")
	defer scope.End()
	defer scope.TraceIfError(err)

	info := req.ToModel(userID)

	if err = s.infoRepo.Upsert(ctx, info); err != nil {
		log.Error().Err(err).Msg("failed to upsert user info")

		return res, failure.NotFoundOnFkViolation(err, "user not found") //nolint:wrapcheck
	}

	res.FromModel(info)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, userID)); err != nil {
			log.Error().Err(err).Msg("failed to delete user from cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Me(ctx context.Context, userID string) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Me")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetUser, userID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user profile")

		return res, nil
	}

	user, err := s.repo.Get(ctx, shared.FilterByID(userID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found") //nolint:wrapcheck
	}

	info, err := s.infoRepo.Get(ctx, shared.FilterByID(userID, model.FieldInfoID, model.InfoTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user info")

		return res, fmt.Errorf("failed to get user info: %w", err)
	}

	res.FromModels(user, info)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user profile to cache")
		}
	}()

	return res, nil
}
