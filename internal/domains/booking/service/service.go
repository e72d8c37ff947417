package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Suya678/Surf/config"
	"github.com/Suya678/Surf/infras/otel"
	"github.com/Suya678/Surf/internal/domains/booking/model"
	"github.com/Suya678/Surf/internal/domains/booking/model/dto"
	"github.com/Suya678/Surf/internal/domains/booking/repository"
	listingModel "github.com/Suya678/Surf/internal/domains/listing/model"
	listingRepo "github.com/Suya678/Surf/internal/domains/listing/repository"
	"github.com/Suya678/Surf/shared"
	"github.com/Suya678/Surf/shared/cache"
	"github.com/Suya678/Surf/shared/constant"
	"github.com/Suya678/Surf/shared/daterange"
	gDto "github.com/Suya678/Surf/shared/dto"
	"github.com/Suya678/Surf/shared/failure"
	"github.com/Suya678/Surf/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBookings = "booking:gets"
)

// StatusBucket names the guest-facing booking listings.
type StatusBucket string

const (
	BucketPending  StatusBucket = "pending"
	BucketApproved StatusBucket = "approved"
	BucketPast     StatusBucket = "past"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest, userID string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id, userID string) error
	Mine(ctx context.Context, userID string, bucket StatusBucket) (dto.GetBookingsResponse, error)
	Requests(ctx context.Context, hostID string) (dto.GetBookingsResponse, error)
	ListingRequests(ctx context.Context, listingID, hostID string) (dto.GetBookingsResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id, hostID string) error
	RunCompletionSweeper(ctx context.Context)
}

type serviceImpl struct {
	repo        repository.Booking
	listingRepo listingRepo.Listing
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Booking, listingRepo listingRepo.Listing, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:        repo,
		listingRepo: listingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// Create records a Pending booking request. Overlapping Pending or
// Approved requests on the same listing are allowed at the write path; the
// host decides among them. Availability is filtered at search time only.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest, userID string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	r, err := daterange.Parse(req.StartDate, req.EndDate)
	if err != nil {
		if errors.Is(err, daterange.ErrInvalidOrder) {
			return res, failure.BadRequestFromString("end date must be after start date") //nolint:wrapcheck
		}

		return res, failure.BadRequestFromString("invalid date format, please use YYYY-MM-DD") //nolint:wrapcheck
	}

	listingExists, err := s.listingRepo.Exist(ctx, shared.FilterByID(req.ListingID, listingModel.FieldID, listingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if listing exists")

		return res, fmt.Errorf("failed to check if listing exists: %w", err)
	}

	if !listingExists {
		return res, failure.NotFound("listing not found") //nolint:wrapcheck
	}

	booking := req.ToModel(userID, r.Start, r.End)

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, failure.NotFoundOnFkViolation(err, "listing not found") //nolint:wrapcheck
	}

	res.FromModel(booking)

	s.invalidateBookingCaches(ctx)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	ownFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	}

	exist, err := s.repo.Exist(ctx, ownFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	// Someone else's booking looks the same as a missing one.
	if !exist {
		return failure.NotFound("booking not found") //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, ownFilter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidateBookingCaches(ctx)

	return nil
}

// Mine lists the caller's bookings by bucket: pending, approved, or past
// (Completed and Rejected).
func (s *serviceImpl) Mine(ctx context.Context, userID string, bucket StatusBucket) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Mine")
	defer scope.End()
	defer scope.TraceIfError(err)

	filters := []any{
		gDto.Filter{
			Field:    model.FieldUserID,
			Operator: gDto.FilterOperatorEq,
			Value:    userID,
			Table:    model.TableName,
		},
	}

	sortDir := "ASC"

	switch bucket {
	case BucketPending:
		filters = append(filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    constant.BookingStatusPending,
			Table:    model.TableName,
		})
	case BucketApproved:
		filters = append(filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    constant.BookingStatusApproved,
			Table:    model.TableName,
		})
	case BucketPast:
		filters = append(filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorIn,
			Value:    []string{constant.BookingStatusCompleted, constant.BookingStatusRejected},
			Table:    model.TableName,
		})
		sortDir = "DESC"
	default:
		return res, failure.BadRequestFromString("unknown booking status bucket") //nolint:wrapcheck
	}

	filter := gDto.FilterGroup{Filters: filters}
	params := gDto.QueryParams{SortBy: model.FieldStartDate, SortDir: sortDir}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetBookings, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// Requests lists Pending bookings across every listing the host owns.
func (s *serviceImpl) Requests(ctx context.Context, hostID string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Requests")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				ArgName:  "owner_id",
				Field:    listingModel.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    hostID,
				Table:    listingModel.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    constant.BookingStatusPending,
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldStartDate, SortDir: "ASC"}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking requests")

		return res, fmt.Errorf("failed to get booking requests: %w", err)
	}

	res.FromModels(models)

	return res, nil
}

// ListingRequests lists every booking on one listing, guarded by listing
// ownership.
func (s *serviceImpl) ListingRequests(ctx context.Context, listingID, hostID string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListingRequests")
	defer scope.End()
	defer scope.TraceIfError(err)

	ownerFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    listingModel.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    listingID,
				Table:    listingModel.TableName,
			},
			gDto.Filter{
				ArgName:  "owner_id",
				Field:    listingModel.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    hostID,
				Table:    listingModel.TableName,
			},
		},
	}

	owned, err := s.listingRepo.Exist(ctx, ownerFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check listing ownership")

		return res, fmt.Errorf("failed to check listing ownership: %w", err)
	}

	if !owned {
		return res, failure.NotFound("listing not found") //nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldListingID,
				Operator: gDto.FilterOperatorEq,
				Value:    listingID,
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldStartDate, SortDir: "ASC"}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get listing requests")

		return res, fmt.Errorf("failed to get listing requests: %w", err)
	}

	res.FromModels(models)

	return res, nil
}

// UpdateStatus lets the listing owner approve or reject a request. A
// booking on someone else's listing is reported as missing.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id, hostID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	updated, err := s.repo.UpdateStatusForOwner(ctx, id, hostID, req.Status, hostID)
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if !updated {
		return failure.NotFound("booking not found") //nolint:wrapcheck
	}

	s.invalidateBookingCaches(ctx)

	return nil
}

// RunCompletionSweeper periodically moves Approved bookings whose end date
// has passed to Completed. Blocks until ctx is done.
func (s *serviceImpl) RunCompletionSweeper(ctx context.Context) {
	interval := time.Duration(s.cfg.Booking.CompletionSweepMinutes) * time.Minute

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Dur("interval", interval).Msg("Booking completion sweeper started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Booking completion sweeper stopped")

			return
		case <-ticker.C:
			s.sweepCompleted(ctx)
		}
	}
}

func (s *serviceImpl) sweepCompleted(ctx context.Context) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sweepCompleted")
	defer scope.End()

	affected, err := s.repo.CompleteExpired(ctx, timezone.Now())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to sweep completed bookings")

		return
	}

	if affected > 0 {
		log.Info().Int64("completed", affected).Msg("Swept expired bookings")

		s.invalidateBookingCaches(ctx)
	}
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetBookings)
	}()
}
