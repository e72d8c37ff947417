package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Suya678/Surf/config"
	"github.com/Suya678/Surf/infras/geocode"
	"github.com/Suya678/Surf/infras/otel"
	"github.com/Suya678/Surf/infras/s3"
	"github.com/Suya678/Surf/internal/domains/listing/model"
	"github.com/Suya678/Surf/internal/domains/listing/model/dto"
	"github.com/Suya678/Surf/internal/domains/listing/repository"
	"github.com/Suya678/Surf/shared"
	"github.com/Suya678/Surf/shared/cache"
	"github.com/Suya678/Surf/shared/constant"
	"github.com/Suya678/Surf/shared/daterange"
	gDto "github.com/Suya678/Surf/shared/dto"
	"github.com/Suya678/Surf/shared/failure"
	gModel "github.com/Suya678/Surf/shared/model"
	"github.com/Suya678/Surf/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheSearchListings = "listing:search"
	cacheMyListings     = "listing:mine"

	photoDirectory = "listings"
)

// availabilityWindowCondition keeps a listing only when it declares no
// window or the requested range falls entirely inside it.
const availabilityWindowCondition = `(listings.available_from IS NULL OR (listings.available_from <= :checkin AND listings.available_to >= :checkout))`

// noConflictCondition excludes a listing when any Pending or Approved
// booking overlaps the requested half-open range. Back-to-back stays are
// not a conflict.
const noConflictCondition = `NOT EXISTS (
	SELECT 1 FROM bookings b
	WHERE b.listing_id = listings.id
	  AND (b.status = 'Pending' OR b.status = 'Approved')
	  AND b.start_date < :checkout AND b.end_date > :checkin
)`

type Listing interface {
	Create(ctx context.Context, req dto.CreateListingRequest, userID string) (dto.CreateListingResponse, error)
	Update(ctx context.Context, req dto.UpdateListingRequest, id, userID string) (dto.ListingResponse, error)
	Delete(ctx context.Context, id, userID string) error
	MyListings(ctx context.Context, userID string) (dto.GetListingsResponse, error)
	Search(ctx context.Context, req dto.SearchListingsRequest) (dto.GetListingsResponse, error)
	UploadPhoto(ctx context.Context, req dto.UploadPhotoRequest, userID string) (dto.UploadPhotoResponse, error)
}

type serviceImpl struct {
	repo     repository.Listing
	geocoder geocode.Geocoder
	s3       s3.S3
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Listing, geocoder geocode.Geocoder, s3svc s3.S3, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Listing {
	return &serviceImpl{
		repo:     repo,
		geocoder: geocoder,
		s3:       s3svc,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateListingRequest, userID string) (res dto.CreateListingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	window, err := parseWindow(req.AvailableFrom, req.AvailableTo)
	if err != nil {
		return res, err
	}

	result, err := s.verifyAddress(ctx, req.Address, req.City, req.Province, req.PostalCode)
	if err != nil {
		return res, err
	}

	listing := req.ToModel(userID, window.From, window.To)

	coordinates := model.Coordinates{
		ListingID: listing.ID,
		Latitude:  result.Latitude,
		Longitude: result.Longitude,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}

	if err = s.repo.CreateWithCoordinates(ctx, listing, coordinates); err != nil {
		log.Error().Err(err).Msg("failed to create listing")

		return res, failure.NotFoundOnFkViolation(err, "user not found") //nolint:wrapcheck
	}

	res.FromModelAndGeocode(listing, result)

	s.invalidateListingCaches(ctx)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateListingRequest, id, userID string) (res dto.ListingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	existing, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get listing")

		return res, fmt.Errorf("failed to get listing: %w", err)
	}

	// A listing owned by someone else is reported as missing, so listing
	// IDs cannot be probed.
	if existing.ID == constant.Empty || existing.UserID != userID {
		return res, failure.NotFound("listing not found") //nolint:wrapcheck
	}

	var coordinates *model.Coordinates

	if req.AddressChanged(existing) {
		result, err := s.verifyAddress(ctx, req.Address, req.City, req.Province, req.PostalCode)
		if err != nil {
			return res, err
		}

		coordinates = &model.Coordinates{
			ListingID: id,
			Latitude:  result.Latitude,
			Longitude: result.Longitude,
			Metadata: gModel.Metadata{
				ModifiedAt: timezone.Now(),
				ModifiedBy: userID,
			},
		}
	}

	ownerFilter := ownedListingFilter(id, userID)

	if err = s.repo.UpdateWithCoordinates(ctx, req.ToUpdateFields(userID), ownerFilter, coordinates); err != nil {
		log.Error().Err(err).Msg("failed to update listing")

		return res, fmt.Errorf("failed to update listing: %w", err)
	}

	updated, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to reload listing")

		return res, fmt.Errorf("failed to reload listing: %w", err)
	}

	res.FromModel(updated)

	s.invalidateListingCaches(ctx)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	ownerFilter := ownedListingFilter(id, userID)

	exist, err := s.repo.Exist(ctx, ownerFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if listing exists")

		return fmt.Errorf("failed to check if listing exists: %w", err)
	}

	if !exist {
		return failure.NotFound("listing not found") //nolint:wrapcheck
	}

	// Bookings and the coordinates row go with it through FK cascade.
	if err = s.repo.Delete(ctx, ownerFilter); err != nil {
		log.Error().Err(err).Msg("failed to delete listing")

		return fmt.Errorf("failed to delete listing: %w", err)
	}

	s.invalidateListingCaches(ctx)

	return nil
}

func (s *serviceImpl) MyListings(ctx context.Context, userID string) (res dto.GetListingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MyListings")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheMyListings, userID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for my listings")

		return res, nil
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldTitle, SortDir: "ASC"}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get listings")

		return res, fmt.Errorf("failed to get listings: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save listings to cache")
		}
	}()

	return res, nil
}

// Search returns listings in a city matching the optional province, guest
// count, and availability filters, ordered by title. Availability is only
// evaluated when both dates are given.
func (s *serviceImpl) Search(ctx context.Context, req dto.SearchListingsRequest) (res dto.GetListingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter, err := buildSearchFilter(req)
	if err != nil {
		return res, err
	}

	params := gDto.QueryParams{SortBy: model.FieldTitle, SortDir: "ASC"}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheSearchListings, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for listing search")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to search listings")

		return res, fmt.Errorf("failed to search listings: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save search results to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UploadPhoto(ctx context.Context, req dto.UploadPhotoRequest, userID string) (res dto.UploadPhotoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadPhoto")
	defer scope.End()
	defer scope.TraceIfError(err)

	fileName := fmt.Sprintf("%s-%s%s", userID, uuid.NewString(), filepath.Ext(req.FileHeader.Filename))

	url, err := s.s3.UploadFile(ctx, constant.Empty, photoDirectory, req.File, &req.FileHeader, fileName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload listing photo")

		return res, fmt.Errorf("failed to upload listing photo: %w", err)
	}

	res.URL = url

	return res, nil
}

func (s *serviceImpl) verifyAddress(ctx context.Context, address, city, province, postalCode string) (*geocode.Result, error) {
	result, err := s.geocoder.Resolve(ctx, address, city, province, postalCode)

	switch {
	case errors.Is(err, geocode.ErrUnverifiable):
		return nil, failure.BadRequestFromString("could not verify address, please ensure all address fields are correct") //nolint:wrapcheck
	case errors.Is(err, geocode.ErrUnavailable):
		return nil, failure.ServiceUnavailable("address verification service temporarily unavailable") //nolint:wrapcheck
	case err != nil:
		log.Error().Err(err).Msg("failed to geocode address")

		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}

	return result, nil
}

func (s *serviceImpl) invalidateListingCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheSearchListings)
		shared.InvalidateCaches(c, s.cache, cacheMyListings)
	}()
}

func ownedListingFilter(id, userID string) gDto.FilterGroup {
	return gDto.FilterGroup{
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
}

func parseWindow(from, to *string) (daterange.Window, error) {
	if from == nil || to == nil {
		return daterange.Window{}, nil
	}

	r, err := daterange.Parse(*from, *to)
	if err != nil {
		if errors.Is(err, daterange.ErrInvalidOrder) {
			return daterange.Window{}, failure.BadRequestFromString("available_to must be after available_from") //nolint:wrapcheck
		}

		return daterange.Window{}, failure.BadRequestFromString("invalid date format, please use YYYY-MM-DD") //nolint:wrapcheck
	}

	return daterange.Window{From: &r.Start, To: &r.End}, nil
}

func buildSearchFilter(req dto.SearchListingsRequest) (gDto.FilterGroup, error) {
	if req.City == constant.Empty {
		return gDto.FilterGroup{}, failure.BadRequestFromString("city is required") //nolint:wrapcheck
	}

	if (req.Checkin == constant.Empty) != (req.Checkout == constant.Empty) {
		return gDto.FilterGroup{}, failure.BadRequestFromString("checkin and checkout must be provided together") //nolint:wrapcheck
	}

	guests := req.Guests
	if guests <= 0 {
		guests = constant.DefaultValueGuests
	}

	filters := []any{
		gDto.Filter{
			Field:    model.FieldCity,
			Operator: gDto.FilterOperatorILike,
			Value:    req.City,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldGuestLimit,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    guests,
			Table:    model.TableName,
		},
	}

	if req.Province != constant.Empty {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldProvince,
			Operator: gDto.FilterOperatorILike,
			Value:    req.Province,
			Table:    model.TableName,
		})
	}

	if req.Checkin != constant.Empty {
		r, err := daterange.Parse(req.Checkin, req.Checkout)
		if err != nil {
			if errors.Is(err, daterange.ErrInvalidOrder) {
				return gDto.FilterGroup{}, failure.BadRequestFromString("checkout must be after checkin") //nolint:wrapcheck
			}

			return gDto.FilterGroup{}, failure.BadRequestFromString("invalid date format, please use YYYY-MM-DD") //nolint:wrapcheck
		}

		args := map[string]any{
			"checkin":  r.Start,
			"checkout": r.End,
		}

		filters = append(filters,
			gDto.Filter{
				Operator: gDto.FilterPlainQuery,
				Value:    availabilityWindowCondition,
				Args:     args,
			},
			gDto.Filter{
				Operator: gDto.FilterPlainQuery,
				Value:    noConflictCondition,
				Args:     args,
			},
		)
	}

	return gDto.FilterGroup{Filters: filters}, nil
}
