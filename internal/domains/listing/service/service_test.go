package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/Suya678/Surf/config"
	"github.com/Suya678/Surf/infras/geocode"
	geocodeMocks "github.com/Suya678/Surf/infras/geocode/mocks"
	"github.com/Suya678/Surf/infras/otel/mocks"
	s3Mocks "github.com/Suya678/Surf/infras/s3/mocks"
	listingMocks "github.com/Suya678/Surf/internal/domains/listing/mocks"
	"github.com/Suya678/Surf/internal/domains/listing/model"
	"github.com/Suya678/Surf/internal/domains/listing/model/dto"
	"github.com/Suya678/Surf/internal/domains/listing/service"
	cacheMocks "github.com/Suya678/Surf/shared/cache/mocks"
	gDto "github.com/Suya678/Surf/shared/dto"
	"github.com/Suya678/Surf/shared/failure"
)

type listingFixture struct {
	repo     *listingMocks.MockListing
	geocoder *geocodeMocks.MockGeocoder
	s3       *s3Mocks.MockS3
	cache    *cacheMocks.MockRedisCache
	svc      service.Listing
}

func newListingFixture(t *testing.T) *listingFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &listingFixture{
		repo:     listingMocks.NewMockListing(ctrl),
		geocoder: geocodeMocks.NewMockGeocoder(ctrl),
		s3:       s3Mocks.NewMockS3(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.geocoder, f.s3, cfg, f.cache, mocks.NewOtel())

	return f
}

func strPtr(s string) *string { return &s }

func plainQueryFilters(filter gDto.FilterGroup) []gDto.Filter {
	var plain []gDto.Filter

	for _, raw := range filter.Filters {
		if f, ok := raw.(gDto.Filter); ok && f.Operator == gDto.FilterPlainQuery {
			plain = append(plain, f)
		}
	}

	return plain
}

func TestListingService_Create(t *testing.T) {
	geocodeResult := &geocode.Result{
		Latitude:         49.2827,
		Longitude:        -123.1207,
		FormattedAddress: "123 Main St, Vancouver, BC V6B 1A1, Canada",
	}

	validReq := dto.CreateListingRequest{
		Title:      "Cozy Downtown Condo",
		Address:    "123 Main St",
		City:       "Vancouver",
		Province:   "British Columbia",
		PostalCode: "V6B 1A1",
		GuestLimit: 4,
		URL:        "https://example.com/photo.jpg",
	}

	tests := []struct {
		name      string
		req       dto.CreateListingRequest
		setupMock func(f *listingFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req:  validReq,
			setupMock: func(f *listingFixture) {
				f.geocoder.EXPECT().
					Resolve(gomock.Any(), "123 Main St", "Vancouver", "British Columbia", "V6B 1A1").
					Return(geocodeResult, nil)

				f.repo.EXPECT().
					CreateWithCoordinates(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				f.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "successful creation with availability window",
			req: func() dto.CreateListingRequest {
				r := validReq
				r.AvailableFrom = strPtr("2026-06-01")
				r.AvailableTo = strPtr("2026-09-01")

				return r
			}(),
			setupMock: func(f *listingFixture) {
				f.geocoder.EXPECT().
					Resolve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(geocodeResult, nil)

				f.repo.EXPECT().
					CreateWithCoordinates(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, listing model.Listing, _ model.Coordinates) error {
						assert.NotNil(t, listing.AvailableFrom)
						assert.NotNil(t, listing.AvailableTo)
						assert.True(t, listing.AvailableFrom.Before(*listing.AvailableTo))

						return nil
					})

				f.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "window dates out of order",
			req: func() dto.CreateListingRequest {
				r := validReq
				r.AvailableFrom = strPtr("2026-09-01")
				r.AvailableTo = strPtr("2026-06-01")

				return r
			}(),
			setupMock: func(f *listingFixture) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "address could not be verified",
			req:  validReq,
			setupMock: func(f *listingFixture) {
				f.geocoder.EXPECT().
					Resolve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, geocode.ErrUnverifiable)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "geocoding service down",
			req:  validReq,
			setupMock: func(f *listingFixture) {
				f.geocoder.EXPECT().
					Resolve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, geocode.ErrUnavailable)
			},
			wantErr:  true,
			wantCode: 503,
		},
		{
			name: "repository error",
			req:  validReq,
			setupMock: func(f *listingFixture) {
				f.geocoder.EXPECT().
					Resolve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(geocodeResult, nil)

				f.repo.EXPECT().
					CreateWithCoordinates(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newListingFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(context.Background(), tt.req, "user-id")

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "V6B1A1", res.PostalCode)
				assert.Equal(t, geocodeResult.FormattedAddress, res.VerifiedAddress)
				assert.Equal(t, &geocodeResult.Latitude, res.Latitude)
			}
		})
	}
}

func TestListingService_Update(t *testing.T) {
	existing := model.Listing{
		ID:         "listing-id",
		UserID:     "owner-id",
		Title:      "Cozy Downtown Condo",
		Address:    "123 Main St",
		City:       "Vancouver",
		Province:   "British Columbia",
		PostalCode: "V6B1A1",
		GuestLimit: 4,
		URL:        "https://example.com/photo.jpg",
	}

	sameAddressReq := dto.UpdateListingRequest{
		Title:      "Renamed Condo",
		Address:    "123 Main St",
		City:       "Vancouver",
		Province:   "British Columbia",
		PostalCode: "V6B 1A1",
		GuestLimit: 6,
		URL:        "https://example.com/photo.jpg",
	}

	newAddressReq := dto.UpdateListingRequest{
		Title:      "Renamed Condo",
		Address:    "456 Oak Ave",
		City:       "Victoria",
		Province:   "British Columbia",
		PostalCode: "V8W 1P6",
		GuestLimit: 6,
		URL:        "https://example.com/photo.jpg",
	}

	tests := []struct {
		name      string
		req       dto.UpdateListingRequest
		userID    string
		setupMock func(f *listingFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name:   "update without address change skips geocoding",
			req:    sameAddressReq,
			userID: "owner-id",
			setupMock: func(f *listingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)

				// No geocoder expectation: the address is unchanged.
				f.repo.EXPECT().
					UpdateWithCoordinates(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil()).
					Return(nil)

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)

				f.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name:   "update with address change re-geocodes",
			req:    newAddressReq,
			userID: "owner-id",
			setupMock: func(f *listingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)

				f.geocoder.EXPECT().
					Resolve(gomock.Any(), "456 Oak Ave", "Victoria", "British Columbia", "V8W 1P6").
					Return(&geocode.Result{Latitude: 48.4284, Longitude: -123.3656}, nil)

				f.repo.EXPECT().
					UpdateWithCoordinates(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Not(gomock.Nil())).
					Return(nil)

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)

				f.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name:   "listing not found",
			req:    sameAddressReq,
			userID: "owner-id",
			setupMock: func(f *listingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Listing{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name:   "someone else's listing reported as missing",
			req:    sameAddressReq,
			userID: "other-user",
			setupMock: func(f *listingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name:   "new address fails verification",
			req:    newAddressReq,
			userID: "owner-id",
			setupMock: func(f *listingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)

				f.geocoder.EXPECT().
					Resolve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, geocode.ErrUnverifiable)
			},
			wantErr:  true,
			wantCode: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newListingFixture(t)
			tt.setupMock(f)

			_, err := f.svc.Update(context.Background(), tt.req, "listing-id", tt.userID)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestListingService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *listingFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful deletion",
			setupMock: func(f *listingFixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				f.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				f.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "listing not found or not owned",
			setupMock: func(f *listingFixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "delete error",
			setupMock: func(f *listingFixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				f.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newListingFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(context.Background(), "listing-id", "user-id")

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestListingService_Search(t *testing.T) {
	listings := []model.Listing{
		{ID: "listing-1", Title: "Beach House", City: "Tofino"},
		{ID: "listing-2", Title: "Surf Shack", City: "Tofino"},
	}

	tests := []struct {
		name      string
		req       dto.SearchListingsRequest
		setupMock func(f *listingFixture)
		wantErr   bool
		wantCode  int
		wantTotal int
	}{
		{
			name: "search without dates",
			req:  dto.SearchListingsRequest{City: "Tofino"},
			setupMock: func(f *listingFixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Listing, error) {
						assert.Empty(t, plainQueryFilters(filter), "no availability conditions without dates")

						return listings, nil
					})

				f.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:   false,
			wantTotal: 2,
		},
		{
			name: "search with availability dates",
			req: dto.SearchListingsRequest{
				City:     "Tofino",
				Checkin:  "2026-07-01",
				Checkout: "2026-07-08",
				Guests:   2,
			},
			setupMock: func(f *listingFixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Listing, error) {
						// One condition for the availability window, one
						// excluding overlapping bookings, both bound to the
						// parsed dates.
						plain := plainQueryFilters(filter)
						assert.Len(t, plain, 2)

						checkin := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
						checkout := time.Date(2026, 7, 8, 0, 0, 0, 0, time.UTC)

						for _, p := range plain {
							assert.Equal(t, checkin, p.Args["checkin"])
							assert.Equal(t, checkout, p.Args["checkout"])
						}

						return listings[:1], nil
					})

				f.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:   false,
			wantTotal: 1,
		},
		{
			name: "cache hit skips the repository",
			req:  dto.SearchListingsRequest{City: "Tofino"},
			setupMock: func(f *listingFixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:      "city is required",
			req:       dto.SearchListingsRequest{Checkin: "2026-07-01", Checkout: "2026-07-08"},
			setupMock: func(f *listingFixture) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name:      "checkin without checkout",
			req:       dto.SearchListingsRequest{City: "Tofino", Checkin: "2026-07-01"},
			setupMock: func(f *listingFixture) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name:      "checkout before checkin",
			req:       dto.SearchListingsRequest{City: "Tofino", Checkin: "2026-07-08", Checkout: "2026-07-01"},
			setupMock: func(f *listingFixture) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name:      "malformed date",
			req:       dto.SearchListingsRequest{City: "Tofino", Checkin: "July 1", Checkout: "2026-07-08"},
			setupMock: func(f *listingFixture) {},
			wantErr:   true,
			wantCode:  400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newListingFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Search(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				if tt.wantTotal != 0 {
					assert.Equal(t, tt.wantTotal, res.TotalData)
				}
			}
		})
	}
}

func TestListingService_MyListings(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *listingFixture)
		wantErr   bool
		wantTotal int
	}{
		{
			name: "cache hit",
			setupMock: func(f *listingFixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, listings from db",
			setupMock: func(f *listingFixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Listing{{ID: "listing-1", UserID: "user-id"}}, nil)

				f.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:   false,
			wantTotal: 1,
		},
		{
			name: "repository error",
			setupMock: func(f *listingFixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newListingFixture(t)
			tt.setupMock(f)

			res, err := f.svc.MyListings(context.Background(), "user-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.wantTotal != 0 {
					assert.Equal(t, tt.wantTotal, res.TotalData)
				}
			}
		})
	}
}
