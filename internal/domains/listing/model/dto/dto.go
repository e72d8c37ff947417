package dto

import (
	"mime/multipart"
	"strings"
	"time"

	"github.com/Suya678/Surf/infras/geocode"
	"github.com/Suya678/Surf/internal/domains/listing/model"
	"github.com/Suya678/Surf/shared/constant"
	gDto "github.com/Suya678/Surf/shared/dto"
	gModel "github.com/Suya678/Surf/shared/model"
	"github.com/Suya678/Surf/shared/timezone"

	"github.com/google/uuid"
)

type CreateListingRequest struct {
	Title         string  `json:"title"          validate:"required,max=200"`
	Description   *string `json:"description"    validate:"omitempty,max=2000"`
	Address       string  `json:"address"        validate:"required,max=200"`
	City          string  `json:"city"           validate:"required,max=100"`
	Province      string  `json:"province"       validate:"required,max=100"`
	PostalCode    string  `json:"postal_code"    validate:"required,postalcode_ca"`
	GuestLimit    int     `json:"guest_limit"    validate:"required,gte=1"`
	URL           string  `json:"image"          validate:"required,url"`
	AvailableFrom *string `json:"available_from" validate:"omitempty,datetime=2006-01-02,required_with=AvailableTo"`
	AvailableTo   *string `json:"available_to"   validate:"omitempty,datetime=2006-01-02,required_with=AvailableFrom"`
}

// NormalizePostalCode strips spaces and uppercases, the stored form.
func NormalizePostalCode(postalCode string) string {
	return strings.ToUpper(strings.ReplaceAll(postalCode, " ", ""))
}

func (r *CreateListingRequest) ToModel(userID string, availableFrom, availableTo *time.Time) model.Listing {
	return model.Listing{
		ID:            uuid.NewString(),
		UserID:        userID,
		Title:         r.Title,
		Description:   r.Description,
		Address:       r.Address,
		City:          r.City,
		Province:      r.Province,
		PostalCode:    NormalizePostalCode(r.PostalCode),
		GuestLimit:    r.GuestLimit,
		URL:           r.URL,
		AvailableFrom: availableFrom,
		AvailableTo:   availableTo,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

// UpdateListingRequest carries the full replacement state of a listing.
// The availability window is not updatable through this path.
type UpdateListingRequest struct {
	Title       string  `json:"title"       validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Address     string  `json:"address"     validate:"required,max=200"`
	City        string  `json:"city"        validate:"required,max=100"`
	Province    string  `json:"province"    validate:"required,max=100"`
	PostalCode  string  `json:"postal_code" validate:"required,postalcode_ca"`
	GuestLimit  int     `json:"guest_limit" validate:"required,gte=1"`
	URL         string  `json:"image"       validate:"required,url"`
}

// AddressChanged reports whether any geocoded address field differs from
// the stored listing.
func (r *UpdateListingRequest) AddressChanged(existing model.Listing) bool {
	return existing.Address != r.Address ||
		existing.City != r.City ||
		existing.Province != r.Province ||
		existing.PostalCode != NormalizePostalCode(r.PostalCode)
}

func (r *UpdateListingRequest) ToUpdateFields(userID string) map[string]any {
	return map[string]any{
		model.FieldTitle:         r.Title,
		model.FieldDescription:   r.Description,
		model.FieldAddress:       r.Address,
		model.FieldCity:          r.City,
		model.FieldProvince:      r.Province,
		model.FieldPostalCode:    NormalizePostalCode(r.PostalCode),
		model.FieldGuestLimit:    r.GuestLimit,
		model.FieldURL:           r.URL,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: userID,
	}
}

// SearchListingsRequest holds the public search filters. City is the only
// required one; checkin and checkout come together or not at all.
type SearchListingsRequest struct {
	City     string
	Province string
	Checkin  string
	Checkout string
	Guests   int
}

type UploadPhotoRequest struct {
	File       multipart.File
	FileHeader multipart.FileHeader `validate:"mimetypes=image/jpeg image/png image/webp,maxfilesize=10"`
}

type UploadPhotoResponse struct {
	URL string `json:"url"`
}

type ListingResponse struct {
	ID            string   `json:"id"`
	UserID        string   `json:"user_id"`
	Title         string   `json:"title"`
	Description   *string  `json:"description"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	Province      string   `json:"province"`
	PostalCode    string   `json:"postal_code"`
	GuestLimit    int      `json:"guest_limit"`
	URL           string   `json:"image"`
	AvailableFrom *string  `json:"available_from"`
	AvailableTo   *string  `json:"available_to"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	gDto.Metadata
}

func (r *ListingResponse) FromModel(listing model.Listing) {
	r.ID = listing.ID
	r.UserID = listing.UserID
	r.Title = listing.Title
	r.Description = listing.Description
	r.Address = listing.Address
	r.City = listing.City
	r.Province = listing.Province
	r.PostalCode = listing.PostalCode
	r.GuestLimit = listing.GuestLimit
	r.URL = listing.URL
	r.AvailableFrom = formatDate(listing.AvailableFrom)
	r.AvailableTo = formatDate(listing.AvailableTo)
	r.Latitude = listing.Latitude
	r.Longitude = listing.Longitude
	r.Metadata.FromModel(listing.Metadata)
}

// CreateListingResponse adds the canonical address the geocoder returned.
type CreateListingResponse struct {
	ListingResponse
	VerifiedAddress string `json:"verified_address"`
}

func (r *CreateListingResponse) FromModelAndGeocode(listing model.Listing, result *geocode.Result) {
	r.ListingResponse.FromModel(listing)
	r.Latitude = &result.Latitude
	r.Longitude = &result.Longitude
	r.VerifiedAddress = result.FormattedAddress
}

type GetListingsResponse struct {
	Listings  []ListingResponse `json:"listings"`
	TotalData int               `json:"total_data"`
}

func (r *GetListingsResponse) FromModels(models []model.Listing) {
	r.TotalData = len(models)

	r.Listings = make([]ListingResponse, len(models))
	for i, mod := range models {
		r.Listings[i].FromModel(mod)
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := t.Format(constant.DateOnlyFormat)

	return &formatted
}
