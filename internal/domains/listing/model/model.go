package model

import (
	"time"

	"github.com/Suya678/Surf/shared/model"
)

const (
	TableName  = "listings"
	EntityName = "listing"

	FieldID            = "id"
	FieldUserID        = "user_id"
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldAddress       = "address"
	FieldCity          = "city"
	FieldProvince      = "province"
	FieldPostalCode    = "postal_code"
	FieldGuestLimit    = "guest_limit"
	FieldURL           = "url"
	FieldAvailableFrom = "available_from"
	FieldAvailableTo   = "available_to"
)

const (
	CoordinatesTableName  = "coordinates"
	CoordinatesEntityName = "coordinates"

	FieldCoordinatesListingID = "listing_id"
	FieldLatitude             = "latitude"
	FieldLongitude            = "longitude"
)

// Listing is a bookable space. The coordinates columns are hydrated from
// the one-to-one coordinates table through the join below.
type Listing struct {
	ID            string     `db:"id"`
	UserID        string     `db:"user_id"`
	Title         string     `db:"title"`
	Description   *string    `db:"description"`
	Address       string     `db:"address"`
	City          string     `db:"city"`
	Province      string     `db:"province"`
	PostalCode    string     `db:"postal_code"`
	GuestLimit    int        `db:"guest_limit"`
	URL           string     `db:"url"`
	AvailableFrom *time.Time `db:"available_from"`
	AvailableTo   *time.Time `db:"available_to"`
	Latitude      *float64   `db:"latitude"  table:"coordinates"`
	Longitude     *float64   `db:"longitude" table:"coordinates"`
	model.Metadata
}

// GetJoinQuery hydrates the coordinate columns. The join is inner on
// purpose: a listing without a coordinates row was never fully created
// and must not surface in reads.
func (Listing) GetJoinQuery() string {
	return "JOIN coordinates ON coordinates.listing_id = listings.id"
}

type Coordinates struct {
	ListingID string  `db:"listing_id"`
	Latitude  float64 `db:"latitude"`
	Longitude float64 `db:"longitude"`
	model.Metadata
}
