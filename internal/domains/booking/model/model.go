package model

import (
	"time"

	"github.com/Suya678/Surf/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID        = "id"
	FieldListingID = "listing_id"
	FieldUserID    = "user_id"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
	FieldStatus    = "status"
)

// Booking is a half-open date range [start_date, end_date) requested by a
// guest against a listing. The listing columns come from the join and are
// read only.
type Booking struct {
	ID              string    `db:"id"`
	ListingID       string    `db:"listing_id"`
	UserID          string    `db:"user_id"`
	StartDate       time.Time `db:"start_date"`
	EndDate         time.Time `db:"end_date"`
	Status          string    `db:"status"`
	ListingTitle    *string   `db:"listing_title"    table:"listings" column:"title"`
	ListingCity     *string   `db:"listing_city"     table:"listings" column:"city"`
	ListingProvince *string   `db:"listing_province" table:"listings" column:"province"`
	ListingImage    *string   `db:"listing_image"    table:"listings" column:"url"`
	GuestName       *string   `db:"guest_name"       table:"users"    column:"full_name"`
	GuestEmail      *string   `db:"guest_email"      table:"users"    column:"email"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN listings ON listings.id = bookings.listing_id JOIN users ON users.id = bookings.user_id"
}
