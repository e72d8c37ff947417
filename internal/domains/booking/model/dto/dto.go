package dto

import (
	"time"

	"github.com/Suya678/Surf/internal/domains/booking/model"
	"github.com/Suya678/Surf/shared/constant"
	gDto "github.com/Suya678/Surf/shared/dto"
	gModel "github.com/Suya678/Surf/shared/model"
	"github.com/Suya678/Surf/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ListingID string `json:"listing_id" validate:"required,uuid"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02"`
}

func (r *CreateBookingRequest) ToModel(userID string, startDate, endDate time.Time) model.Booking {
	return model.Booking{
		ID:        uuid.NewString(),
		ListingID: r.ListingID,
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    constant.BookingStatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Approved Rejected"`
}

type BookingResponse struct {
	ID              string  `json:"id"`
	ListingID       string  `json:"listing_id"`
	UserID          string  `json:"user_id"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Status          string  `json:"status"`
	ListingTitle    *string `json:"listing_title,omitempty"`
	ListingCity     *string `json:"listing_city,omitempty"`
	ListingProvince *string `json:"listing_province,omitempty"`
	ListingImage    *string `json:"listing_image,omitempty"`
	GuestName       *string `json:"guest_name,omitempty"`
	GuestEmail      *string `json:"guest_email,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.Booking) {
	r.ID = booking.ID
	r.ListingID = booking.ListingID
	r.UserID = booking.UserID
	r.StartDate = booking.StartDate.Format(constant.DateOnlyFormat)
	r.EndDate = booking.EndDate.Format(constant.DateOnlyFormat)
	r.Status = booking.Status
	r.ListingTitle = booking.ListingTitle
	r.ListingCity = booking.ListingCity
	r.ListingProvince = booking.ListingProvince
	r.ListingImage = booking.ListingImage
	r.GuestName = booking.GuestName
	r.GuestEmail = booking.GuestEmail
	r.Metadata.FromModel(booking.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking) {
	r.TotalData = len(models)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
