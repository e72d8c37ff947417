package dto_test

import (
	"testing"
	"time"

	"github.com/Suya678/Surf/internal/domains/booking/model"
	"github.com/Suya678/Surf/internal/domains/booking/model/dto"
	"github.com/Suya678/Surf/shared/constant"
	gModel "github.com/Suya678/Surf/shared/model"
	"github.com/Suya678/Surf/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateBookingRequest{
		ListingID: "listing-id",
		StartDate: "2026-07-01",
		EndDate:   "2026-07-05",
	}

	startDate := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC)
	userID := "guest-id"

	booking := req.ToModel(userID, startDate, endDate)

	assert.NotEmpty(t, booking.ID, "expected ID to be generated")
	assert.Equal(t, req.ListingID, booking.ListingID)
	assert.Equal(t, userID, booking.UserID)
	assert.Equal(t, startDate, booking.StartDate)
	assert.Equal(t, endDate, booking.EndDate)
	assert.Equal(t, constant.BookingStatusPending, booking.Status, "new bookings start out pending")
	assert.Equal(t, userID, booking.CreatedBy)
	assert.Equal(t, userID, booking.ModifiedBy)
	assert.False(t, booking.CreatedAt.IsZero(), "expected CreatedAt to be set")
	assert.False(t, booking.ModifiedAt.IsZero(), "expected ModifiedAt to be set")
}

func TestBookingResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	title := "Downtown loft"
	guestName := "Sam Guest"

	bookingModel := model.Booking{
		ID:           "booking-id",
		ListingID:    "listing-id",
		UserID:       "guest-id",
		StartDate:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC),
		Status:       constant.BookingStatusApproved,
		ListingTitle: &title,
		GuestName:    &guestName,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "guest-id",
			ModifiedBy: "host-id",
		},
	}

	var response dto.BookingResponse
	response.FromModel(bookingModel)

	assert.Equal(t, bookingModel.ID, response.ID)
	assert.Equal(t, bookingModel.ListingID, response.ListingID)
	assert.Equal(t, bookingModel.UserID, response.UserID)
	assert.Equal(t, "2026-07-01", response.StartDate)
	assert.Equal(t, "2026-07-05", response.EndDate)
	assert.Equal(t, constant.BookingStatusApproved, response.Status)
	assert.Equal(t, &title, response.ListingTitle)
	assert.Equal(t, &guestName, response.GuestName)
	assert.Nil(t, response.ListingCity)
}

func TestGetBookingsResponse_FromModels(t *testing.T) {
	now := timezone.Now()
	bookings := []model.Booking{
		{
			ID:        "booking-1",
			ListingID: "listing-id",
			UserID:    "guest-id",
			StartDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC),
			Status:    constant.BookingStatusPending,
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
				CreatedBy:  "guest-id",
				ModifiedBy: "guest-id",
			},
		},
		{
			ID:        "booking-2",
			ListingID: "listing-id",
			UserID:    "guest-id",
			StartDate: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC),
			Status:    constant.BookingStatusCompleted,
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
				CreatedBy:  "guest-id",
				ModifiedBy: "guest-id",
			},
		},
	}

	var response dto.GetBookingsResponse
	response.FromModels(bookings)

	assert.Equal(t, 2, response.TotalData)
	assert.Len(t, response.Bookings, 2)
	assert.Equal(t, "booking-1", response.Bookings[0].ID)
	assert.Equal(t, "booking-2", response.Bookings[1].ID)
	assert.Equal(t, constant.BookingStatusCompleted, response.Bookings[1].Status)
}

func TestGetBookingsResponse_FromModels_Empty(t *testing.T) {
	var response dto.GetBookingsResponse
	response.FromModels(nil)

	assert.Equal(t, 0, response.TotalData)
	assert.Empty(t, response.Bookings)
}
