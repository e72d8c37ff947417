package booking

import (
	"net/http"

	"github.com/Suya678/Surf/infras/otel"
	"github.com/Suya678/Surf/internal/domains/booking/model/dto"
	"github.com/Suya678/Surf/internal/domains/booking/service"
	"github.com/Suya678/Surf/shared/constant"
	"github.com/Suya678/Surf/shared/failure"
	"github.com/Suya678/Surf/shared/validator"
	"github.com/Suya678/Surf/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/booking", func(r chi.Router) {
		r.Post("/create", handler.Create)
		r.Delete("/{id}", handler.Delete)
		r.Put("/{id}", handler.UpdateStatus)
		r.Get("/pending", handler.Pending)
		r.Get("/approved", handler.Approved)
		r.Get("/past", handler.Past)
		r.Get("/requests", handler.Requests)
	})
}

// Create handles booking requests
// @Summary Request a booking
// @Description Create a pending booking on a listing for the given dates.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/booking/create [post]
// @Security BearerAuth
func (handler *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Create")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == constant.Empty {
		response.WithError(w, failure.Unauthorized("missing user identity"))

		return
	}

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// Delete cancels an own booking
// @Summary Cancel a booking
// @Description Remove one of the caller's own bookings regardless of its status.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking cancelled successfully"
// @Failure 404 {object} response.Error
// @Router /api/booking/{id} [delete]
// @Security BearerAuth
func (handler *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Delete")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == constant.Empty {
		response.WithError(w, failure.Unauthorized("missing user identity"))

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id, userID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking cancelled successfully")

	response.WithMessage(w, http.StatusOK, "Booking cancelled successfully")
}

// UpdateStatus lets a host decide on a booking
// @Summary Update a booking's status
// @Description Approve or reject a booking on a listing the caller owns.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingStatusRequest true "Update Booking Status Request"
// @Success 200 {object} response.Message "Booking status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/booking/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateStatus")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == constant.Empty {
		response.WithError(w, failure.Unauthorized("missing user identity"))

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateBookingStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, req, id, userID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking status updated successfully")

	response.WithMessage(w, http.StatusOK, "Booking status updated successfully")
}

// Pending lists the caller's pending bookings
// @Summary List pending bookings
// @Description Return the caller's pending bookings, earliest arrival first.
// @Tags Booking
// @Produce json
// @Success 200 {object} dto.GetBookingsResponse
// @Failure 401 {object} response.Error
// @Router /api/booking/pending [get]
// @Security BearerAuth
func (handler *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	handler.mine(w, r, service.BucketPending, constant.OtelHandlerScopeName+".Pending")
}

// Approved lists the caller's approved bookings
// @Summary List approved bookings
// @Description Return the caller's approved upcoming bookings, earliest arrival first.
// @Tags Booking
// @Produce json
// @Success 200 {object} dto.GetBookingsResponse
// @Failure 401 {object} response.Error
// @Router /api/booking/approved [get]
// @Security BearerAuth
func (handler *Handler) Approved(w http.ResponseWriter, r *http.Request) {
	handler.mine(w, r, service.BucketApproved, constant.OtelHandlerScopeName+".Approved")
}

// Past lists the caller's completed and rejected bookings
// @Summary List past bookings
// @Description Return the caller's completed and rejected bookings, most recent first.
// @Tags Booking
// @Produce json
// @Success 200 {object} dto.GetBookingsResponse
// @Failure 401 {object} response.Error
// @Router /api/booking/past [get]
// @Security BearerAuth
func (handler *Handler) Past(w http.ResponseWriter, r *http.Request) {
	handler.mine(w, r, service.BucketPast, constant.OtelHandlerScopeName+".Past")
}

func (handler *Handler) mine(w http.ResponseWriter, r *http.Request, bucket service.StatusBucket, scopeName string) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, scopeName)
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == constant.Empty {
		response.WithError(w, failure.Unauthorized("missing user identity"))

		return
	}

	res, err := handler.service.Mine(ctx, userID, bucket)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Requests lists pending bookings across all of a host's listings
// @Summary List incoming booking requests
// @Description Return every pending booking on any listing the caller owns, earliest arrival first.
// @Tags Booking
// @Produce json
// @Success 200 {object} dto.GetBookingsResponse
// @Failure 401 {object} response.Error
// @Router /api/booking/requests [get]
// @Security BearerAuth
func (handler *Handler) Requests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Requests")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == constant.Empty {
		response.WithError(w, failure.Unauthorized("missing user identity"))

		return
	}

	res, err := handler.service.Requests(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking requests")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
