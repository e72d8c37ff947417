package listing

import (
	"net/http"
	"strconv"

	"github.com/Suya678/Surf/infras/otel"
	bookingService "github.com/Suya678/Surf/internal/domains/booking/service"
	"github.com/Suya678/Surf/internal/domains/listing/model/dto"
	"github.com/Suya678/Surf/internal/domains/listing/service"
	"github.com/Suya678/Surf/shared/constant"
	"github.com/Suya678/Surf/shared/failure"
	"github.com/Suya678/Surf/shared/validator"
	"github.com/Suya678/Surf/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service        service.Listing
	bookingService bookingService.Booking
	otel           otel.Otel
}

func New(service service.Listing, bookingService bookingService.Booking, otel otel.Otel) Handler {
	return Handler{
		service:        service,
		bookingService: bookingService,
		otel:           otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/listing", func(r chi.Router) {
		r.Post("/create", handler.Create)
		r.Post("/photo", handler.UploadPhoto)
		r.Put("/{id}", handler.Update)
		r.Delete("/{id}", handler.Delete)
		r.Get("/{id}/requests", handler.Requests)
	})

	r.Route("/listings", func(r chi.Router) {
		r.Get("/my-listings", handler.MyListings)
		r.Get("/search", handler.Search)
	})
}

// Create handles listing creation
// @Summary Create a listing
// @Description Verify the address against the geocoder and create the listing with its coordinates.
// @Tags Listing
// @Accept json
// @Produce json
// @Param request body dto.CreateListingRequest true "Create Listing Request"
// @Success 201 {object} dto.CreateListingResponse
// @Failure 400 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /api/listing/create [post]
// @Security BearerAuth
func (handler *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Create")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == constant.Empty {
		response.WithError(w, failure.Unauthorized("missing user identity"))

		return
	}

	req := dto.CreateListingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create listing")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Listing created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// Update handles full listing replacement
// @Summary Update a listing
// @Description Replace the listing's editable fields, re-verifying the address when it changed.
// @Tags Listing
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Param request body dto.UpdateListingRequest true "Update Listing Request"
// @Success 200 {object} dto.ListingResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/listing/{id} [put]
// @Security BearerAuth
func (handler *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Update")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == constant.Empty {
		response.WithError(w, failure.Unauthorized("missing user identity"))

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateListingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Update(ctx, req, id, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update listing")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Listing updated successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// Delete handles listing deletion
// @Summary Delete a listing
// @Description Delete an owned listing along with its bookings and coordinates.
// @Tags Listing
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} response.Message "Listing deleted successfully"
// @Failure 404 {object} response.Error
// @Router /api/listing/{id} [delete]
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
		log.Error().Err(err).Msg("failed to delete listing")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Listing deleted successfully")

	response.WithMessage(w, http.StatusOK, "Listing deleted successfully")
}

// Requests lists every booking on one owned listing
// @Summary List bookings on a listing
// @Description Return all booking requests on a listing the caller owns, earliest arrival first.
// @Tags Listing
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} bookingDto.GetBookingsResponse
// @Failure 404 {object} response.Error
// @Router /api/listing/{id}/requests [get]
// @Security BearerAuth
func (handler *Handler) Requests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Requests")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == constant.Empty {
		response.WithError(w, failure.Unauthorized("missing user identity"))

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.bookingService.ListingRequests(ctx, id, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get listing requests")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// MyListings lists the caller's own listings
// @Summary List own listings
// @Description Return every listing the caller owns, ordered by title.
// @Tags Listing
// @Produce json
// @Success 200 {object} dto.GetListingsResponse
// @Failure 401 {object} response.Error
// @Router /api/listings/my-listings [get]
// @Security BearerAuth
func (handler *Handler) MyListings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MyListings")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == constant.Empty {
		response.WithError(w, failure.Unauthorized("missing user identity"))

		return
	}

	res, err := handler.service.MyListings(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get listings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Search is the public availability search
// @Summary Search listings
// @Description Search listings by city with optional province, guest count, and availability dates.
// @Tags Listing
// @Produce json
// @Param city query string true "City name"
// @Param province query string false "Province name"
// @Param checkin query string false "Arrival date (YYYY-MM-DD)"
// @Param checkout query string false "Departure date (YYYY-MM-DD)"
// @Param guests query int false "Guest count"
// @Success 200 {object} dto.GetListingsResponse
// @Failure 400 {object} response.Error
// @Router /api/listings/search [get]
func (handler *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Search")
	defer scope.End()

	query := r.URL.Query()

	guests := 0
	if rawGuests := query.Get(constant.RequestParamGuests); rawGuests != constant.Empty {
		parsed, err := strconv.Atoi(rawGuests)
		if err != nil || parsed < 1 {
			response.WithError(w, failure.BadRequestFromString("guests must be a positive integer"))

			return
		}

		guests = parsed
	}

	req := dto.SearchListingsRequest{
		City:     query.Get(constant.RequestParamCity),
		Province: query.Get(constant.RequestParamProvince),
		Checkin:  query.Get(constant.RequestParamCheckin),
		Checkout: query.Get(constant.RequestParamCheckout),
		Guests:   guests,
	}

	res, err := handler.service.Search(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search listings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UploadPhoto stores a listing photo
// @Summary Upload a listing photo
// @Description Upload a JPEG, PNG, or WebP image and return its public URL.
// @Tags Listing
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Photo file"
// @Success 201 {object} dto.UploadPhotoResponse
// @Failure 400 {object} response.Error
// @Router /api/listing/photo [post]
// @Security BearerAuth
func (handler *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadPhoto")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == constant.Empty {
		response.WithError(w, failure.Unauthorized("missing user identity"))

		return
	}

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		response.WithError(w, failure.BadRequestFromString("invalid multipart form"))

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		response.WithError(w, failure.BadRequestFromString("photo file is required"))

		return
	}
	defer file.Close()

	req := dto.UploadPhotoRequest{
		File:       file,
		FileHeader: *fileHeader,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate photo upload")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UploadPhoto(ctx, req, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload photo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Photo uploaded successfully")

	response.WithJSON(w, http.StatusCreated, res)
}
