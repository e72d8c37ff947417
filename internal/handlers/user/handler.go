package user

import (
	"net/http"

	"github.com/Suya678/Surf/infras/otel"
	"github.com/Suya678/Surf/internal/domains/user/model/dto"
	"github.com/Suya678/Surf/internal/domains/user/service"
	"github.com/Suya678/Surf/shared/constant"
	"github.com/Suya678/Surf/shared/failure"
	"github.com/Suya678/Surf/shared/validator"
	"github.com/Suya678/Surf/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/user", func(r chi.Router) {
		r.Get("/check-onboarding", handler.CheckOnboarding)
		r.Post("/update-onboarding", handler.UpdateOnboarding)
		r.Post("/update-info", handler.UpdateInfo)
		r.Get("/me", handler.Me)
	})
}

// CheckOnboarding reports the caller's onboarding state
// @Summary Check onboarding status
// @Description Report whether the authenticated user completed onboarding.
// @Tags User
// @Produce json
// @Success 200 {object} dto.OnboardingStatusResponse
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/user/check-onboarding [get]
// @Security BearerAuth
func (handler *Handler) CheckOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckOnboarding")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == constant.Empty {
		response.WithError(w, failure.Unauthorized("missing user identity"))

		return
	}

	res, err := handler.service.CheckOnboarding(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check onboarding status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateOnboarding completes onboarding for the caller
// @Summary Complete onboarding
// @Description Set the account type, seed the profile, and mark the user onboarded.
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.UpdateOnboardingRequest true "Onboarding Request"
// @Success 200 {object} response.Message "Onboarding completed successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/user/update-onboarding [post]
// @Security BearerAuth
func (handler *Handler) UpdateOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOnboarding")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == constant.Empty {
		response.WithError(w, failure.Unauthorized("missing user identity"))

		return
	}

	req := dto.UpdateOnboardingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateOnboarding(ctx, req, userID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update onboarding")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Onboarding completed successfully")

	response.WithMessage(w, http.StatusOK, "Onboarding completed successfully")
}

// UpdateInfo upserts the caller's profile attributes
// @Summary Update profile info
// @Description Upsert the profile attributes without touching onboarding state.
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.UpdateInfoRequest true "Update Info Request"
// @Success 200 {object} dto.InfoResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /api/user/update-info [post]
// @Security BearerAuth
func (handler *Handler) UpdateInfo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateInfo")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == constant.Empty {
		response.WithError(w, failure.Unauthorized("missing user identity"))

		return
	}

	req := dto.UpdateInfoRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UpdateInfo(ctx, req, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update user info")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Me returns the caller's combined profile
// @Summary Get current user profile
// @Description Return the user row joined with its profile attributes.
// @Tags User
// @Produce json
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/user/me [get]
// @Security BearerAuth
func (handler *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Me")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == constant.Empty {
		response.WithError(w, failure.Unauthorized("missing user identity"))

		return
	}

	res, err := handler.service.Me(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user profile")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
