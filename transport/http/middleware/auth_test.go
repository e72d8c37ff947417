package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Suya678/Surf/config"
	"github.com/Suya678/Surf/infras/jwt"
	"github.com/Suya678/Surf/infras/otel/mocks"
	"github.com/Suya678/Surf/permissions"
	"github.com/Suya678/Surf/shared/constant"
	"github.com/Suya678/Surf/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	router     chi.Router
	jwtService jwt.JWT
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.Session.CookieName = "surf_session"
	cfg.Session.AccessSecret = "test-access-secret"
	cfg.Session.RefreshSecret = "test-refresh-secret"
	cfg.Session.AccessExpireMin = 15
	cfg.Session.RefreshExpireMin = 60

	jwtService := jwt.New(cfg)

	permissionData := permissions.Get()
	require.NotNil(t, permissionData)

	authRole := middleware.NewAuthRoleMiddleware(jwtService, mocks.NewOtel(), permissionData, cfg)

	ok := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	router := chi.NewRouter()
	router.Use(authRole.Auth, authRole.RBAC)
	router.Get("/api/listings/search", ok)
	router.Get("/api/listings/my-listings", ok)
	router.Get("/api/user/check-onboarding", ok)
	router.Post("/api/user/update-onboarding", ok)
	router.Put("/api/auth/change-password", ok)

	return &authFixture{
		router:     router,
		jwtService: jwtService,
	}
}

func (f *authFixture) token(t *testing.T, accountType string) string {
	t.Helper()

	pair, err := f.jwtService.GenerateTokenPair("user-1", "user@example.com", accountType)
	require.NoError(t, err)

	return pair.AccessToken
}

func (f *authFixture) do(t *testing.T, method, path, token string) int {
	t.Helper()

	request := httptest.NewRequest(method, path, nil)
	if token != constant.Empty {
		request.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, request)

	return recorder.Code
}

func TestAuthRoleMiddleware(t *testing.T) {
	fixture := newAuthFixture(t)

	// A freshly registered user has no account type yet. Session-only
	// endpoints must still admit them, otherwise onboarding can never
	// complete.
	t.Run("onboarding reachable before account type is set", func(t *testing.T) {
		freshToken := fixture.token(t, constant.Empty)

		assert.Equal(t, http.StatusOK, fixture.do(t, http.MethodPost, "/api/user/update-onboarding", freshToken))
		assert.Equal(t, http.StatusOK, fixture.do(t, http.MethodGet, "/api/user/check-onboarding", freshToken))
		assert.Equal(t, http.StatusOK, fixture.do(t, http.MethodPut, "/api/auth/change-password", freshToken))
	})

	t.Run("role-gated endpoint rejects user without account type", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, fixture.do(t, http.MethodGet, "/api/listings/my-listings", fixture.token(t, constant.Empty)))
	})

	t.Run("role-gated endpoint rejects wrong role", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, fixture.do(t, http.MethodGet, "/api/listings/my-listings", fixture.token(t, "guest")))
	})

	t.Run("role-gated endpoint admits matching role", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, fixture.do(t, http.MethodGet, "/api/listings/my-listings", fixture.token(t, "host")))
	})

	t.Run("skipped endpoint needs no token", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, fixture.do(t, http.MethodGet, "/api/listings/search", constant.Empty))
	})

	t.Run("protected endpoint rejects missing token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, fixture.do(t, http.MethodGet, "/api/user/check-onboarding", constant.Empty))
	})
}
