package dto_test

import (
	"testing"

	"github.com/Suya678/Surf/infras/jwt"
	"github.com/Suya678/Surf/internal/domains/auth/model/dto"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequest_ToUserModel(t *testing.T) {
	fullName := "Jordan Host"
	req := dto.RegisterRequest{
		Email:    "jordan@example.com",
		Password: "plaintext-ignored",
		FullName: &fullName,
	}

	user := req.ToUserModel("hashed-password")

	assert.NotEmpty(t, user.ID, "expected ID to be generated")
	assert.Equal(t, req.Email, user.Email)
	assert.Equal(t, "hashed-password", user.Password, "model carries the hash, never the raw password")
	assert.Equal(t, &fullName, user.FullName)
	assert.Nil(t, user.AccountType, "account type is chosen during onboarding")
	assert.False(t, user.OnboardingCompleted)
	assert.True(t, user.Active)
	assert.Equal(t, user.ID, user.CreatedBy)
	assert.Equal(t, user.ID, user.ModifiedBy)
	assert.False(t, user.CreatedAt.IsZero(), "expected CreatedAt to be set")
}

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, tokenPair.ExpiresIn, response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
		ExpiresIn:    900,
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, tokenPair.ExpiresIn, response.ExpiresIn)
}
