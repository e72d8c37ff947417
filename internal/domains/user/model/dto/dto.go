package dto

import (
	"github.com/Suya678/Surf/internal/domains/user/model"
	gDto "github.com/Suya678/Surf/shared/dto"
	gModel "github.com/Suya678/Surf/shared/model"
	"github.com/Suya678/Surf/shared/timezone"
)

// OnboardingStatusResponse reports whether the user finished onboarding.
type OnboardingStatusResponse struct {
	OnboardingCompleted bool `json:"onboarding_completed"`
}

// UpdateOnboardingRequest picks an account type and seeds the profile. It
// marks the user as onboarded.
type UpdateOnboardingRequest struct {
	AccountType string  `json:"account_type" validate:"required,oneof=host guest"`
	Age         *int    `json:"age"          validate:"omitempty,gte=0,lte=150"`
	Gender      *string `json:"gender"       validate:"omitempty,max=50"`
	Race        *string `json:"race"         validate:"omitempty,max=50"`
	Bio         *string `json:"bio"          validate:"omitempty,max=1000"`
}

func (r *UpdateOnboardingRequest) ToInfoModel(userID string) model.UserInfo {
	return model.UserInfo{
		ID:     userID,
		Age:    r.Age,
		Gender: r.Gender,
		Race:   r.Race,
		Bio:    r.Bio,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

// UpdateInfoRequest upserts the profile attributes without touching the
// onboarding flag or account type.
type UpdateInfoRequest struct {
	Age    *int    `json:"age"    validate:"omitempty,gte=0,lte=150"`
	Gender *string `json:"gender" validate:"omitempty,max=50"`
	Race   *string `json:"race"   validate:"omitempty,max=50"`
	Bio    *string `json:"bio"    validate:"omitempty,max=1000"`
}

func (r *UpdateInfoRequest) ToModel(userID string) model.UserInfo {
	return model.UserInfo{
		ID:     userID,
		Age:    r.Age,
		Gender: r.Gender,
		Race:   r.Race,
		Bio:    r.Bio,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

// UserResponse represents the response for a single user
type UserResponse struct {
	ID                  string  `json:"id"`
	Email               string  `json:"email"`
	FullName            *string `json:"full_name"`
	AccountType         *string `json:"account_type"`
	OnboardingCompleted bool    `json:"onboarding_completed"`
	LastLogin           *string `json:"last_login"`
	Active              bool    `json:"active"`
	gDto.Metadata
}

// FromModel converts a user model to UserResponse
func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Email = user.Email
	r.FullName = user.FullName
	r.AccountType = user.AccountType
	r.OnboardingCompleted = user.OnboardingCompleted
	r.LastLogin = user.LastLogin
	r.Active = user.Active
	r.Metadata.FromModel(user.Metadata)
}

// ProfileResponse combines the user row with its satellite profile row.
type ProfileResponse struct {
	UserResponse
	Age    *int    `json:"age"`
	Gender *string `json:"gender"`
	Race   *string `json:"race"`
	Bio    *string `json:"bio"`
}

func (r *ProfileResponse) FromModels(user model.User, info model.UserInfo) {
	r.UserResponse.FromModel(user)
	r.Age = info.Age
	r.Gender = info.Gender
	r.Race = info.Race
	r.Bio = info.Bio
}

// InfoResponse represents the satellite profile row on its own.
type InfoResponse struct {
	ID     string  `json:"id"`
	Age    *int    `json:"age"`
	Gender *string `json:"gender"`
	Race   *string `json:"race"`
	Bio    *string `json:"bio"`
}

func (r *InfoResponse) FromModel(info model.UserInfo) {
	r.ID = info.ID
	r.Age = info.Age
	r.Gender = info.Gender
	r.Race = info.Race
	r.Bio = info.Bio
}
