package model

import "github.com/Suya678/Surf/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID                  = "id"
	FieldEmail               = "email"
	FieldPassword            = "password"
	FieldFullName            = "full_name"
	FieldAccountType         = "account_type"
	FieldOnboardingCompleted = "onboarding_completed"
	FieldLastLogin           = "last_login"
	FieldActive              = "active"
)

const (
	InfoTableName  = "user_info"
	InfoEntityName = "user_info"

	FieldInfoID     = "id"
	FieldInfoAge    = "age"
	FieldInfoGender = "gender"
	FieldInfoRace   = "race"
	FieldInfoBio    = "bio"
)

type User struct {
	ID                  string  `db:"id"`
	Email               string  `db:"email"`
	Password            string  `db:"password"`
	FullName            *string `db:"full_name"`
	AccountType         *string `db:"account_type"`
	OnboardingCompleted bool    `db:"onboarding_completed"`
	LastLogin           *string `db:"last_login"`
	Active              bool    `db:"active"`
	model.Metadata
}

// UserInfo holds the optional profile attributes kept in a satellite table,
// one row per user, written by onboarding and profile updates.
type UserInfo struct {
	ID     string  `db:"id"`
	Age    *int    `db:"age"`
	Gender *string `db:"gender"`
	Race   *string `db:"race"`
	Bio    *string `db:"bio"`
	model.Metadata
}
