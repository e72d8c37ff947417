package validator_test

import (
	"strings"
	"testing"

	"github.com/Suya678/Surf/shared/validator"
)

type registerPayload struct {
	Name        string `validate:"required" json:"name"`
	Email       string `validate:"required,email" json:"email"`
	AccountType string `validate:"oneof=host guest" json:"account_type"`
	Guests      int    `validate:"gte=1,lte=20" json:"guests"`
}

type addressPayload struct {
	PostalCode string `validate:"required,postalcode_ca" json:"postal_code"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *registerPayload
		expectError bool
	}{
		{
			name: "valid payload",
			data: &registerPayload{
				Name:        "Avery Chen",
				Email:       "avery@example.com",
				AccountType: "host",
				Guests:      2,
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: &registerPayload{
				Email:       "avery@example.com",
				AccountType: "host",
				Guests:      2,
			},
			expectError: true,
		},
		{
			name: "invalid email",
			data: &registerPayload{
				Name:        "Avery Chen",
				Email:       "not-an-email",
				AccountType: "host",
				Guests:      2,
			},
			expectError: true,
		},
		{
			name: "account type outside oneof",
			data: &registerPayload{
				Name:        "Avery Chen",
				Email:       "avery@example.com",
				AccountType: "admin",
				Guests:      2,
			},
			expectError: true,
		},
		{
			name: "guests below minimum",
			data: &registerPayload{
				Name:        "Avery Chen",
				Email:       "avery@example.com",
				AccountType: "guest",
				Guests:      0,
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)
			if tt.expectError && err == nil {
				t.Errorf("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidatePostalCodeCA(t *testing.T) {
	tests := []struct {
		name        string
		postalCode  string
		expectError bool
	}{
		{name: "uppercase with space", postalCode: "V5K 0A1", expectError: false},
		{name: "uppercase without space", postalCode: "M5V3L9", expectError: false},
		{name: "lowercase", postalCode: "v5k 0a1", expectError: false},
		{name: "us zip code", postalCode: "90210", expectError: true},
		{name: "too short", postalCode: "V5K", expectError: true},
		{name: "letters only", postalCode: "ABCDEF", expectError: true},
		{name: "empty", postalCode: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&addressPayload{PostalCode: tt.postalCode})
			if tt.expectError && err == nil {
				t.Errorf("expected validation error for %q, got nil", tt.postalCode)
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no error for %q, got %v", tt.postalCode, err)
			}
		})
	}
}

func TestValidateFromReader(t *testing.T) {
	t.Run("valid json body", func(t *testing.T) {
		body := strings.NewReader(`{"name":"Avery Chen","email":"avery@example.com","account_type":"guest","guests":1}`)

		var payload registerPayload
		if err := validator.Validate(body, &payload); err != nil {
			t.Errorf("expected no error, got %v", err)
		}

		if payload.Name != "Avery Chen" {
			t.Errorf("expected decoded name, got %q", payload.Name)
		}
	})

	t.Run("malformed json body", func(t *testing.T) {
		body := strings.NewReader(`{"name":`)

		var payload registerPayload
		if err := validator.Validate(body, &payload); err == nil {
			t.Error("expected decode error, got nil")
		}
	})
}

func TestValidateVar(t *testing.T) {
	if err := validator.ValidateVar("host", "oneof=host guest"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if err := validator.ValidateVar("tenant", "oneof=host guest"); err == nil {
		t.Error("expected error for value outside oneof, got nil")
	}
}
