package password_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/Suya678/Surf/shared/password"

	"golang.org/x/crypto/bcrypt"
)

func TestHash(t *testing.T) {
	hash, err := password.Hash("sup3r-secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("expected a bcrypt hash, got %s", hash)
	}

	if _, err := password.Hash(""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestVerify(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("sup3r-secret"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := password.Verify("sup3r-secret", string(hash)); err != nil {
		t.Errorf("expected matching password to verify, got %v", err)
	}

	err = password.Verify("wrong", string(hash))
	if !errors.Is(err, password.ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword, got %v", err)
	}

	if err := password.Verify("", ""); !errors.Is(err, password.ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword for empty input, got %v", err)
	}
}
