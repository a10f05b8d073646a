package validation_test

import (
	"strings"
	"testing"

	"github.com/cinevault/cinevault/errors"
	"github.com/cinevault/cinevault/validation"
)

type registerPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"omitempty,max=120"`
}

func TestValidate_OK(t *testing.T) {
	p := registerPayload{Email: "u@test.com", Password: "secret1"}
	if err := validation.Validate(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingEmail(t *testing.T) {
	p := registerPayload{Password: "secret1"}
	err := validation.Validate(p)
	if err == nil {
		t.Fatal("expected validation error")
	}

	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatal("expected AppError")
	}
	if appErr.Code != errors.CodeInvalidPayload {
		t.Fatalf("expected invalid_payload, got %s", appErr.Code)
	}
	if !strings.Contains(appErr.Message, "email is required") {
		t.Fatalf("unexpected message: %s", appErr.Message)
	}
}

func TestValidate_ShortPassword(t *testing.T) {
	p := registerPayload{Email: "u@test.com", Password: "12345"}
	err := validation.Validate(p)
	if err == nil {
		t.Fatal("expected validation error for 5-char password")
	}

	appErr, _ := errors.AsAppError(err)
	if !strings.Contains(appErr.Message, "password must be at least 6 characters") {
		t.Fatalf("unexpected message: %s", appErr.Message)
	}
}

func TestValidate_BadEmailFormat(t *testing.T) {
	p := registerPayload{Email: "not-an-email", Password: "secret1"}
	if err := validation.Validate(p); err == nil {
		t.Fatal("expected validation error for malformed email")
	}
}
