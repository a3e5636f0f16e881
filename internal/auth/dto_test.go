package auth

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/afflo-hq/afflo-backend/api/validators"
	pkgerrors "github.com/afflo-hq/afflo-backend/pkg/errors"
)

func TestSignupRequestAcceptsSixCharPassword(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/v1/auth/signup",
		strings.NewReader(`{"name":"Ada","email":"a@x.com","password":"abcdef"}`))

	var body SignupRequest
	if err := validators.DecodeJSONBody(req, &body); err != nil {
		t.Fatalf("expected six-char password to validate, got %v", err)
	}
	if body.Password != "abcdef" {
		t.Fatalf("unexpected password %q", body.Password)
	}
}

func TestSignupRequestRejectsShortPassword(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/v1/auth/signup",
		strings.NewReader(`{"name":"Ada","email":"a@x.com","password":"abcde"}`))

	var body SignupRequest
	err := validators.DecodeJSONBody(req, &body)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for five-char password, got %v", err)
	}
}
