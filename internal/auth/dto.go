package auth

import (
	"github.com/afflo-hq/afflo-backend/internal/partners"
	"github.com/afflo-hq/afflo-backend/internal/users"
)

// SignupRequest contains the payload for credentials signup.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest contains the credentials login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token pair plus the caller's identity and
// administered partner, when one exists.
type LoginResponse struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	User         *users.UserDTO       `json:"user"`
	Partner      *partners.PartnerDTO `json:"partner,omitempty"`
}

// RefreshRequest carries the refresh token presented for rotation.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenPair is the rotated access/refresh pair returned by refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SetupCompanyRequest contains the payload for tenant onboarding.
type SetupCompanyRequest struct {
	CompanyName      string `json:"company_name" validate:"required"`
	Domain           string `json:"domain" validate:"required,fqdn"`
	StorefrontSecret string `json:"storefront_secret,omitempty"`
}

// ProviderDTO describes one configured federation provider.
type ProviderDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
