package auth

import (
	"github.com/afflo-hq/afflo-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT. The
// token carries identity only; the administered partner is resolved from
// storage on every request, never cached in the credential.
type AccessTokenPayload struct {
	UserID   uuid.UUID
	Email    string
	Name     string
	Provider enums.Provider
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID   uuid.UUID      `json:"user_id"`
	Email    string         `json:"email"`
	Name     string         `json:"name"`
	Provider enums.Provider `json:"provider"`
	jwt.RegisteredClaims
}
