package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bookhaven/bookhaven-backend/pkg/enums"
)

// AccessTokenPayload carries the identity fields minted into a token.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Role   enums.UserRole
	JTI    string
}

// AccessTokenClaims is the JWT claim set for dashboard sessions.
type AccessTokenClaims struct {
	UserID uuid.UUID      `json:"uid"`
	Role   enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}
