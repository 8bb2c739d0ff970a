package models

import "github.com/golang-jwt/jwt/v5"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// Token types carried in the typ claim.
const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

type JWTClaims struct {
	Username  string `json:"username"`
	RoleName  string `json:"role"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	Username  string `json:"username"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}
