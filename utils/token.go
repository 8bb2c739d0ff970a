package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"student-performance-dashboard/app/models"
)

const (
	issuer          = "student-performance-dashboard"
	accessLifetime  = 24 * time.Hour
	refreshLifetime = 7 * 24 * time.Hour
)

// GenerateToken signs an access token for username with the given role.
func GenerateToken(username, roleName, secret string) (string, error) {
	claims := &models.JWTClaims{
		Username:  username,
		RoleName:  roleName,
		TokenType: models.TokenAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateToken(tokenString, secret string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&models.JWTClaims{},
		keyFunc(secret),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.TokenType != models.TokenAccess {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// GenerateRefreshToken signs a refresh token valid for 7 days.
func GenerateRefreshToken(username, secret string) (string, error) {
	claims := &models.RefreshClaims{
		Username:  username,
		TokenType: models.TokenRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(refreshLifetime)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateRefreshToken(t, secret string) (*models.RefreshClaims, error) {
	token, err := jwt.ParseWithClaims(
		t,
		&models.RefreshClaims{},
		keyFunc(secret),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.RefreshClaims)
	if !ok || !token.Valid || claims.TokenType != models.TokenRefresh {
		return nil, errors.New("invalid refresh token")
	}
	return claims, nil
}

func keyFunc(secret string) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}
}
