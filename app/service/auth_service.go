package service

import (
	"github.com/gofiber/fiber/v2"

	"student-performance-dashboard/app/apperrors"
	"student-performance-dashboard/app/models"
	"student-performance-dashboard/utils"
)

const adminRole = "admin"

// AuthService issues tokens for the single configured dashboard admin.
type AuthService struct {
	username      string
	passwordHash  string
	secret        string
	refreshSecret string
}

func NewAuthService(username, passwordHash, secret, refreshSecret string) *AuthService {
	if refreshSecret == "" {
		refreshSecret = secret
	}
	return &AuthService{
		username:      username,
		passwordHash:  passwordHash,
		secret:        secret,
		refreshSecret: refreshSecret,
	}
}

func (s *AuthService) issue(username string) (models.TokenResponse, error) {
	token, err := utils.GenerateToken(username, adminRole, s.secret)
	if err != nil {
		return models.TokenResponse{}, err
	}
	refresh, err := utils.GenerateRefreshToken(username, s.refreshSecret)
	if err != nil {
		return models.TokenResponse{}, err
	}
	return models.TokenResponse{Token: token, RefreshToken: refresh}, nil
}

func (s *AuthService) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username and password are required"})
	}

	if req.Username != s.username || !utils.CheckPasswordHash(req.Password, s.passwordHash) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": apperrors.ErrInvalidCredentials.Error()})
	}

	tokens, err := s.issue(req.Username)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to generate token"})
	}
	return c.JSON(tokens)
}

func (s *AuthService) Refresh(c *fiber.Ctx) error {
	var req models.RefreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "refreshToken is required"})
	}

	claims, err := utils.ValidateRefreshToken(req.RefreshToken, s.refreshSecret)
	if err != nil || claims.Username != s.username {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": apperrors.ErrTokenInvalid.Error()})
	}

	tokens, err := s.issue(claims.Username)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to generate token"})
	}
	return c.JSON(tokens)
}
