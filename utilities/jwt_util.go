package utilities

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"quizhive-backend/internal/config"
	"quizhive-backend/internal/model"
)

// Sentinel errors so the auth middleware can distinguish expiry from a
// malformed or tampered token.
var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid or malformed token")
)

// Claims struct
type Claims struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type tokenSettings struct {
	accessSecret  []byte
	refreshSecret []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func settings() tokenSettings {
	s := tokenSettings{
		accessSecret:  []byte("quizhive-dev-access-secret"),
		refreshSecret: []byte("quizhive-dev-refresh-secret"),
		accessExpiry:  15 * time.Minute,
		refreshExpiry: 7 * 24 * time.Hour,
	}
	cfg := config.GetConfig()
	if cfg == nil {
		return s
	}
	if cfg.Authentication.AccessSecret != "" {
		s.accessSecret = []byte(cfg.Authentication.AccessSecret)
	}
	if cfg.Authentication.RefreshSecret != "" {
		s.refreshSecret = []byte(cfg.Authentication.RefreshSecret)
	}
	if cfg.Authentication.AccessExpiryMinutes > 0 {
		s.accessExpiry = time.Duration(cfg.Authentication.AccessExpiryMinutes) * time.Minute
	}
	if cfg.Authentication.RefreshExpiryHours > 0 {
		s.refreshExpiry = time.Duration(cfg.Authentication.RefreshExpiryHours) * time.Hour
	}
	return s
}

// GenerateTokens creates both access and refresh tokens.
func GenerateTokens(user *model.User) (string, string, error) {
	s := settings()

	accessToken, err := generateToken(user, s.accessSecret, s.accessExpiry)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := generateToken(user, s.refreshSecret, s.refreshExpiry)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ValidateToken verifies the token and extracts claims.
func ValidateToken(tokenStr string, isRefresh bool) (*Claims, error) {
	s := settings()
	secret := s.accessSecret
	if isRefresh {
		secret = s.refreshSecret
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, ErrTokenExpired
	}

	return claims, nil
}

// RefreshTokens generates a new access and refresh token pair from a valid
// refresh token.
func RefreshTokens(refreshToken string) (string, string, error) {
	claims, err := ValidateToken(refreshToken, true)
	if err != nil {
		return "", "", err
	}

	return GenerateTokens(&model.User{
		ID:    claims.UserID,
		Name:  claims.Name,
		Email: claims.Email,
	})
}

// JWTIssuer adapts the package functions to the service layer's TokenIssuer
// contract.
type JWTIssuer struct{}

func (JWTIssuer) Issue(user *model.User) (string, string, error) {
	return GenerateTokens(user)
}

func (JWTIssuer) Rotate(refreshToken string) (string, string, error) {
	return RefreshTokens(refreshToken)
}

func generateToken(user *model.User, secret []byte, expiry time.Duration) (string, error) {
	claims := &Claims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.Email,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
