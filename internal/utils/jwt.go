package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/skillswap/skillswap/internal/domain"
)

// Token validation errors. ErrTokenExpired is reported only when the token is
// otherwise well formed and correctly signed.
var (
	ErrTokenExpired = errors.New("token is expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// JWTManager manages JWT token operations
type JWTManager struct {
	secret             []byte
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, accessTokenExpiry, refreshTokenExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secret:             []byte(secret),
		accessTokenExpiry:  accessTokenExpiry,
		refreshTokenExpiry: refreshTokenExpiry,
	}
}

// GenerateAccessToken generates a new access token carrying the user's
// identity claims
func (j *JWTManager) GenerateAccessToken(userID, email, firstName string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    userID,
		"email":      email,
		"first_name": firstName,
		"exp":        now.Add(j.accessTokenExpiry).Unix(),
		"iat":        now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// GenerateRefreshToken generates a new refresh token
func (j *JWTManager) GenerateRefreshToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(j.refreshTokenExpiry).Unix(),
		"iat":     now.Unix(),
		"type":    "refresh",
		"jti":     uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return tokenString, nil
}

// ValidateAccessToken validates an access token and returns its claims.
// Validity is cryptographic plus expiry only; no storage lookup happens here.
func (j *JWTManager) ValidateAccessToken(tokenString string) (*domain.AccessClaims, error) {
	claims, err := j.parse(tokenString)
	if err != nil {
		return nil, err
	}

	// Refresh tokens must not pass as access tokens
	if claims["type"] == "refresh" {
		return nil, fmt.Errorf("refresh token presented as access token: %w", ErrTokenInvalid)
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("missing user_id claim: %w", ErrTokenInvalid)
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, fmt.Errorf("missing email claim: %w", ErrTokenInvalid)
	}

	firstName, ok := claims["first_name"].(string)
	if !ok {
		return nil, fmt.Errorf("missing first_name claim: %w", ErrTokenInvalid)
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("missing exp claim: %w", ErrTokenInvalid)
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, fmt.Errorf("missing iat claim: %w", ErrTokenInvalid)
	}

	return &domain.AccessClaims{
		UserID:    userID,
		Email:     email,
		FirstName: firstName,
		Exp:       int64(exp),
		Iat:       int64(iat),
	}, nil
}

// ValidateRefreshToken validates a refresh token and returns the user ID it
// was issued to
func (j *JWTManager) ValidateRefreshToken(tokenString string) (string, error) {
	claims, err := j.parse(tokenString)
	if err != nil {
		return "", err
	}

	if claims["type"] != "refresh" {
		return "", fmt.Errorf("wrong token type: %w", ErrTokenInvalid)
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", fmt.Errorf("missing user_id claim: %w", ErrTokenInvalid)
	}

	return userID, nil
}

// GetAccessTokenExpiry returns the access token expiry duration in seconds
func (j *JWTManager) GetAccessTokenExpiry() int {
	return int(j.accessTokenExpiry.Seconds())
}

// GetRefreshTokenExpiry returns the refresh token expiry duration in seconds
func (j *JWTManager) GetRefreshTokenExpiry() int {
	return int(j.refreshTokenExpiry.Seconds())
}

func (j *JWTManager) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("failed to parse token: %w", ErrTokenExpired)
		}
		return nil, fmt.Errorf("failed to parse token: %w", ErrTokenInvalid)
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims shape: %w", ErrTokenInvalid)
	}

	return claims, nil
}
