package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/skillswap/skillswap/internal/domain"
	"github.com/skillswap/skillswap/internal/dto"
	"github.com/skillswap/skillswap/internal/repository"
	"github.com/skillswap/skillswap/internal/utils"
)

// authService implements AuthService interface
type authService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	bcryptCost int
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager, bcryptCost int) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		bcryptCost: bcryptCost,
	}
}

// SignUp registers a new user
func (s *authService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*domain.User, error) {
	if req.FirstName == "" {
		return nil, fmt.Errorf("first name is required: %w", ErrInvalidInput)
	}

	email := utils.SanitizeEmail(req.Email)
	if !utils.ValidateEmail(email) {
		return nil, fmt.Errorf("invalid email format: %w", ErrInvalidInput)
	}

	if !utils.ValidatePassword(req.Password) {
		return nil, fmt.Errorf("sign-up password: %w", ErrWeakPassword)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}

	// The unique index on email is the duplicate check; a prior SELECT would
	// only race against concurrent sign-ups.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and issues a fresh session, invalidating any
// other outstanding session for the same user
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*domain.User, *domain.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, fmt.Errorf("login: %w", ErrUserNotFound)
		}
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, nil, fmt.Errorf("login: %w", ErrWrongPassword)
	}

	pair, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Refresh rotates the presented refresh token. Each refresh token is single
// use: a successful rotation invalidates it and installs a new one.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("refresh: %w", ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	newRefreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	// Compare-and-swap on the stored hash: when two rotations present the
	// same token concurrently, exactly one wins and the other observes reuse.
	oldHash := hashToken(refreshToken)
	newHash := hashToken(newRefreshToken)
	if err := s.userRepo.RotateRefreshToken(ctx, user.ID, oldHash, newHash); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenMismatch) {
			return nil, fmt.Errorf("refresh: %w", ErrTokenReused)
		}
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.FirstName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logout clears the stored refresh token. Idempotent.
func (s *authService) Logout(ctx context.Context, userID string) error {
	err := s.userRepo.SetRefreshToken(ctx, userID, nil)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// ChangePassword verifies the old password and installs the new one
func (s *authService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("change password: %w", ErrUserNotFound)
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !utils.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return fmt.Errorf("change password: %w", ErrWrongPassword)
	}

	if newPassword == oldPassword {
		return fmt.Errorf("change password: %w", ErrSamePassword)
	}

	if !utils.ValidatePassword(newPassword) {
		return fmt.Errorf("change password: %w", ErrWeakPassword)
	}

	passwordHash, err := utils.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// ValidateAccess validates an access token statelessly
func (s *authService) ValidateAccess(token string) (*domain.AccessClaims, error) {
	return s.jwtManager.ValidateAccessToken(token)
}

// issueSession generates a fresh token pair and installs the refresh token
// hash as the user's sole valid session
func (s *authService) issueSession(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.FirstName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	tokenHash := hashToken(refreshToken)
	if err := s.userRepo.SetRefreshToken(ctx, user.ID, &tokenHash); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// hashToken hashes a token using SHA256; only digests ever reach storage
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
