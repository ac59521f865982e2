package service

import (
	"context"
	"io"

	"github.com/skillswap/skillswap/internal/domain"
	"github.com/skillswap/skillswap/internal/dto"
)

// AuthService defines methods for the session and credential lifecycle
type AuthService interface {
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*domain.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*domain.User, *domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Logout(ctx context.Context, userID string) error
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error

	// ValidateAccess checks signature and expiry only; it never touches
	// storage, so it is safe on every request.
	ValidateAccess(token string) (*domain.AccessClaims, error)
}

// ProfileService defines methods for profile reads and mutations
type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*domain.User, error)
	UpdateAvatar(ctx context.Context, userID, filename, contentType string, body io.Reader, size int64) (*domain.User, error)

	// RecordView fetches the target profile, bumping its impression counter
	// only when the viewer is distinct and not already in the view history.
	// The returned history must be handed back to the client.
	RecordView(ctx context.Context, viewerID, targetID string, viewHistory []string) (*domain.User, []string, error)
}

// SearchService defines the two ranked search modes and the public top list
type SearchService interface {
	Aligned(ctx context.Context, requesterID, query string, page, limit int) ([]*domain.User, error)
	Unaligned(ctx context.Context, requesterID, query string, page, limit int) ([]*domain.User, error)
	TopProfiles(ctx context.Context) ([]*dto.TopProfile, error)
}

// Uploader hosts a file somewhere public and returns its URL
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}
