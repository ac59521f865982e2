package repository

import (
	"context"

	"github.com/skillswap/skillswap/internal/domain"
)

// ProfileUpdate carries the allow-listed mutable profile fields. Nil pointers
// mean "leave unchanged"; slices replace the stored value wholesale.
type ProfileUpdate struct {
	FirstName      *string
	LastName       *string
	Bio            *string
	GithubURL      *string
	LinkedinURL    *string
	DiscordID      *string
	TechStack      []string
	LookingToLearn []string
}

// IsEmpty reports whether the update would change nothing
func (p ProfileUpdate) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Bio == nil &&
		p.GithubURL == nil && p.LinkedinURL == nil && p.DiscordID == nil &&
		p.TechStack == nil && p.LookingToLearn == nil
}

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// List returns all users in insertion order (creation time ascending).
	List(ctx context.Context) ([]*domain.User, error)

	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error)
	UpdateAvatar(ctx context.Context, userID, avatarURL string) (*domain.User, error)

	// SetRefreshToken installs tokenHash as the user's sole valid refresh
	// token, overwriting any prior value. Pass nil to clear (logout).
	SetRefreshToken(ctx context.Context, userID string, tokenHash *string) error

	// RotateRefreshToken swaps oldHash for newHash in a single conditional
	// update. Returns ErrRefreshTokenMismatch when the stored value is not
	// oldHash, which is how concurrent rotations of the same token lose.
	RotateRefreshToken(ctx context.Context, userID, oldHash, newHash string) error

	// IncrementImpressions bumps the impression counter by one atomically
	// and returns the updated row.
	IncrementImpressions(ctx context.Context, userID string) (*domain.User, error)
}
