package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/skillswap/skillswap/internal/domain"
	"github.com/skillswap/skillswap/internal/dto"
	"github.com/skillswap/skillswap/internal/repository"
	"github.com/skillswap/skillswap/internal/utils"
)

// maxViewHistory bounds the client-held view history so the cookie does not
// grow without limit over a long browsing session. Oldest entries fall off
// first; re-viewing such a profile counts again, which is acceptable for
// best-effort dedup.
const maxViewHistory = 500

// profileService implements ProfileService interface
type profileService struct {
	userRepo repository.UserRepository
	uploader Uploader
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo repository.UserRepository, uploader Uploader) ProfileService {
	return &profileService{
		userRepo: userRepo,
		uploader: uploader,
	}
}

// Get fetches a profile by id
func (s *profileService) Get(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("get profile: %w", ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the allow-listed fields from the request. String
// fields are trimmed; empty strings and empty tag lists are treated as
// "not provided".
func (s *profileService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*domain.User, error) {
	update := repository.ProfileUpdate{
		FirstName:   trimmed(req.FirstName),
		LastName:    trimmed(req.LastName),
		Bio:         trimmed(req.Bio),
		GithubURL:   trimmed(req.GithubURL),
		LinkedinURL: trimmed(req.LinkedinURL),
		DiscordID:   trimmed(req.DiscordID),
	}

	if len(req.TechStack) > 0 {
		update.TechStack = utils.SanitizeTags(req.TechStack)
	}
	if len(req.LookingToLearn) > 0 {
		update.LookingToLearn = utils.SanitizeTags(req.LookingToLearn)
	}

	if update.IsEmpty() {
		return nil, fmt.Errorf("update profile: %w", ErrNothingToUpdate)
	}

	user, err := s.userRepo.UpdateProfile(ctx, userID, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("update profile: %w", ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}

// UpdateAvatar uploads the image through the hosting collaborator and stores
// the returned URL
func (s *profileService) UpdateAvatar(ctx context.Context, userID, filename, contentType string, body io.Reader, size int64) (*domain.User, error) {
	key := fmt.Sprintf("avatars/%s%s", uuid.New().String(), path.Ext(filename))

	url, err := s.uploader.Upload(ctx, key, contentType, body, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	user, err := s.userRepo.UpdateAvatar(ctx, userID, url)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("update avatar: %w", ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}

	return user, nil
}

// RecordView returns the target profile, incrementing its impression counter
// by exactly one for a distinct first-time viewer. Self views and repeat
// views from the same history never count.
func (s *profileService) RecordView(ctx context.Context, viewerID, targetID string, viewHistory []string) (*domain.User, []string, error) {
	if viewerID == targetID || containsID(viewHistory, targetID) {
		user, err := s.Get(ctx, targetID)
		if err != nil {
			return nil, nil, err
		}
		return user, viewHistory, nil
	}

	user, err := s.userRepo.IncrementImpressions(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, fmt.Errorf("record view: %w", ErrUserNotFound)
		}
		return nil, nil, fmt.Errorf("failed to record view: %w", err)
	}

	viewHistory = append(viewHistory, targetID)
	if len(viewHistory) > maxViewHistory {
		viewHistory = viewHistory[len(viewHistory)-maxViewHistory:]
	}

	return user, viewHistory, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
