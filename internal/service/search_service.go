package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/skillswap/skillswap/internal/domain"
	"github.com/skillswap/skillswap/internal/dto"
	"github.com/skillswap/skillswap/internal/repository"
	"go.uber.org/zap"
)

const topProfilesLimit = 10

// searchService implements SearchService as explicit filter, sort and
// paginate stages over the user store
type searchService struct {
	userRepo repository.UserRepository
	topCache *TopProfilesCache
	logger   *zap.Logger
}

// NewSearchService creates a new search service. topCache may be nil, in
// which case every explore request hits the store.
func NewSearchService(userRepo repository.UserRepository, topCache *TopProfilesCache, logger *zap.Logger) SearchService {
	return &searchService{
		userRepo: userRepo,
		topCache: topCache,
		logger:   logger,
	}
}

// Aligned surfaces candidates who want to learn something the requester can
// teach, or who are open to anything, narrowed by a skill keyword.
func (s *searchService) Aligned(ctx context.Context, requesterID, query string, page, limit int) ([]*domain.User, error) {
	requester, candidates, err := s.load(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	matched := make([]*domain.User, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.ID == requester.ID {
			continue
		}
		// Empty lookingToLearn signals "open to anything"
		if len(candidate.LookingToLearn) > 0 && !intersects(candidate.LookingToLearn, requester.TechStack) {
			continue
		}
		if !anyContainsFold(candidate.TechStack, query) {
			continue
		}
		matched = append(matched, candidate)
	}

	sortByImpressions(matched)
	return paginate(matched, page, limit), nil
}

// Unaligned is plain keyword discovery over names and skills, ignoring
// mutual-interest alignment
func (s *searchService) Unaligned(ctx context.Context, requesterID, query string, page, limit int) ([]*domain.User, error) {
	requester, candidates, err := s.load(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	matched := make([]*domain.User, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.ID == requester.ID {
			continue
		}
		if query != "" &&
			!containsFold(candidate.FirstName, query) &&
			!containsFold(candidate.LastName, query) &&
			!anyContainsFold(candidate.TechStack, query) {
			continue
		}
		matched = append(matched, candidate)
	}

	sortByImpressions(matched)
	return paginate(matched, page, limit), nil
}

// TopProfiles returns the ten most viewed profiles, projected to public
// fields only
func (s *searchService) TopProfiles(ctx context.Context) ([]*dto.TopProfile, error) {
	if s.topCache != nil {
		if cached, ok := s.topCache.Get(ctx); ok {
			return cached, nil
		}
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	if len(users) == 0 {
		return nil, fmt.Errorf("top profiles: %w", ErrNoResults)
	}

	sortByImpressions(users)
	if len(users) > topProfilesLimit {
		users = users[:topProfilesLimit]
	}

	top := make([]*dto.TopProfile, 0, len(users))
	for _, user := range users {
		top = append(top, dto.NewTopProfile(user))
	}

	if s.topCache != nil {
		if err := s.topCache.Set(ctx, top); err != nil {
			s.logger.Warn("failed to cache top profiles", zap.Error(err))
		}
	}

	return top, nil
}

func (s *searchService) load(ctx context.Context, requesterID string) (*domain.User, []*domain.User, error) {
	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, fmt.Errorf("search: %w", ErrUserNotFound)
		}
		return nil, nil, fmt.Errorf("failed to get requester: %w", err)
	}

	candidates, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list users: %w", err)
	}

	return requester, candidates, nil
}

// sortByImpressions orders by impression count descending. The sort is
// stable, so ties keep the store's insertion order.
func sortByImpressions(users []*domain.User) {
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].ImpressionCount > users[j].ImpressionCount
	})
}

// paginate slices out one page; page and limit below 1 fall back to the
// defaults, and an oversized limit returns whatever remains
func paginate(users []*domain.User, page, limit int) []*domain.User {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	// skip can overflow negative on huge page values; treat that as past the end
	skip := (page - 1) * limit
	if skip < 0 || skip >= len(users) {
		return []*domain.User{}
	}

	end := skip + limit
	if end < skip || end > len(users) {
		end = len(users)
	}

	return users[skip:end]
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// containsFold reports whether s contains substr case-insensitively. An
// empty substr matches anything.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func anyContainsFold(entries []string, substr string) bool {
	if substr == "" {
		return true
	}
	for _, entry := range entries {
		if containsFold(entry, substr) {
			return true
		}
	}
	return false
}
