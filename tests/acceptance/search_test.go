package acceptance

import (
	"net/http"

	"github.com/skillswap/skillswap/internal/dto"
)

// seedProfile registers a user and fills in its skills
func (s *Suite) seedProfile(firstName, email string, techStack, lookingToLearn []string) *dto.AuthData {
	data, _ := s.signUpAndLogin(firstName, email)

	req := dto.UpdateProfileRequest{
		TechStack:      techStack,
		LookingToLearn: lookingToLearn,
	}
	if len(techStack) == 0 && len(lookingToLearn) == 0 {
		return data
	}

	resp, _ := s.doRequest(http.MethodPost, "/api/v1/update-profile", req, data.AccessToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	return data
}

func (s *Suite) TestSearchAligned() {
	alice := s.seedProfile("Alice", "alice-search@example.com", []string{"Go"}, nil)
	bob := s.seedProfile("Bob", "bob-search@example.com", []string{"Rust"}, []string{"Go"})
	s.seedProfile("Carol", "carol-search@example.com", []string{"Kotlin"}, []string{"Java"})

	// Alice teaches Go; Bob wants Go, Carol wants Java
	resp, raw := s.doRequest(http.MethodGet, "/api/v1/search/a?query=rust", nil, alice.AccessToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var results []dto.UserResponse
	s.decodeData(raw, &results)
	s.Require().Len(results, 1)
	s.Equal("bob-search@example.com", results[0].Email)

	// Bob teaches Rust; Alice has no wishlist, so she matches any teacher
	resp, raw = s.doRequest(http.MethodGet, "/api/v1/search/a?query=go", nil, bob.AccessToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	s.decodeData(raw, &results)
	s.Require().Len(results, 1)
	s.Equal("alice-search@example.com", results[0].Email)
}

func (s *Suite) TestSearchUnaligned() {
	alice := s.seedProfile("Alice", "alice-plain@example.com", []string{"Go"}, nil)
	s.seedProfile("Gopher", "gopher-plain@example.com", nil, nil)
	s.seedProfile("Carol", "carol-plain@example.com", []string{"Golang"}, nil)
	s.seedProfile("Dave", "dave-plain@example.com", []string{"Python"}, nil)

	resp, raw := s.doRequest(http.MethodGet, "/api/v1/search/s?query=go", nil, alice.AccessToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var results []dto.UserResponse
	s.decodeData(raw, &results)
	s.Require().Len(results, 2)

	emails := []string{results[0].Email, results[1].Email}
	s.ElementsMatch([]string{"gopher-plain@example.com", "carol-plain@example.com"}, emails)
}

func (s *Suite) TestSearch_Pagination() {
	alice, _ := s.signUpAndLogin("Alice", "pager@example.com")
	for _, email := range []string{"p1@example.com", "p2@example.com", "p3@example.com", "p4@example.com", "p5@example.com"} {
		s.signUp("User", email, "Password1!")
	}

	resp, raw := s.doRequest(http.MethodGet, "/api/v1/search/s?page=2&limit=2", nil, alice.AccessToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var results []dto.UserResponse
	s.decodeData(raw, &results)
	s.Len(results, 2)
}

func (s *Suite) TestSearch_RequiresAuth() {
	resp, _ := s.doRequest(http.MethodGet, "/api/v1/search/s", nil, "", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestExploreTop() {
	target := s.signUp("Alice", "star@example.com", "Password1!")
	s.signUp("Quiet", "quiet@example.com", "Password1!")
	viewer, _ := s.signUpAndLogin("Bob", "fan@example.com")

	resp, _ := s.doRequest(http.MethodGet, "/api/v1/c/"+target.ID, nil, viewer.AccessToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	// Public endpoint, no auth required
	resp, raw := s.doRequest(http.MethodGet, "/api/v1/explore-top", nil, "", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var top []dto.TopProfile
	s.decodeData(raw, &top)
	s.Require().NotEmpty(top)
	s.Equal("star@example.com", top[0].Email)
	s.Equal(int64(1), top[0].ImpressionCount)
}

func (s *Suite) TestExploreTop_EmptyStore() {
	resp, _ := s.doRequest(http.MethodGet, "/api/v1/explore-top", nil, "", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}
