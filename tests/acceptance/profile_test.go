package acceptance

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/skillswap/skillswap/internal/dto"
)

func (s *Suite) TestMyProfile() {
	data, _ := s.signUpAndLogin("Alice", "me@example.com")

	resp, raw := s.doRequest(http.MethodGet, "/api/v1/my-profile", nil, data.AccessToken, nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var user dto.UserResponse
	s.decodeData(raw, &user)
	s.Equal("me@example.com", user.Email)
	s.Equal("Alice", user.FirstName)
}

func (s *Suite) TestMyProfile_NoToken() {
	resp, _ := s.doRequest(http.MethodGet, "/api/v1/my-profile", nil, "", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestMyProfile_CookieToken() {
	_, cookies := s.signUpAndLogin("Alice", "cookie@example.com")

	resp, _ := s.doRequest(http.MethodGet, "/api/v1/my-profile", nil, "", cookies)
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *Suite) TestViewProfile_CountsOncePerViewer() {
	target := s.signUp("Alice", "target@example.com", "Password1!")
	viewer, _ := s.signUpAndLogin("Bob", "viewer@example.com")

	// First view counts
	resp, raw := s.doRequest(http.MethodGet, "/api/v1/c/"+target.ID, nil, viewer.AccessToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var seen dto.UserResponse
	s.decodeData(raw, &seen)
	s.Equal(int64(1), seen.ImpressionCount)

	history := cookieByName(resp.Cookies(), "viewedProfiles")
	s.Require().NotNil(history)

	// Repeat view with the history cookie does not count again
	resp, raw = s.doRequest(http.MethodGet, "/api/v1/c/"+target.ID, nil, viewer.AccessToken, []*http.Cookie{history})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	s.decodeData(raw, &seen)
	s.Equal(int64(1), seen.ImpressionCount)
}

func (s *Suite) TestViewProfile_DistinctViewersEachCount() {
	target := s.signUp("Alice", "popular@example.com", "Password1!")
	first, _ := s.signUpAndLogin("Bob", "first-viewer@example.com")
	second, _ := s.signUpAndLogin("Carol", "second-viewer@example.com")

	resp, _ := s.doRequest(http.MethodGet, "/api/v1/c/"+target.ID, nil, first.AccessToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp, raw := s.doRequest(http.MethodGet, "/api/v1/c/"+target.ID, nil, second.AccessToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var seen dto.UserResponse
	s.decodeData(raw, &seen)
	s.Equal(int64(2), seen.ImpressionCount)
}

func (s *Suite) TestViewProfile_SelfViewNeverCounts() {
	data, _ := s.signUpAndLogin("Alice", "selfview@example.com")

	resp, raw := s.doRequest(http.MethodGet, "/api/v1/c/"+data.User.ID, nil, data.AccessToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var seen dto.UserResponse
	s.decodeData(raw, &seen)
	s.Zero(seen.ImpressionCount)
}

func (s *Suite) TestViewProfile_UnknownID() {
	data, _ := s.signUpAndLogin("Alice", "ghosthunter@example.com")

	resp, _ := s.doRequest(http.MethodGet, "/api/v1/c/00000000-0000-0000-0000-000000000000", nil, data.AccessToken, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestUpdateProfile() {
	data, _ := s.signUpAndLogin("Alice", "editor@example.com")

	bio := "Backend engineer"
	github := "https://github.com/alice"
	resp, raw := s.doRequest(http.MethodPost, "/api/v1/update-profile", dto.UpdateProfileRequest{
		Bio:       &bio,
		GithubURL: &github,
		TechStack: []string{"Go", "Postgres"},
	}, data.AccessToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var user dto.UserResponse
	s.decodeData(raw, &user)
	s.Equal("Backend engineer", user.Bio)
	s.Equal("https://github.com/alice", user.GithubURL)
	s.Equal([]string{"Go", "Postgres"}, user.TechStack)

	// Untouched fields survive
	s.Equal("Alice", user.FirstName)
	s.Equal("editor@example.com", user.Email)
}

func (s *Suite) TestUpdateProfile_NothingToUpdate() {
	data, _ := s.signUpAndLogin("Alice", "noop@example.com")

	resp, _ := s.doRequest(http.MethodPost, "/api/v1/update-profile", dto.UpdateProfileRequest{}, data.AccessToken, nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestUpdateAvatar() {
	data, _ := s.signUpAndLogin("Alice", "avatar@example.com")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("avatar", "me.png")
	s.Require().NoError(err)
	_, err = part.Write([]byte("fake image bytes"))
	s.Require().NoError(err)
	s.Require().NoError(writer.Close())

	req, err := http.NewRequest(http.MethodPost, s.BaseURL+"/api/v1/update-avatar", &buf)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+data.AccessToken)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	// The stored avatar points at the uploaded object
	meResp, raw := s.doRequest(http.MethodGet, "/api/v1/my-profile", nil, data.AccessToken, nil)
	s.Require().Equal(http.StatusOK, meResp.StatusCode)

	var user dto.UserResponse
	s.decodeData(raw, &user)
	s.True(strings.HasPrefix(user.Avatar, "https://cdn.test.local/avatars/"))
	s.True(strings.HasSuffix(user.Avatar, ".png"))
}

func (s *Suite) TestUpdateAvatar_MissingFile() {
	data, _ := s.signUpAndLogin("Alice", "noavatar@example.com")

	resp, _ := s.doRequest(http.MethodPost, "/api/v1/update-avatar", nil, data.AccessToken, nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}
