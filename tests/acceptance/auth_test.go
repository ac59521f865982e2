package acceptance

import (
	"net/http"

	"github.com/skillswap/skillswap/internal/dto"
)

func (s *Suite) TestSignUp_Success() {
	user := s.signUp("Alice", "alice@example.com", "Password1!")

	s.NotEmpty(user.ID)
	s.Equal("alice@example.com", user.Email)
	s.Equal("Alice", user.FirstName)
	s.Zero(user.ImpressionCount)
}

func (s *Suite) TestSignUp_NormalizesEmail() {
	user := s.signUp("Alice", "  Alice@Example.COM ", "Password1!")
	s.Equal("alice@example.com", user.Email)
}

func (s *Suite) TestSignUp_DuplicateEmail() {
	s.signUp("Alice", "duplicate@example.com", "Password1!")

	resp, _ := s.doRequest(http.MethodPost, "/api/v1/sign-up", dto.SignUpRequest{
		FirstName: "Other",
		Email:     "duplicate@example.com",
		Password:  "Password1!",
	}, "", nil)

	s.Equal(http.StatusConflict, resp.StatusCode)
}

func (s *Suite) TestSignUp_WeakPassword() {
	resp, _ := s.doRequest(http.MethodPost, "/api/v1/sign-up", dto.SignUpRequest{
		FirstName: "Alice",
		Email:     "weak@example.com",
		Password:  "abc",
	}, "", nil)

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestSignUp_InvalidEmail() {
	resp, _ := s.doRequest(http.MethodPost, "/api/v1/sign-up", dto.SignUpRequest{
		FirstName: "Alice",
		Email:     "not-an-email",
		Password:  "Password1!",
	}, "", nil)

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestLogin_Success() {
	data, cookies := s.signUpAndLogin("Alice", "login@example.com")

	s.NotEmpty(data.AccessToken)
	s.NotEmpty(data.RefreshToken)
	s.Equal("login@example.com", data.User.Email)

	access := cookieByName(cookies, "accessToken")
	s.Require().NotNil(access)
	s.True(access.HttpOnly)

	refresh := cookieByName(cookies, "refreshToken")
	s.Require().NotNil(refresh)
	s.True(refresh.HttpOnly)
	s.Equal(data.RefreshToken, refresh.Value)
}

func (s *Suite) TestLogin_WrongPassword() {
	s.signUp("Alice", "wrongpass@example.com", "Password1!")

	resp, _ := s.doRequest(http.MethodPost, "/api/v1/login", dto.LoginRequest{
		Email:    "wrongpass@example.com",
		Password: "WrongPassword1!",
	}, "", nil)

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestLogin_UnknownEmail() {
	resp, _ := s.doRequest(http.MethodPost, "/api/v1/login", dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "Password1!",
	}, "", nil)

	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestRefresh_RotatesToken() {
	_, cookies := s.signUpAndLogin("Alice", "refresh@example.com")
	oldRefresh := cookieByName(cookies, "refreshToken")
	s.Require().NotNil(oldRefresh)

	resp, _ := s.doRequest(http.MethodPost, "/api/v1/refresh-token", nil, "", cookies)
	s.Equal(http.StatusOK, resp.StatusCode)

	newRefresh := cookieByName(resp.Cookies(), "refreshToken")
	s.Require().NotNil(newRefresh)
	s.NotEqual(oldRefresh.Value, newRefresh.Value)
}

func (s *Suite) TestRefresh_ReplayedTokenRejected() {
	_, cookies := s.signUpAndLogin("Alice", "replay@example.com")

	// First rotation consumes the original token
	resp, _ := s.doRequest(http.MethodPost, "/api/v1/refresh-token", nil, "", cookies)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	rotated := resp.Cookies()

	// Presenting the consumed token again is treated as replay
	resp, _ = s.doRequest(http.MethodPost, "/api/v1/refresh-token", nil, "", cookies)
	s.Equal(http.StatusForbidden, resp.StatusCode)

	// The rotated token still works
	resp, _ = s.doRequest(http.MethodPost, "/api/v1/refresh-token", nil, "", rotated)
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *Suite) TestRefresh_BodyToken() {
	data, _ := s.signUpAndLogin("Alice", "refresh-body@example.com")

	resp, _ := s.doRequest(http.MethodPost, "/api/v1/refresh-token", dto.RefreshRequest{
		RefreshToken: data.RefreshToken,
	}, "", nil)

	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *Suite) TestRefresh_MissingToken() {
	resp, _ := s.doRequest(http.MethodPost, "/api/v1/refresh-token", nil, "", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestRefresh_GarbageToken() {
	resp, _ := s.doRequest(http.MethodPost, "/api/v1/refresh-token", dto.RefreshRequest{
		RefreshToken: "not-a-jwt",
	}, "", nil)

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestSecondLogin_InvalidatesFirstSession() {
	_, first := s.signUpAndLogin("Alice", "twologins@example.com")
	_, second := s.login("twologins@example.com", "Password1!")

	resp, _ := s.doRequest(http.MethodPost, "/api/v1/refresh-token", nil, "", first)
	s.Equal(http.StatusForbidden, resp.StatusCode)

	resp, _ = s.doRequest(http.MethodPost, "/api/v1/refresh-token", nil, "", second)
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *Suite) TestLogout_InvalidatesRefreshToken() {
	data, cookies := s.signUpAndLogin("Alice", "logout@example.com")

	resp, _ := s.doRequest(http.MethodPost, "/api/v1/logout", nil, data.AccessToken, nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	resp, _ = s.doRequest(http.MethodPost, "/api/v1/refresh-token", nil, "", cookies)
	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *Suite) TestLogout_NoToken() {
	resp, _ := s.doRequest(http.MethodPost, "/api/v1/logout", nil, "", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestUpdatePassword_Flow() {
	data, _ := s.signUpAndLogin("Alice", "changepass@example.com")

	// Wrong current password
	resp, _ := s.doRequest(http.MethodPost, "/api/v1/update-password", dto.UpdatePasswordRequest{
		OldPassword: "WrongPassword1!",
		NewPassword: "NewPassword1!",
	}, data.AccessToken, nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	// New password equal to the old one
	resp, _ = s.doRequest(http.MethodPost, "/api/v1/update-password", dto.UpdatePasswordRequest{
		OldPassword: "Password1!",
		NewPassword: "Password1!",
	}, data.AccessToken, nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	// New password failing the policy
	resp, _ = s.doRequest(http.MethodPost, "/api/v1/update-password", dto.UpdatePasswordRequest{
		OldPassword: "Password1!",
		NewPassword: "weak",
	}, data.AccessToken, nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	// Valid change
	resp, _ = s.doRequest(http.MethodPost, "/api/v1/update-password", dto.UpdatePasswordRequest{
		OldPassword: "Password1!",
		NewPassword: "NewPassword1!",
	}, data.AccessToken, nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	// Old credential stops working, the new one logs in
	resp, _ = s.doRequest(http.MethodPost, "/api/v1/login", dto.LoginRequest{
		Email:    "changepass@example.com",
		Password: "Password1!",
	}, "", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	s.login("changepass@example.com", "NewPassword1!")
}
