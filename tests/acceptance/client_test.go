package acceptance

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/skillswap/skillswap/internal/dto"
)

// envelope mirrors dto.APIResponse with the payload left raw so each test can
// decode its own shape
type envelope struct {
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (s *Suite) doRequest(method, path string, body interface{}, token string, cookies []*http.Cookie) (*http.Response, []byte) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.BaseURL+path, reader)
	s.Require().NoError(err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	return resp, raw
}

func (s *Suite) decodeData(raw []byte, out interface{}) {
	var env envelope
	s.Require().NoError(json.Unmarshal(raw, &env))
	s.Require().NoError(json.Unmarshal(env.Data, out))
}

// signUp registers a user and returns its public projection
func (s *Suite) signUp(firstName, email, password string) *dto.UserResponse {
	resp, raw := s.doRequest(http.MethodPost, "/api/v1/sign-up", dto.SignUpRequest{
		FirstName: firstName,
		Email:     email,
		Password:  password,
	}, "", nil)
	s.Require().Equal(http.StatusCreated, resp.StatusCode, "sign-up failed: %s", raw)

	var user dto.UserResponse
	s.decodeData(raw, &user)
	return &user
}

// login authenticates and returns the session payload plus the cookies the
// server installed
func (s *Suite) login(email, password string) (*dto.AuthData, []*http.Cookie) {
	resp, raw := s.doRequest(http.MethodPost, "/api/v1/login", dto.LoginRequest{
		Email:    email,
		Password: password,
	}, "", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, "login failed: %s", raw)

	var data dto.AuthData
	s.decodeData(raw, &data)
	return &data, resp.Cookies()
}

// signUpAndLogin is the common fixture: a fresh user with an active session
func (s *Suite) signUpAndLogin(firstName, email string) (*dto.AuthData, []*http.Cookie) {
	s.signUp(firstName, email, "Password1!")
	return s.login(email, "Password1!")
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
