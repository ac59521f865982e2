package dto

import "github.com/skillswap/skillswap/internal/domain"

// APIResponse is the success envelope: status code, data payload, message
type APIResponse struct {
	Status  int         `json:"status"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// ErrorResponse is the failure envelope
type ErrorResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// UserResponse is a user projection with credentials stripped
type UserResponse struct {
	ID              string   `json:"id"`
	Email           string   `json:"email"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Bio             string   `json:"bio"`
	TechStack       []string `json:"techStack"`
	LookingToLearn  []string `json:"lookingToLearn"`
	GithubURL       string   `json:"githubURL"`
	LinkedinURL     string   `json:"linkedinURL"`
	DiscordID       string   `json:"discordID"`
	Avatar          string   `json:"avatar"`
	ImpressionCount int64    `json:"impressionCount"`
}

// TopProfile is the reduced projection served by the public explore endpoint
type TopProfile struct {
	ID              string   `json:"id"`
	Email           string   `json:"email"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Bio             string   `json:"bio"`
	TechStack       []string `json:"techStack"`
	GithubURL       string   `json:"githubURL"`
	LinkedinURL     string   `json:"linkedinURL"`
	DiscordID       string   `json:"discordID"`
	Avatar          string   `json:"avatar"`
	ImpressionCount int64    `json:"impressionCount"`
}

// AuthData is the login/refresh payload: the user plus both tokens
type AuthData struct {
	User         *UserResponse `json:"user"`
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
}

// NewUserResponse projects a domain user, never exposing password or
// refresh token fields
func NewUserResponse(user *domain.User) *UserResponse {
	return &UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Bio:             user.Bio,
		TechStack:       user.TechStack,
		LookingToLearn:  user.LookingToLearn,
		GithubURL:       user.GithubURL,
		LinkedinURL:     user.LinkedinURL,
		DiscordID:       user.DiscordID,
		Avatar:          user.Avatar,
		ImpressionCount: user.ImpressionCount,
	}
}

// NewUserResponses projects a slice of domain users
func NewUserResponses(users []*domain.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, NewUserResponse(user))
	}
	return out
}

// NewTopProfile projects a domain user for the explore endpoint
func NewTopProfile(user *domain.User) *TopProfile {
	return &TopProfile{
		ID:              user.ID,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Bio:             user.Bio,
		TechStack:       user.TechStack,
		GithubURL:       user.GithubURL,
		LinkedinURL:     user.LinkedinURL,
		DiscordID:       user.DiscordID,
		Avatar:          user.Avatar,
		ImpressionCount: user.ImpressionCount,
	}
}
