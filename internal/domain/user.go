package domain

import "time"

// User represents a user in the system
type User struct {
	ID               string    `json:"id" db:"id"`
	Email            string    `json:"email" db:"email"`
	PasswordHash     string    `json:"-" db:"password_hash"`
	FirstName        string    `json:"first_name" db:"first_name"`
	LastName         string    `json:"last_name" db:"last_name"`
	Bio              string    `json:"bio" db:"bio"`
	TechStack        []string  `json:"tech_stack" db:"tech_stack"`
	LookingToLearn   []string  `json:"looking_to_learn" db:"looking_to_learn"`
	GithubURL        string    `json:"github_url" db:"github_url"`
	LinkedinURL      string    `json:"linkedin_url" db:"linkedin_url"`
	DiscordID        string    `json:"discord_id" db:"discord_id"`
	Avatar           string    `json:"avatar" db:"avatar"`
	ImpressionCount  int64     `json:"impression_count" db:"impression_count"`
	RefreshTokenHash *string   `json:"-" db:"refresh_token_hash"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// HasSession reports whether the user currently holds an active refresh token.
func (u *User) HasSession() bool {
	return u.RefreshTokenHash != nil && *u.RefreshTokenHash != ""
}
