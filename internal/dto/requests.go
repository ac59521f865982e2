package dto

// SignUpRequest represents a registration request
type SignUpRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token in the body for clients that do not
// use the cookie
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// UpdatePasswordRequest represents a password change request
type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// UpdateProfileRequest carries the allow-listed updatable profile fields.
// Absent fields are left untouched.
type UpdateProfileRequest struct {
	FirstName      *string  `json:"firstName"`
	LastName       *string  `json:"lastName"`
	Bio            *string  `json:"bio"`
	GithubURL      *string  `json:"githubURL"`
	LinkedinURL    *string  `json:"linkedinURL"`
	DiscordID      *string  `json:"discordID"`
	TechStack      []string `json:"techStack"`
	LookingToLearn []string `json:"lookingToLearn"`
}
