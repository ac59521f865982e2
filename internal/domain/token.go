package domain

import "time"

// AccessClaims represents the claims carried by an access token
type AccessClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	Exp       int64  `json:"exp"`
	Iat       int64  `json:"iat"`
}

// TokenPair represents a pair of access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// IsExpired checks if the token is expired
func (c AccessClaims) IsExpired() bool {
	return time.Now().Unix() > c.Exp
}
