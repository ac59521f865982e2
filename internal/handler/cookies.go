package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/skillswap/skillswap/internal/domain"
)

// Cookie names shared with the frontend
const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
	viewHistoryCookie  = "viewedProfiles"
)

// setSessionCookies installs both session credentials as secure, httpOnly
// cookies
func setSessionCookies(c *gin.Context, pair *domain.TokenPair, accessMaxAge, refreshMaxAge int) {
	c.SetCookie(accessTokenCookie, pair.AccessToken, accessMaxAge, "/", "", true, true)
	c.SetCookie(refreshTokenCookie, pair.RefreshToken, refreshMaxAge, "/", "", true, true)
}

// clearSessionCookies expires both session cookies
func clearSessionCookies(c *gin.Context) {
	c.SetCookie(accessTokenCookie, "", -1, "/", "", true, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", true, true)
}

// readViewHistory decodes the view-history cookie. The value is a client-held
// hint, so any malformed content simply resets it.
func readViewHistory(c *gin.Context) []string {
	raw, err := c.Cookie(viewHistoryCookie)
	if err != nil || raw == "" {
		return []string{}
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return []string{}
	}

	return ids
}

// writeViewHistory re-sets the view-history cookie with the updated set
func writeViewHistory(c *gin.Context, ids []string) {
	raw, err := json.Marshal(ids)
	if err != nil {
		return
	}
	c.SetCookie(viewHistoryCookie, string(raw), 0, "/", "", true, true)
}
