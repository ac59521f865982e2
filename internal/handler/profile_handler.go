package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skillswap/skillswap/internal/dto"
	"github.com/skillswap/skillswap/internal/service"
)

// ProfileHandler handles profile reads and mutations
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// GetMe returns the current user's own profile
func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID := c.GetString(ContextUserID)

	user, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, dto.NewUserResponse(user), "Current user fetched successfully")
}

// GetProfile fetches another user's profile, counting the view when this
// viewer has not seen it before
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	targetID := strings.TrimSpace(c.Param("id"))
	if targetID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Status:  http.StatusBadRequest,
			Error:   "Bad Request",
			Message: "user id is missing",
		})
		return
	}

	viewerID := c.GetString(ContextUserID)
	history := readViewHistory(c)

	user, updatedHistory, err := h.profileService.RecordView(c.Request.Context(), viewerID, targetID, history)
	if err != nil {
		respondError(c, err)
		return
	}

	writeViewHistory(c, updatedHistory)

	respond(c, http.StatusOK, dto.NewUserResponse(user), "User fetched successfully")
}

// UpdateProfile applies allow-listed profile field changes
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Status:  http.StatusBadRequest,
			Error:   "Bad Request",
			Message: err.Error(),
		})
		return
	}

	userID := c.GetString(ContextUserID)

	user, err := h.profileService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, dto.NewUserResponse(user), "User profile updated successfully")
}

// UpdateAvatar uploads a new avatar image and stores its hosted URL
func (h *ProfileHandler) UpdateAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Status:  http.StatusBadRequest,
			Error:   "Bad Request",
			Message: "avatar image is required, nothing to update",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, fmt.Errorf("failed to open uploaded file: %w", err))
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	userID := c.GetString(ContextUserID)

	user, err := h.profileService.UpdateAvatar(c.Request.Context(), userID, fileHeader.Filename, contentType, file, fileHeader.Size)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, dto.NewUserResponse(user), "Avatar image updated successfully")
}
