package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillswap/skillswap/internal/dto"
	"github.com/skillswap/skillswap/internal/repository"
	"github.com/skillswap/skillswap/internal/service"
	"github.com/skillswap/skillswap/internal/utils"
)

// respond writes the success envelope
func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, dto.APIResponse{
		Status:  status,
		Data:    data,
		Message: message,
	})
}

// respondError maps a service error onto the failure envelope
func respondError(c *gin.Context, err error) {
	status, label := statusFor(err)
	c.JSON(status, dto.ErrorResponse{
		Status:  status,
		Error:   label,
		Message: err.Error(),
	})
}

// abortError is respondError for middleware
func abortError(c *gin.Context, err error) {
	status, label := statusFor(err)
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Status:  status,
		Error:   label,
		Message: err.Error(),
	})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return http.StatusConflict, "Conflict"
	case errors.Is(err, service.ErrTokenReused):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, utils.ErrTokenExpired),
		errors.Is(err, utils.ErrTokenInvalid):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrNoResults):
		return http.StatusNotFound, "Not Found"
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrSamePassword),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrNothingToUpdate):
		return http.StatusBadRequest, "Bad Request"
	case errors.Is(err, service.ErrUploadFailed):
		return http.StatusBadGateway, "Upstream Error"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}
