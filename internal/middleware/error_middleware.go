package middleware

import (
	"errors"
	"net/http"

	"github.com/findyourpeers/peers/internal/app/models/dto"
	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/findyourpeers/peers/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// Checked in order; the first match wins.
var errorMappings = []errorMapping{
	{apperrors.ErrMissingFields, http.StatusBadRequest, dto.ErrorCodeMissingFields, "All fields are required along with a photo."},
	{apperrors.ErrEmptyPost, http.StatusBadRequest, dto.ErrorCodeEmptyPost, "Post text cannot be empty"},
	{apperrors.ErrInvalidCategory, http.StatusBadRequest, dto.ErrorCodeInvalidCategory, "Invalid category"},
	{apperrors.ErrInvalidImage, http.StatusBadRequest, dto.ErrorCodeInvalidImage, "Invalid image"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, "Bad request"},
	{apperrors.ErrGroupNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Group not found"},
	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrInvalidFormat, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token format"},
	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists"},
	{apperrors.ErrExternalService, http.StatusBadGateway, dto.ErrorCodeExternalServiceError, "Storage service unavailable"},
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}

		detail := dto.NewErrorDetail(m.code, m.message)
		var ce *apperrors.CustomError
		if errors.As(err, &ce) {
			if ce.Message != "" {
				detail.Message = ce.Message
			}
			if field, ok := ce.Details["field"].(string); ok {
				detail.WithField(field)
			}
		}
		if m.status >= http.StatusInternalServerError {
			logger.Error().Err(err).Str("path", c.FullPath()).Msg("Upstream failure")
		}
		c.JSON(m.status, dto.NewErrorResponse(detail))
		return
	}

	logger.Error().Err(err).Str("method", c.Request.Method).Str("path", c.FullPath()).Msg("Unhandled error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
	))
}
