package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "meditech-backend/pkg/errors"
)

// envelope is the uniform response shape: {success, count?, message?, data|error}.
type envelope struct {
	Success bool        `json:"success"`
	Count   *int        `json:"count,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respondData(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

func respondList(c *gin.Context, count int, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Count: &count, Data: data})
}

func respondError(c *gin.Context, err error) {
	status := statusFor(apperrors.CodeOf(err))
	if status >= http.StatusInternalServerError {
		log.Printf("[HTTP] %s %s -> %d: %v", c.Request.Method, c.Request.URL.Path, status, err)
	}
	c.JSON(status, envelope{Success: false, Error: err.Error()})
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, envelope{Success: false, Error: err.Error()})
}

// statusFor maps every failure kind to a distinct outward signal.
func statusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeValidation, apperrors.ErrCodeBadRequest:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeNotification:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
