package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/peds-protocol-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithCreated sends a created response
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithError sends an error response, mapping the application error
// taxonomy onto HTTP status codes. Engine conditions (invalid input,
// unknown lookup keys, terminal ladder) are all client-recoverable.
func RespondWithError(c *gin.Context, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
		switch appErr.Code {
		case apperrors.ErrNotFound, apperrors.ErrUnknownCondition, apperrors.ErrDrugNotFound:
			statusCode = http.StatusNotFound
		case apperrors.ErrBadRequest, apperrors.ErrInvalidInput:
			statusCode = http.StatusBadRequest
		case apperrors.ErrUnauthorized:
			statusCode = http.StatusUnauthorized
		case apperrors.ErrForbidden:
			statusCode = http.StatusForbidden
		case apperrors.ErrConflict, apperrors.ErrTerminalLadder:
			statusCode = http.StatusConflict
		}
	}

	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    statusCode,
			Message: message,
		},
	})
}
