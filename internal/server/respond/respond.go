package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorCodeKey is the gin context key the access log reads the error code from.
const ErrorCodeKey = "errorCode"

// ErrorBody is the error object of every failed response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}

// Error aborts the request with the standard error envelope.
func Error(c *gin.Context, status int, code, message string, details any) {
	c.Set(ErrorCodeKey, code)
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}
