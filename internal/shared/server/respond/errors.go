package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobportal/internal/shared/telemetry"
)

// ErrorBody is the payload of every non-2xx API response:
//
//	{"error":{"code":"validation_error","message":"Text is required"}}
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error logs the failure, writes the envelope and aborts the handler chain.
func Error(c *gin.Context, status int, code, message string, details any) {
	logError(c, status, code, message)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message, Details: details}})
}

// logError records 4xx at warn and 5xx at error, tagged with the caller.
func logError(c *gin.Context, status int, code, message string) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"route":      c.FullPath(),
		"request_id": c.GetString("requestId"),
	}
	if id := c.GetString("userId"); id != "" {
		fields["user_id"] = id
	}
	if guest, ok := c.Get("isGuest"); ok {
		fields["is_guest"] = guest
	}

	log := telemetry.Warn
	if status >= http.StatusInternalServerError {
		log = telemetry.Error
	}
	log("http.error", fields)
}
