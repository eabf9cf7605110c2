package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-2xx response. Seats is set only for
// seat conflicts.
type ErrorResponse struct {
	Message   string   `json:"message"`
	Details   string   `json:"details,omitempty"`
	Seats     []string `json:"seats,omitempty"`
	RequestID string   `json:"requestId,omitempty"`
}

// requestLogger prefers the per-request logger installed by the request
// logging middleware.
func requestLogger(c *gin.Context) *zap.Logger {
	if l, ok := c.Get("logger"); ok {
		if zl, ok := l.(*zap.Logger); ok {
			return zl
		}
	}
	return GetLogger()
}

// ErrorHandler recovers panics into a 500 response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				requestLogger(c).Error("panic while serving request",
					zap.Any("panic", rec),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message:   "Internal Server Error",
					RequestID: c.GetString("requestID"),
				})
			}
		}()
		c.Next()
	}
}

// JSONError writes an error body. 5xx responses are logged at error level and
// their details are not echoed to the caller.
func JSONError(c *gin.Context, status int, message, details string) {
	logger := requestLogger(c)
	resp := ErrorResponse{Message: message, RequestID: c.GetString("requestID")}
	if status >= http.StatusInternalServerError {
		logger.Error(message, zap.Int("status", status), zap.String("details", details))
	} else {
		logger.Debug(message, zap.Int("status", status), zap.String("details", details))
		resp.Details = details
	}
	c.JSON(status, resp)
}

// JSONSeatConflict reports seats that could not be reserved.
func JSONSeatConflict(c *gin.Context, message string, seats []string) {
	requestLogger(c).Info("seat conflict", zap.Strings("seats", seats))
	c.JSON(http.StatusConflict, ErrorResponse{
		Message:   message,
		Seats:     seats,
		RequestID: c.GetString("requestID"),
	})
}
