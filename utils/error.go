package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Error    string `json:"error"`
	Category string `json:"category,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:    "Server error",
					Category: CategoryInternal,
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, category, message string) {
	c.JSON(status, ErrorResponse{Error: message, Category: category})
}

// RespondError maps err onto the error taxonomy and writes it. Internal
// details are logged, never echoed.
func RespondError(c *gin.Context, err error) {
	status, category := Classify(err)
	fields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		GetLogger().Error("request failed", fields...)
	} else {
		GetLogger().Warn("request rejected", fields...)
	}
	JSONError(c, status, category, PublicMessage(err))
}
