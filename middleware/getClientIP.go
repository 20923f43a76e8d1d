package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// getClientIP resolves the caller through gin's trusted proxy rules, so
// X-Forwarded-For and X-Real-IP only count when the peer is a configured
// proxy. The raw peer address is the last resort.
func getClientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}
	return c.Request.RemoteAddr
}
