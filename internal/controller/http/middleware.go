package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware emits permissive cross-origin headers on every response,
// errors included, so a browser-hosted storefront can call the API directly.
// Preflight probes are answered with the headers and no body.
func CORSMiddleware(allowOrigin string) gin.HandlerFunc {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", allowOrigin)
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Correlation-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
