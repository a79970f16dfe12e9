package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	clientIDKey    = "clientId"
	clientIDHeader = "X-Client-Id"
	maxClientIDLen = 128
)

// ClientID reads the anonymous browser identity from X-Client-Id and stores it
// in context. Requests without one are still served; handlers that need an
// identity check ClientIDFromContext themselves.
func ClientID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		id := strings.TrimSpace(c.GetHeader(clientIDHeader))
		if len(id) > maxClientIDLen {
			id = id[:maxClientIDLen]
		}
		if id != "" {
			c.Set(clientIDKey, id)
		}
		c.Next()
	}
}

// ClientIDFromContext fetches the client ID set by the ClientID middleware.
func ClientIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(clientIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
