package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}

// List writes the envelope used by collection endpoints.
func List(c *gin.Context, items any, total int) {
	c.Set("resultCount", total)
	JSON(c, http.StatusOK, gin.H{"items": items, "total": total})
}
