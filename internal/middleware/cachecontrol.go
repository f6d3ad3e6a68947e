package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CacheControl marks successful GET responses as privately cacheable for
// maxAge. Meant for read-only reporting endpoints; mutating routes should
// not sit behind it.
func CacheControl(maxAge time.Duration) gin.HandlerFunc {
	value := fmt.Sprintf("private, max-age=%d", int(maxAge.Seconds()))

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Header("Cache-Control", value)
		}
		c.Next()
	}
}
