package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/rentaltrack/rental-api/internal/handler"
	"github.com/rentaltrack/rental-api/pkg/auth"
)

const realtorIDKey = "realtorID"

// Auth validates the bearer token and stores the realtor ID on the gin
// context. Validated claims are cached keyed by the raw token so repeat
// requests skip the signature check; expiry is still enforced.
func Auth(tokens *auth.JWTManager) gin.HandlerFunc {
	claimsCache := gocache.New(5*time.Minute, 10*time.Minute)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				handler.NewErrorResponse("missing or malformed authorization header"))
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		if cached, ok := claimsCache.Get(raw); ok {
			claims := cached.(*auth.Claims)
			if claims.ExpiresAt != nil && claims.ExpiresAt.After(time.Now()) {
				c.Set(realtorIDKey, claims.RealtorID)
				c.Next()
				return
			}
			claimsCache.Delete(raw)
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				handler.NewErrorResponse("invalid or expired token"))
			return
		}

		claimsCache.Set(raw, claims, gocache.DefaultExpiration)
		c.Set(realtorIDKey, claims.RealtorID)
		c.Next()
	}
}

// RealtorID returns the authenticated realtor set by Auth. Routes behind
// the middleware always have it; elsewhere it is the zero UUID.
func RealtorID(c *gin.Context) uuid.UUID {
	v, _ := c.Get(realtorIDKey)
	id, _ := v.(uuid.UUID)
	return id
}
