package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/rentaltrack/rental-api/internal/handler"
	apperrors "github.com/rentaltrack/rental-api/pkg/errors"
)

// ErrorHandler converts errors attached via c.Error into the JSON
// envelope. AppError carries its own status; anything else is a 500 with
// the detail kept out of the response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.StatusCode() >= 500 {
				log.Error().Err(err).
					Str("path", c.Request.URL.Path).
					Str("request_id", c.GetString(requestIDKey)).
					Msg("request failed")
			}
			c.JSON(appErr.StatusCode(), handler.NewErrorResponse(appErr.Message))
			return
		}

		log.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString(requestIDKey)).
			Msg("unhandled error")
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("internal server error"))
	}
}
