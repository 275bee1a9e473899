package middleware

import (
	"fmt"
	"net/http"

	"bet-dashboard/internal/api/models"
	"bet-dashboard/internal/logging"

	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware recovers panics into the error envelope
func ErrorHandler() gin.HandlerFunc {
	log := logging.For("api")
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.WithField("request_id", c.GetString(RequestIDKey)).
			WithField("path", c.Request.URL.Path).
			Errorf("panic recovered: %v", recovered)

		message := "An unexpected error occurred"
		switch v := recovered.(type) {
		case string:
			message = v
		case error:
			message = fmt.Sprintf("internal error: %v", v)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: message,
			},
		})
	})
}
