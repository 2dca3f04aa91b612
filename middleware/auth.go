package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/models"
	"storefront/services"
	"storefront/utils"
)

const SessionKey = "session"

// SessionMiddleware resolves the bearer token to a live storefront session
// and stores it in the gin context under SessionKey.
func SessionMiddleware(secret string, sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Authorization header required",
			})
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Invalid authorization header format",
			})
			return
		}

		claims, err := utils.ValidateSessionToken(secret, tokenParts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Invalid or expired session",
				Error:   err.Error(),
			})
			return
		}

		session, err := sessions.Get(claims.SessionID())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Session expired, reload the page",
				Error:   err.Error(),
			})
			return
		}

		c.Set(SessionKey, session)
		c.Next()
	}
}

func CurrentSession(c *gin.Context) *services.Session {
	value, ok := c.Get(SessionKey)
	if !ok {
		return nil
	}
	session, _ := value.(*services.Session)
	return session
}
