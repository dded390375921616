package middleware

import (
	"database/sql"
	"errors"
	"net/http"

	"projecthub/internal/models"
	"projecthub/internal/repository"
	"projecthub/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CurrentUserKey is the gin context key holding the resolved user.
const CurrentUserKey = "currentUser"

// AuthMiddleware guards routes with the session cookie. The token must carry
// a valid signature and expiry, and its claims must still match a live user
// row (id, email and username together), so tokens issued before an account
// mutation are rejected.
func AuthMiddleware(users repository.UserRepository, secret []byte, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("token")
		if err != nil || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid Token!"})
			return
		}

		claims, err := service.ParseToken(tokenString, secret)
		if err != nil {
			if errors.Is(err, service.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token expired"})
				return
			}
			logger.Debug("Rejected malformed token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid Token!"})
			return
		}

		user, err := users.GetByClaims(claims.UserID, claims.Email, claims.Username)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				logger.Error("Failed to resolve token claims", zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid Token!"})
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user resolved by AuthMiddleware. Calling it on an
// unguarded route panics, which is a programming error.
func CurrentUser(c *gin.Context) *models.UserInfo {
	return c.MustGet(CurrentUserKey).(*models.UserInfo)
}
