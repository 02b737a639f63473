package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/licorera-api/internal/presentation/http/dto/response"
	"github.com/sangkips/licorera-api/internal/presentation/http/handler"
	"github.com/sangkips/licorera-api/pkg/logger"
	"github.com/sangkips/licorera-api/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(handler.UserIDKey, claims.UserID)
		c.Set(handler.UserEmailKey, claims.Email)
		c.Request = c.Request.WithContext(log.WithUserID(c.Request.Context(), claims.UserID.String()))

		c.Next()
	}
}
