package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gymstudio/internal/authctx"
	"gymstudio/internal/domain"
	"gymstudio/internal/pkg/jwt"
	"gymstudio/internal/pkg/response"
)

// JWTAuth validates the bearer token and attaches the caller to the request context.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Missing Authorization header")
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Empty token")
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		setCaller(c, authctx.User{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  domain.UserRole(claims.Role),
		})
		c.Next()
	}
}

// setCaller stores the caller in the request context. The gin keys are only
// read by the request logger.
func setCaller(c *gin.Context, u authctx.User) {
	c.Request = c.Request.WithContext(authctx.WithUser(c.Request.Context(), u))
	c.Set("user_id", u.ID)
	c.Set("role", string(u.Role))
}
