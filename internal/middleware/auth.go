package middleware

import (
	"net/http"

	"studentmart-be/internal/auth"
	"studentmart-be/internal/user"
	"studentmart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

// Authenticate resolves the caller's identity from the access token and
// stashes it in the request context. Anonymous requests pass through;
// route-level guards decide whether identity is required.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := auth.ExtractAccessToken(c.Request)
		if tokenStr == "" {
			c.Next()
			return
		}

		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			// An invalid token is treated as anonymous, not an error:
			// expired sessions should still see public pages.
			c.Next()
			return
		}

		ctx := utils.SetUserContext(c.Request.Context(), claims.UserID, claims.Email, claims.Role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIDFromContext(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		c.Next()
	}
}

// RequireRole rejects callers whose role does not cover the required
// one. This is the single authorization gate; handlers never re-check
// roles themselves.
func RequireRole(required user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIDFromContext(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		role := user.Role(utils.GetUserRoleFromContext(c.Request.Context()))
		if !role.Allows(required) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "insufficient permissions",
			})
			return
		}
		c.Next()
	}
}
