package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lodge-backend/models"
	"lodge-backend/utils"
)

const claimsKey = "authClaims"

// AuthRequired validates a Bearer access token and injects the decoded claims
// into the request context so handlers receive an explicit auth context.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			utils.JSONErrorCode(c, http.StatusUnauthorized, "error.missingToken", "missing bearer token")
			c.Abort()
			return
		}
		claims, err := utils.ParseAccessToken(secret, strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			utils.JSONErrorCode(c, http.StatusUnauthorized, "error.invalidToken", "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the caller's role is in the allowed set.
// Must run after AuthRequired.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil || !allowed[claims.Role] {
			utils.JSONErrorCode(c, http.StatusForbidden, "error.forbidden", "insufficient role")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSuperAdmin is shorthand for RequireRole(super_admin).
func RequireSuperAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleSuperAdmin)
}

// ClaimsFrom returns the decoded claims set by AuthRequired, or nil on
// unauthenticated routes.
func ClaimsFrom(c *gin.Context) *utils.AuthClaims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*utils.AuthClaims)
	return claims
}
