package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
	"github.com/Okojas/MediCare-doctor-appointment/pkg/auth"
	"github.com/Okojas/MediCare-doctor-appointment/pkg/httputil"
)

const identityKey = "identity"

type AuthMiddleware struct {
	jwtSvc auth.JWTService
}

func NewAuthMiddleware(jwtSvc auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtSvc: jwtSvc}
}

// Authenticate verifies the bearer token and places the caller identity
// in the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				httputil.Response{Status: "error", Message: "missing authorization header"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				httputil.Response{Status: "error", Message: "invalid authorization format"})
			return
		}

		claims, err := m.jwtSvc.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				httputil.Response{Status: "error", Message: "invalid token"})
			return
		}

		c.Set(identityKey, model.Identity{UserID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}

// RequireRole rejects callers whose role is not in the allowed set.
func (m *AuthMiddleware) RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				httputil.Response{Status: "error", Message: "not authenticated"})
			return
		}

		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden,
			httputil.Response{Status: "error", Message: "insufficient role"})
	}
}

// IdentityFromContext returns the authenticated caller set by Authenticate.
func IdentityFromContext(c *gin.Context) (model.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return model.Identity{}, false
	}
	identity, ok := v.(model.Identity)
	return identity, ok
}
