package auth

import (
	"catalogue/internal/user"
	"github.com/gin-gonic/gin"
	"github.com/juju/loggo/v2"
	"net/http"
	"strings"
)

var logger = loggo.GetLogger("catalogue.auth")

const principalKey = "principal"

// Middleware authenticates the request with either a bearer JWT or HTTP Basic
// credentials and aborts with 401 when neither is valid.
func Middleware(service Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := authenticate(c, service)
		if !ok {
			c.Header("WWW-Authenticate", `Basic realm="catalogue"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

func authenticate(c *gin.Context, service Service) (*Principal, bool) {
	if username, password, ok := c.Request.BasicAuth(); ok {
		principal, err := service.Authenticate(c.Request.Context(), username, password)
		if err != nil {
			logger.Debugf("basic auth for %q rejected: %v", username, err)
			return nil, false
		}
		return principal, true
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}
	principal, err := service.ParseToken(parts[1])
	if err != nil {
		logger.Debugf("bearer token rejected: %v", err)
		return nil, false
	}
	return principal, true
}

// RequireRole lets the request through only when Middleware attached a
// principal holding role.
func RequireRole(role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !HasRole(c, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}

// HasRole reports whether Middleware attached a principal holding role to c.
func HasRole(c *gin.Context, role user.Role) bool {
	principal, ok := PrincipalFrom(c)
	return ok && principal.Role == role
}

func PrincipalFrom(c *gin.Context) (*Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	principal, ok := v.(*Principal)
	return principal, ok
}
