package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/luct-faculty/reporting-api/internal/service"
	appErrors "github.com/luct-faculty/reporting-api/pkg/errors"
	"github.com/luct-faculty/reporting-api/pkg/response"
)

// AuthHeader is the fixed header the token is carried in.
const AuthHeader = "X-Auth-Token"

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

// Auth protects routes by requiring a valid token in the X-Auth-Token
// header. Missing, malformed and expired tokens all reject with 401.
func Auth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(AuthHeader)
		if token == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "no token, authorization denied"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}
