package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/afterschool-console/internal/models"
	appErrors "github.com/noah-isme/afterschool-console/pkg/errors"
	"github.com/noah-isme/afterschool-console/pkg/response"
)

// RequireRoles only lets sessions holding one of roles through.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		session, ok := MustSession(c)
		if !ok {
			return
		}
		if _, ok := allowed[session.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
