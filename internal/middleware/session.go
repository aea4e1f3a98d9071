package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/afterschool-console/internal/models"
	appErrors "github.com/noah-isme/afterschool-console/pkg/errors"
	"github.com/noah-isme/afterschool-console/pkg/response"
)

// ContextSessionKey is the gin context key storing the console session.
const ContextSessionKey = "consoleSession"

type sessionResolver interface {
	Resolve(ctx context.Context, id string) (*models.Session, error)
}

// Session protects routes by requiring a live console session addressed by
// header.
func Session(resolver sessionResolver, header string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := resolver.Resolve(c.Request.Context(), c.GetHeader(header))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Set(ContextSessionKey, session)
		c.Next()
	}
}

// CurrentSession returns the session attached by Session.
func CurrentSession(c *gin.Context) (*models.Session, bool) {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil, false
	}
	session, ok := value.(*models.Session)
	return session, ok && session != nil
}

// MustSession aborts with 401 when no session is attached.
func MustSession(c *gin.Context) (*models.Session, bool) {
	session, ok := CurrentSession(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		c.Abort()
	}
	return session, ok
}
