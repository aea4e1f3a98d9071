package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Options configures the console CORS policy.
type Options struct {
	AllowedOrigins []string
	// SessionHeader is allowed on requests and exposed so the front-end can
	// pick the session id up after opening a session.
	SessionHeader string
}

var baseAllowedHeaders = []string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-ID"}

// New returns a CORS middleware for the console front-end. An empty origin
// list allows every origin.
func New(opts Options) gin.HandlerFunc {
	allowAll := len(opts.AllowedOrigins) == 0
	originSet := make(map[string]struct{}, len(opts.AllowedOrigins))
	for _, origin := range opts.AllowedOrigins {
		originSet[strings.TrimRight(origin, "/")] = struct{}{}
	}

	allowHeaders := append([]string{}, baseAllowedHeaders...)
	exposeHeaders := []string{"X-Request-ID", "Content-Disposition"}
	if opts.SessionHeader != "" {
		allowHeaders = append(allowHeaders, opts.SessionHeader)
		exposeHeaders = append(exposeHeaders, opts.SessionHeader)
	}
	allowHeaderValue := strings.Join(allowHeaders, ", ")
	exposeHeaderValue := strings.Join(exposeHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := origin == "" || allowAll || hasOrigin(originSet, origin)

		headers := c.Writer.Header()
		headers.Add("Vary", "Origin")
		switch {
		case origin != "" && allowed:
			headers.Set("Access-Control-Allow-Origin", origin)
			headers.Set("Access-Control-Allow-Credentials", "true")
		case origin == "" && allowAll:
			headers.Set("Access-Control-Allow-Origin", "*")
		}

		if c.Request.Method == http.MethodOptions {
			if !allowed {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			headers.Set("Access-Control-Allow-Headers", allowHeaderValue)
			headers.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			headers.Set("Access-Control-Max-Age", "600")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		headers.Set("Access-Control-Expose-Headers", exposeHeaderValue)
		c.Next()
	}
}

func hasOrigin(originSet map[string]struct{}, origin string) bool {
	_, ok := originSet[strings.TrimRight(origin, "/")]
	return ok
}
