package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/canvasstudy/internal/domain"
)

const (
	canvasTokenKey   = "canvasToken"
	canvasBaseURLKey = "canvasBaseURL"

	// BaseURLHeader lets clients send the Canvas base URL outside the body.
	BaseURLHeader = "X-Canvas-Base-Url"
)

// CanvasCredentials picks up a bearer token and base URL sent as headers so
// that tokens can stay out of query strings.
func CanvasCredentials() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c.GetHeader("Authorization")); token != "" {
			c.Set(canvasTokenKey, token)
		}
		if base := strings.TrimSpace(c.GetHeader(BaseURLHeader)); base != "" {
			c.Set(canvasBaseURLKey, base)
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// ResolveCredentials fills values missing from the request body or query
// with the ones captured from headers.
func ResolveCredentials(c *gin.Context, creds domain.Credentials) domain.Credentials {
	creds = creds.Normalize()
	if creds.APIToken == "" {
		creds.APIToken = c.GetString(canvasTokenKey)
	}
	if creds.BaseURL == "" {
		creds.BaseURL = c.GetString(canvasBaseURLKey)
	}
	return creds.Normalize()
}
