package router

import (
	"context"
	"strings"
)

type principalKey struct{}

// TokenVerifier validates a bearer token and returns the subject it was issued to.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// BearerAuthMiddleware rejects requests without a valid "Authorization: Bearer"
// token. The verified subject is stored on the request context.
func BearerAuthMiddleware(verifier TokenVerifier) MiddlewareFunc {
	return func(c *RequestContext) {
		logger := GetLogger(c)

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			logger.Warn("Missing bearer token", "path", c.Request.URL.Path)
			AbortWithResult(c, UnauthorizedResult("Unauthorized"))
			return
		}

		subject, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			logger.Warn("Bearer token rejected", "path", c.Request.URL.Path, "error", err)
			AbortWithResult(c, UnauthorizedResult("Unauthorized"))
			return
		}

		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), principalKey{}, subject))
		c.Next()
	}
}

// PrincipalFromContext returns the subject stored by BearerAuthMiddleware.
func PrincipalFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(principalKey{}).(string); ok {
		return s
	}
	return ""
}
