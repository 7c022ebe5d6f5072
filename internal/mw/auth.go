package mw

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"hostel-backend/internal/apperr"
	"hostel-backend/internal/auth"
	"hostel-backend/internal/model"
)

const principalKey = "principal"

// TokenParser resolves a bearer token to the caller it identifies.
type TokenParser interface {
	Parse(token string) (*auth.Principal, error)
}

// Authenticate requires a valid "Authorization: Bearer <token>" header and
// stores the caller on the context.
func Authenticate(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apperr.Respond(c, apperr.Unauthorized("Authorization header is required"))
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header || tokenString == "" {
			apperr.Respond(c, apperr.Unauthorized("Invalid authorization header format"))
			return
		}

		principal, err := tokens.Parse(tokenString)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				msg = "Token expired"
			}
			apperr.Respond(c, apperr.Unauthorized(msg))
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireRole rejects callers whose role is not listed. It must run after
// Authenticate.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentUser(c)
		if !ok {
			apperr.Respond(c, apperr.Unauthorized("Not authenticated"))
			return
		}
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		apperr.Respond(c, apperr.Forbidden("Access denied"))
	}
}

// CurrentUser returns the caller stored by Authenticate.
func CurrentUser(c *gin.Context) (*auth.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*auth.Principal)
	return p, ok
}
