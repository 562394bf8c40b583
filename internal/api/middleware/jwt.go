package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/careerly/internal/auth"
	"github.com/yoockh/careerly/internal/utils"
)

// JWTAuth requires a valid Supabase access token, read from the
// Authorization header or the session cookie.
func JWTAuth(v *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := v.Verify(rawToken(c))
		switch {
		case err == nil:
		case errors.Is(err, auth.ErrNotConfigured):
			abort(c, http.StatusInternalServerError, utils.CodeNotConfigured, "SUPABASE_JWT_SECRET is not set")
			return
		case errors.Is(err, auth.ErrMissingToken):
			abort(c, http.StatusUnauthorized, utils.CodeUnauthorized, "unauthorized")
			return
		case errors.Is(err, auth.ErrTokenExpired):
			abort(c, http.StatusUnauthorized, utils.CodeUnauthorized, "token expired")
			return
		default:
			abort(c, http.StatusUnauthorized, utils.CodeUnauthorized, "invalid token")
			return
		}

		c.Set(CtxUserID, id.UserID)
		c.Set(CtxEmail, id.Email)
		c.Next()
	}
}

// OptionalJWT sets the identity when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalJWT(v *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := v.Verify(rawToken(c)); err == nil {
			c.Set(CtxUserID, id.UserID)
			c.Set(CtxEmail, id.Email)
		}
		c.Next()
	}
}

func rawToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if v, err := c.Cookie(auth.AccessCookie); err == nil {
		return strings.TrimSpace(v)
	}
	return ""
}
