package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/careerly/internal/models"
	"github.com/yoockh/careerly/internal/services"
	"github.com/yoockh/careerly/internal/utils"
)

// RequireUserType runs after JWTAuth. A caller whose row is missing or has
// another user_type gets 401.
func RequireUserType(users services.UserService, want models.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(CtxUserID)
		if userID == "" {
			abort(c, http.StatusUnauthorized, utils.CodeUnauthorized, "unauthorized")
			return
		}

		t, err := users.UserType(c.Request.Context(), userID)
		if err != nil && !utils.IsCode(err, utils.CodeNotFound) {
			_ = c.Error(err)
			abort(c, http.StatusInternalServerError, utils.CodeInternal, "failed to load user")
			return
		}
		if t != want {
			abort(c, http.StatusUnauthorized, utils.CodeUnauthorized, "unauthorized")
			return
		}

		c.Set(CtxUserType, string(t))
		c.Next()
	}
}
