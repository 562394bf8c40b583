package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/careerly/internal/utils"
)

const AdminKeyHeader = "X-Admin-Key"

// AdminKey compares X-Admin-Key against a bcrypt hash. With no hash
// configured every request is refused.
func AdminKey(hash string) gin.HandlerFunc {
	hash = strings.TrimSpace(hash)
	return func(c *gin.Context) {
		key := c.GetHeader(AdminKeyHeader)
		if hash == "" || key == "" {
			abort(c, http.StatusUnauthorized, utils.CodeUnauthorized, "unauthorized")
			return
		}
		if err := utils.CheckSecret(hash, key); err != nil {
			abort(c, http.StatusUnauthorized, utils.CodeUnauthorized, "unauthorized")
			return
		}
		c.Next()
	}
}
