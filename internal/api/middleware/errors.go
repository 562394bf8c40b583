package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yoockh/careerly/internal/utils"
)

// Context keys set by the auth middleware.
const (
	CtxUserID   = "user_id"
	CtxEmail    = "email"
	CtxUserType = "user_type"
)

type apiError struct {
	Error string     `json:"error"`
	Code  utils.Code `json:"code"`
}

func abort(c *gin.Context, status int, code utils.Code, msg string) {
	c.AbortWithStatusJSON(status, apiError{Error: msg, Code: code})
}
