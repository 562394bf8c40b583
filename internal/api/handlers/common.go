package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/careerly/internal/utils"
)

// ErrorBody is the error envelope for every JSON route.
type ErrorBody struct {
	Error   string     `json:"error"`
	Code    utils.Code `json:"code"`
	Details any        `json:"details,omitempty"`
}

func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)
	_ = c.Error(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		msg := ae.Message
		if msg == "" {
			msg = http.StatusText(status)
		}
		c.JSON(status, ErrorBody{Error: msg, Code: ae.Code, Details: ae.Details})
		return
	}

	c.JSON(status, ErrorBody{Error: http.StatusText(status), Code: utils.CodeInternal})
}

func requireUserID(c *gin.Context) (string, bool) {
	if s := c.GetString("user_id"); s != "" {
		return s, true
	}
	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "unauthorized", nil))
	return "", false
}

// bindJSON decodes the body into v and writes a 400 on failure.
func bindJSON(c *gin.Context, op string, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		writeError(c, utils.WithDetails(utils.CodeInvalidArgument, op, "invalid request body", err, err.Error()))
		return false
	}
	return true
}

// queryLimit reads ?limit=. Absent means 0 (service default); anything
// that is not a positive integer is a 400.
func queryLimit(c *gin.Context, op string) (int, bool) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "limit must be a positive integer", err))
		return 0, false
	}
	return n, true
}
