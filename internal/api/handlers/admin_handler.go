package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/careerly/internal/bootstrap"
)

// AdminHandler exposes the one-shot bootstrap steps. Routes are guarded
// by middleware.AdminKey.
type AdminHandler struct {
	svc *bootstrap.Service
}

func NewAdminHandler(svc *bootstrap.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) Bucket(c *gin.Context) {
	res, err := h.svc.EnsureBucket(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) Schema(c *gin.Context) {
	res, err := h.svc.CreateSchema(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) Seed(c *gin.Context) {
	res, err := h.svc.Seed(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) Waitlist(c *gin.Context) {
	res, err := h.svc.AddWaitlistStatus(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
