package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/careerly/internal/services"
	"github.com/yoockh/careerly/internal/utils"
)

type JobHandler struct {
	svc services.JobService
}

func NewJobHandler(svc services.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

// List is public; a signed-in company additionally sees its own drafts
// and closed postings.
func (h *JobHandler) List(c *gin.Context) {
	const op = "JobHandler.List"

	limit, ok := queryLimit(c, op)
	if !ok {
		return
	}
	mine := false
	if raw := c.Query("mine"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "mine must be true or false", err))
			return
		}
		mine = b
	}

	jobs, err := h.svc.List(c.Request.Context(), c.GetString("user_id"), services.JobListQuery{
		Status:    c.Query("status"),
		CompanyID: c.Query("company_id"),
		Mine:      mine,
		Limit:     limit,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.svc.Get(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

func (h *JobHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var in services.CreateJobInput
	if !bindJSON(c, "JobHandler.Create", &in) {
		return
	}

	job, err := h.svc.Create(c.Request.Context(), userID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "job": job})
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *JobHandler) UpdateStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req statusRequest
	if !bindJSON(c, "JobHandler.UpdateStatus", &req) {
		return
	}

	job, err := h.svc.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "job": job})
}
