package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/careerly/internal/services"
	"github.com/yoockh/careerly/internal/utils"
)

type ResumeHandler struct {
	svc       services.ResumeService
	generator services.GeneratorService
}

func NewResumeHandler(svc services.ResumeService, generator services.GeneratorService) *ResumeHandler {
	return &ResumeHandler{svc: svc, generator: generator}
}

func (h *ResumeHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	limit, ok := queryLimit(c, "ResumeHandler.List")
	if !ok {
		return
	}

	rows, err := h.svc.List(c.Request.Context(), userID, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resumes": rows})
}

func (h *ResumeHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	row, err := h.svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resume": row})
}

type resumeRequest struct {
	Content json.RawMessage `json:"content"`
}

func (h *ResumeHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req resumeRequest
	if !bindJSON(c, "ResumeHandler.Create", &req) {
		return
	}

	row, err := h.svc.Create(c.Request.Context(), userID, c.GetString("email"), req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "resume": row})
}

func (h *ResumeHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req resumeRequest
	if !bindJSON(c, "ResumeHandler.Update", &req) {
		return
	}

	row, err := h.svc.Update(c.Request.Context(), userID, c.Param("id"), req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "resume": row})
}

// Upload accepts multipart field "file": a PDF of at most 10MB.
func (h *ResumeHandler) Upload(c *gin.Context) {
	const op = "ResumeHandler.Upload"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "missing multipart field 'file'", err))
		return
	}
	if ext := strings.ToLower(filepath.Ext(fh.Filename)); ext != ".pdf" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "only .pdf is allowed", nil))
		return
	}
	if fh.Size <= 0 || fh.Size > services.MaxResumeFileSize {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "file too large (max 10MB)", nil))
		return
	}

	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
		return
	}
	defer file.Close()

	head := make([]byte, 512)
	n, _ := io.ReadFull(file, head)
	head = head[:n]
	if http.DetectContentType(head) != "application/pdf" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid content type (must be pdf)", nil))
		return
	}

	url, err := h.svc.Upload(c.Request.Context(), userID, io.MultiReader(bytes.NewReader(head), file))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}

type feedbackRequest struct {
	TargetRole string `json:"target_role"`
}

func (h *ResumeHandler) Feedback(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req feedbackRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, "ResumeHandler.Feedback", &req) {
		return
	}

	fb, err := h.generator.ResumeFeedback(c.Request.Context(), userID, c.Param("id"), req.TargetRole)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "feedback": fb})
}
