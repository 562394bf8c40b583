package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/careerly/internal/services"
)

type AIHandler struct {
	svc services.GeneratorService
}

func NewAIHandler(svc services.GeneratorService) *AIHandler {
	return &AIHandler{svc: svc}
}

func (h *AIHandler) CoverLetter(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var in services.CoverLetterInput
	if !bindJSON(c, "AIHandler.CoverLetter", &in) {
		return
	}

	res, err := h.svc.CoverLetter(c.Request.Context(), userID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "coverLetter": res.CoverLetter, "fallback": res.Fallback})
}

func (h *AIHandler) EnhanceParagraph(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var in services.ParagraphInput
	if !bindJSON(c, "AIHandler.EnhanceParagraph", &in) {
		return
	}

	text, err := h.svc.EnhanceParagraph(c.Request.Context(), userID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "enhancedText": text})
}

func (h *AIHandler) EnhanceResumeSection(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var in services.SectionInput
	if !bindJSON(c, "AIHandler.EnhanceResumeSection", &in) {
		return
	}

	text, err := h.svc.EnhanceResumeSection(c.Request.Context(), userID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "enhancedContent": text})
}

func (h *AIHandler) History(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	limit, ok := queryLimit(c, "AIHandler.History")
	if !ok {
		return
	}

	rows, err := h.svc.History(c.Request.Context(), userID, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"generations": rows})
}
