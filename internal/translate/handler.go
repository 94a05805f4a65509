package translate

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobportal/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/translate", h.translate)
}

type translateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
}

func (h *Handler) translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Text == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Text is required", nil)
		return
	}
	target := strings.TrimSpace(req.TargetLanguage)
	if target == "" {
		target = DefaultTarget
	}

	respond.OK(c, gin.H{
		"success":         true,
		"translated_text": h.Svc.Translate(c.Request.Context(), req.Text, target),
		"target_language": target,
	})
}
