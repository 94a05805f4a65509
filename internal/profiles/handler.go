package profiles

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jobportal/internal/ats"
	"jobportal/internal/shared/server/middleware"
	"jobportal/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume", h.upload)
	rg.GET("/profile", h.get)
}

type analysisResponse struct {
	Success             bool          `json:"success"`
	Skills              []string      `json:"skills"`
	ATSScore            int           `json:"ats_score"`
	ATSBreakdown        ats.Breakdown `json:"ats_breakdown"`
	MissingKeywords     []string      `json:"missing_keywords"`
	ProfessionalSummary string        `json:"professional_summary"`
}

type profileResponse struct {
	ResumeName   string        `json:"resume_name,omitempty"`
	Skills       []string      `json:"skills"`
	ATSScore     int           `json:"ats_score"`
	ATSBreakdown ats.Breakdown `json:"ats_breakdown"`
	UploadedAt   time.Time     `json:"uploaded_at"`
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No resume file provided", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	p, err := h.Svc.Analyze(c.Request.Context(), userID, middleware.IsGuest(c), fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze resume", nil)
		}
		return
	}
	c.Set(middleware.ProfileIDKey, p.ID)

	respond.OK(c, analysisResponse{
		Success:             true,
		Skills:              p.Skills,
		ATSScore:            p.ATSScore,
		ATSBreakdown:        p.Breakdown,
		MissingKeywords:     p.Breakdown.MissingKeywords,
		ProfessionalSummary: p.Breakdown.ProfessionalSummary,
	})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch profile", nil)
		}
		return
	}

	respond.OK(c, profileResponse{
		ResumeName:   p.ResumeFileName,
		Skills:       p.Skills,
		ATSScore:     p.ATSScore,
		ATSBreakdown: p.Breakdown,
		UploadedAt:   p.UpdatedAt,
	})
}
