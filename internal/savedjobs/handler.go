package savedjobs

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jobportal/internal/shared/server/middleware"
	"jobportal/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs/save", h.apply)
	rg.GET("/jobs/saved", h.list)
}

type saveRequest struct {
	Action      string `json:"action"`
	JobID       string `json:"job_id"`
	Title       string `json:"job_title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	RedirectURL string `json:"redirect_url"`
	Salary      string `json:"salary"`
	PostedDate  string `json:"posted_date"`
}

type savedJobResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	RedirectURL string    `json:"redirect_url"`
	Salary      string    `json:"salary"`
	PostedDate  string    `json:"postedDate"`
	SavedAt     time.Time `json:"saved_at"`
	Saved       bool      `json:"saved"`
}

func (h *Handler) apply(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	res, err := h.Svc.Apply(c.Request.Context(), middleware.UserIDFromContext(c), req.Action, SavedJob{
		JobID:       req.JobID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Description: req.Description,
		RedirectURL: req.RedirectURL,
		Salary:      req.Salary,
		PostedDate:  req.PostedDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingJobID):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Job ID is required", nil)
		case errors.Is(err, ErrInvalidAction):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid action", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update saved jobs", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"success": true,
		"saved":   res.Saved,
		"message": res.Message,
	})
}

func (h *Handler) list(c *gin.Context) {
	jobs, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list saved jobs", nil)
		return
	}

	out := make([]savedJobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, savedJobResponse{
			ID:          j.JobID,
			Title:       j.Title,
			Company:     j.Company,
			Location:    j.Location,
			Description: j.Description,
			RedirectURL: j.RedirectURL,
			Salary:      j.Salary,
			PostedDate:  j.PostedDate,
			SavedAt:     j.SavedAt,
			Saved:       true,
		})
	}
	respond.OK(c, gin.H{"success": true, "jobs": out})
}
