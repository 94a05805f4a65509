package applications

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"jobportal/internal/shared/server/middleware"
	"jobportal/internal/shared/server/respond"
	"jobportal/internal/shared/util"
)

const maxUploadSize = 10 << 20 // 10MB

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/applications", h.submit)
	rg.GET("/applications", h.list)
	rg.GET("/applications/:id", h.get)
}

type applicationResponse struct {
	ID         string     `json:"id"`
	JobID      string     `json:"job_id,omitempty"`
	JobTitle   string     `json:"job_title,omitempty"`
	Company    string     `json:"company,omitempty"`
	FullName   string     `json:"full_name"`
	Email      string     `json:"email"`
	ResumeName string     `json:"resume_name"`
	Status     string     `json:"status"`
	ATSScore   *int       `json:"ats_score"`
	CreatedAt  time.Time  `json:"created_at"`
	ScreenedAt *time.Time `json:"screened_at,omitempty"`
}

func toResponse(a Application) applicationResponse {
	return applicationResponse{
		ID:         a.ID,
		JobID:      a.JobID,
		JobTitle:   a.JobTitle,
		Company:    a.Company,
		FullName:   a.FullName,
		Email:      a.Email,
		ResumeName: a.ResumeFileName,
		Status:     a.Status,
		ATSScore:   a.ATSScore,
		CreatedAt:  a.CreatedAt,
		ScreenedAt: a.ScreenedAt,
	}
}

func (h *Handler) submit(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	company := c.PostForm("company")
	if strings.TrimSpace(company) == "" {
		company = c.PostForm("job_company")
	}
	in := SubmitInput{
		UserID:      middleware.UserIDFromContext(c),
		JobID:       c.PostForm("job_id"),
		JobTitle:    c.PostForm("job_title"),
		Company:     company,
		FullName:    c.PostForm("full_name"),
		Email:       c.PostForm("email"),
		Phone:       c.PostForm("phone"),
		CoverLetter: c.PostForm("cover_letter"),
		LinkedIn:    c.PostForm("linkedin"),
		Portfolio:   c.PostForm("portfolio"),
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "All required fields must be filled", nil)
		return
	}
	if !util.IsDocument(fileHeader.Filename) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Resume must be a PDF, DOCX or TXT file", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()
	in.FileName = fileHeader.Filename

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	app, err := h.Svc.Submit(ctx, in, file)
	if err != nil {
		if errors.Is(err, ErrMissingFields) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "All required fields must be filled", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit application", nil)
		return
	}
	c.Set(middleware.ApplicationIDKey, app.ID)

	respond.Created(c, "/api/v1/applications/"+app.ID, gin.H{
		"success":     true,
		"message":     "Application submitted successfully",
		"application": toResponse(app),
	})
}

func (h *Handler) list(c *gin.Context) {
	apps, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applications", nil)
		return
	}
	out := make([]applicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, toResponse(a))
	}
	respond.OK(c, gin.H{"success": true, "applications": out})
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ApplicationIDKey, id)
	app, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load application", nil)
		return
	}
	respond.OK(c, gin.H{"success": true, "application": toResponse(app)})
}
