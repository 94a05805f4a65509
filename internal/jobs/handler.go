package jobs

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobportal/internal/shared/server/middleware"
	"jobportal/internal/shared/server/respond"
	"jobportal/internal/skills"
)

// SkillLookup supplies the stored skills of a user when a request names none.
type SkillLookup interface {
	SkillsFor(ctx context.Context, userID string) ([]string, error)
}

// Handler exposes job search over HTTP.
type Handler struct {
	Agg             *Aggregator
	Profiles        SkillLookup
	DefaultLocation string
}

func NewHandler(agg *Aggregator, profiles SkillLookup, defaultLocation string) *Handler {
	return &Handler{Agg: agg, Profiles: profiles, DefaultLocation: defaultLocation}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs", h.search)
	rg.GET("/jobs/sources/:source", h.searchSource)
}

type searchRequest struct {
	Skills   []string `json:"skills"`
	Location string   `json:"location"`
}

func (h *Handler) search(c *gin.Context) {
	var req searchRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}

	wanted := skills.Normalize(req.Skills)
	if len(wanted) == 0 && h.Profiles != nil {
		stored, err := h.Profiles.SkillsFor(c.Request.Context(), middleware.UserIDFromContext(c))
		if err == nil {
			wanted = stored
		}
	}

	jobs := h.Agg.Aggregate(c.Request.Context(), wanted, h.location(req.Location))
	respond.OK(c, gin.H{"success": true, "jobs": jobs})
}

func (h *Handler) searchSource(c *gin.Context) {
	src, ok := h.Agg.Source(strings.ToLower(c.Param("source")))
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "unknown job source", nil)
		return
	}
	wanted := skills.Split(c.Query("skills"))
	jobs := src.Fetch(c.Request.Context(), wanted, h.location(c.Query("location")))
	respond.OK(c, gin.H{"success": true, "source": src.Name(), "jobs": jobs})
}

func (h *Handler) location(raw string) string {
	if loc := strings.TrimSpace(raw); loc != "" {
		return loc
	}
	return h.DefaultLocation
}
