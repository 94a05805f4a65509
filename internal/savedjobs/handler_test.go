package savedjobs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"jobportal/internal/shared/server/middleware"
)

func newSavedJobsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Auth("dev"))
	NewHandler(NewService(NewMemoryRepo())).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postSave(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/save", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "g1")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestSaveListUnsaveFlow(t *testing.T) {
	r := newSavedJobsRouter()

	resp := postSave(r, `{"action":"save","job_id":"42","job_title":"Go Dev","company":"Acme","salary":"$100k","posted_date":"2026-01-02"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("save: expected 200, got %d", resp.Code)
	}
	var res struct {
		Success bool   `json:"success"`
		Saved   bool   `json:"saved"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !res.Success || !res.Saved || res.Message != "Job saved successfully" {
		t.Fatalf("unexpected save response %+v", res)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/saved", nil)
	req.Header.Set("X-Guest-Id", "g1")
	listResp := httptest.NewRecorder()
	r.ServeHTTP(listResp, req)
	if listResp.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", listResp.Code)
	}
	var list struct {
		Jobs []struct {
			ID         string `json:"id"`
			Title      string `json:"title"`
			PostedDate string `json:"postedDate"`
			Saved      bool   `json:"saved"`
		} `json:"jobs"`
	}
	if err := json.Unmarshal(listResp.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Jobs) != 1 || list.Jobs[0].ID != "42" || list.Jobs[0].Title != "Go Dev" || list.Jobs[0].PostedDate != "2026-01-02" || !list.Jobs[0].Saved {
		t.Fatalf("unexpected list %+v", list.Jobs)
	}

	resp = postSave(r, `{"action":"unsave","job_id":"42"}`)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "Job removed from saved list") {
		t.Fatalf("unsave: %d %s", resp.Code, resp.Body.String())
	}
}

func TestSaveValidationErrors(t *testing.T) {
	r := newSavedJobsRouter()

	tests := []struct {
		body    string
		message string
	}{
		{`{"action":"save"}`, "Job ID is required"},
		{`{"action":"star","job_id":"1"}`, "Invalid action"},
		{`not json`, "invalid request body"},
	}
	for _, tt := range tests {
		resp := postSave(r, tt.body)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tt.body, resp.Code)
		}
		if !strings.Contains(resp.Body.String(), tt.message) {
			t.Fatalf("%s: expected %q in %s", tt.body, tt.message, resp.Body.String())
		}
	}
}
