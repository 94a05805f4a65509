package applications

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal/internal/shared/server/middleware"
)

func newApplicationsRouter(t *testing.T) (*gin.Engine, *fakeQueue) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	q := &fakeQueue{}
	svc, _ := newTestService(t, q)
	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(middleware.RequestID(), middleware.Auth("dev"))
	NewHandler(svc).RegisterRoutes(api)
	return r, q
}

func multipartBody(t *testing.T, fields map[string]string, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("resume", fileName)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func completeFields() map[string]string {
	return map[string]string{
		"job_id":       "remoteok-9",
		"job_title":    "Data Engineer",
		"job_company":  "Acme",
		"full_name":    "Ravi Kumar",
		"email":        "ravi@example.com",
		"phone":        "+91 99887 76655",
		"cover_letter": "Keen to help.",
		"linkedin":     "https://linkedin.com/in/ravi",
	}
}

func TestSubmitApplicationHandler(t *testing.T) {
	r, q := newApplicationsRouter(t)

	body, ctype := multipartBody(t, completeFields(), "ravi.txt", sampleResume)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", body)
	req.Header.Set("Content-Type", ctype)
	req.Header.Set("X-Guest-Id", "g1")
	req.Header.Set("X-Request-Id", "req-42")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var payload struct {
		Success     bool                `json:"success"`
		Message     string              `json:"message"`
		Application applicationResponse `json:"application"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	assert.True(t, payload.Success)
	assert.Equal(t, "Application submitted successfully", payload.Message)
	assert.Equal(t, "Acme", payload.Application.Company)
	assert.Equal(t, StatusSubmitted, payload.Application.Status)
	assert.Equal(t, "/api/v1/applications/"+payload.Application.ID, resp.Header().Get("Location"))

	require.Len(t, q.msgs, 1)
	assert.Equal(t, payload.Application.ID, q.msgs[0].ApplicationID)
	assert.Equal(t, "req-42", q.msgs[0].RequestID)

	listReq := httptest.NewRequest(http.MethodGet, "/api/v1/applications", nil)
	listReq.Header.Set("X-Guest-Id", "g1")
	listResp := httptest.NewRecorder()
	r.ServeHTTP(listResp, listReq)
	require.Equal(t, http.StatusOK, listResp.Code)
	assert.Contains(t, listResp.Body.String(), payload.Application.ID)

	otherReq := httptest.NewRequest(http.MethodGet, "/api/v1/applications/"+payload.Application.ID, nil)
	otherReq.Header.Set("X-Guest-Id", "g2")
	otherResp := httptest.NewRecorder()
	r.ServeHTTP(otherResp, otherReq)
	assert.Equal(t, http.StatusNotFound, otherResp.Code)
}

func TestSubmitApplicationValidation(t *testing.T) {
	r, q := newApplicationsRouter(t)

	missingPhone := completeFields()
	delete(missingPhone, "phone")

	cases := []struct {
		name     string
		fields   map[string]string
		fileName string
		message  string
	}{
		{"missing phone", missingPhone, "cv.txt", "All required fields must be filled"},
		{"missing file", completeFields(), "", "All required fields must be filled"},
		{"bad extension", completeFields(), "cv.exe", "Resume must be a PDF, DOCX or TXT file"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, ctype := multipartBody(t, tc.fields, tc.fileName, sampleResume)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", body)
			req.Header.Set("Content-Type", ctype)
			req.Header.Set("X-Guest-Id", "g1")
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)

			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.Contains(t, resp.Body.String(), tc.message)
		})
	}
	assert.Empty(t, q.msgs)
}
