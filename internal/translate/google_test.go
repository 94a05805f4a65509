package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoogleTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/language/translate/v2", r.URL.Path)
		assert.Equal(t, "k1", r.FormValue("key"))
		assert.Equal(t, "Hello there, world", r.FormValue("q"))
		assert.Equal(t, "hi", r.FormValue("target"))
		assert.Equal(t, "text", r.FormValue("format"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"translations":[{"translatedText":"नमस्ते दुनिया","detectedSourceLanguage":"en"}]}}`))
	}))
	defer srv.Close()

	got, err := NewGoogle("k1", srv.URL+"/").Translate(context.Background(), "Hello there, world", "hi")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	assert.Equal(t, "नमस्ते दुनिया", got)
}

func TestNewGoogleEndpoint(t *testing.T) {
	assert.Equal(t, googleBasePath, NewGoogle("k", "").Endpoint)
	assert.Equal(t, "https://eu.example.test/language/translate/", NewGoogle("k", " https://eu.example.test/ ").Endpoint)
}

func TestGoogleTranslateErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"forbidden", http.StatusForbidden, `{"error":{"code":403,"message":"API key not valid"}}`, ErrProviderStatus},
		{"no translations", http.StatusOK, `{"data":{"translations":[]}}`, ErrEmptyResult},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewGoogle("k", srv.URL).Translate(context.Background(), "some text here", "es")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestServiceFallsBackWhenGoogleFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	text := "Looking for a remote Python role"
	got := NewService(NewGoogle("k", srv.URL), nil).Translate(context.Background(), text, "hi")
	assert.Equal(t, text, got)
}
