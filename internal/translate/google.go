package translate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gtranslate "google.golang.org/api/translate/v2"
)

const googleBasePath = "https://translation.googleapis.com/language/translate/"

var (
	ErrProviderStatus = errors.New("translation provider returned an error status")
	ErrEmptyResult    = errors.New("translation provider returned no translations")
)

// Google calls Cloud Translation v2 with an API key.
type Google struct {
	APIKey   string
	Endpoint string
	Client   *http.Client
}

// NewGoogle builds a provider. baseURL overrides the service host, e.g. for
// a regional endpoint or a test server.
func NewGoogle(apiKey, baseURL string) *Google {
	endpoint := googleBasePath
	if base := strings.TrimRight(strings.TrimSpace(baseURL), "/"); base != "" {
		endpoint = base + "/language/translate/"
	}
	return &Google{
		APIKey:   strings.TrimSpace(apiKey),
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *Google) Translate(ctx context.Context, text, target string) (string, error) {
	svc, err := gtranslate.NewService(ctx,
		option.WithEndpoint(g.Endpoint),
		option.WithHTTPClient(&http.Client{
			Timeout:   g.Client.Timeout,
			Transport: &keyTransport{key: g.APIKey, base: g.Client.Transport},
		}),
	)
	if err != nil {
		return "", fmt.Errorf("translate client: %w", err)
	}

	resp, err := svc.Translations.List([]string{text}, target).Format("text").Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%w: %d", ErrProviderStatus, apiErr.Code)
		}
		return "", fmt.Errorf("translate request: %w", err)
	}
	if resp == nil || len(resp.Translations) == 0 {
		return "", ErrEmptyResult
	}
	return resp.Translations[0].TranslatedText, nil
}

// keyTransport adds the API key to every call. option.WithAPIKey is ignored
// once a custom HTTP client is supplied.
type keyTransport struct {
	key  string
	base http.RoundTripper
}

func (t *keyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	r := req.Clone(req.Context())
	q := r.URL.Query()
	if q.Get("key") == "" && t.key != "" {
		q.Set("key", t.key)
		r.URL.RawQuery = q.Encode()
	}
	return base.RoundTrip(r)
}
