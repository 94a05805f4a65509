package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"jobportal/internal/accounts"
	sharedauth "jobportal/internal/shared/auth"
	"jobportal/internal/shared/server/respond"
	"jobportal/internal/shared/telemetry"
)

const (
	defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	stateTTL           = 5 * time.Minute
)

// AccountUpserter records the signed-in Google identity.
type AccountUpserter interface {
	UpsertExternal(ctx context.Context, acct accounts.Account) error
}

// GoogleConfig configures sign-in. States defaults to an in-process store.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	UIRedirect   string
	States       StateStore
}

// GoogleService signs job seekers in with Google and hands the UI a JWT.
type GoogleService struct {
	oauthConfig *oauth2.Config
	uiRedirect  string
	userInfoURL string
	states      StateStore
	accounts    AccountUpserter
}

// NewGoogleService builds a GoogleService. upserter may be nil, in which
// case sign-in only issues a token.
func NewGoogleService(cfg GoogleConfig, upserter AccountUpserter) *GoogleService {
	states := cfg.States
	if states == nil {
		states = newMemoryStates()
	}
	return &GoogleService{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		uiRedirect:  cfg.UIRedirect,
		userInfoURL: defaultUserInfoURL,
		states:      states,
		accounts:    upserter,
	}
}

func (s *GoogleService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/google/start", s.start)
	rg.GET("/auth/google/callback", s.callback)
}

func (s *GoogleService) configured() bool {
	o := s.oauthConfig
	return o.ClientID != "" && o.ClientSecret != "" && o.RedirectURL != "" && s.uiRedirect != ""
}

func (s *GoogleService) start(c *gin.Context) {
	if !s.configured() {
		respond.Error(c, http.StatusInternalServerError, "auth_not_configured", "Google sign-in is not configured", nil)
		return
	}
	state := uuid.NewString()
	if err := s.states.Put(c.Request.Context(), state, stateTTL); err != nil {
		telemetry.Error("auth.google.state_store_failed", map[string]any{"error": err})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start sign-in", nil)
		return
	}
	c.Redirect(http.StatusFound, s.oauthConfig.AuthCodeURL(state))
}

var (
	errExchange    = errors.New("code exchange failed")
	errProfile     = errors.New("google profile unavailable")
	errSaveAccount = errors.New("account upsert failed")
)

func (s *GoogleService) callback(c *gin.Context) {
	state, code := c.Query("state"), c.Query("code")
	if state == "" || code == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "missing state or code", nil)
		return
	}
	ctx := c.Request.Context()
	valid, err := s.states.Consume(ctx, state)
	if err != nil {
		telemetry.Error("auth.google.state_store_failed", map[string]any{"error": err})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to verify sign-in", nil)
		return
	}
	if !valid {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid or expired state", nil)
		return
	}

	token, err := s.signIn(ctx, code)
	switch {
	case errors.Is(err, errExchange):
		respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to exchange code", nil)
		return
	case errors.Is(err, errProfile):
		respond.Error(c, http.StatusBadGateway, "auth_failed", "failed to fetch Google profile", nil)
		return
	case err != nil:
		telemetry.Error("auth.google.sign_in_failed", map[string]any{"error": err})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to complete sign-in", nil)
		return
	}

	target, err := appendToken(s.uiRedirect, token)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to redirect", nil)
		return
	}
	c.Redirect(http.StatusFound, target)
}

// signIn exchanges the code, records the account as google:<sub> and
// returns a session JWT.
func (s *GoogleService) signIn(ctx context.Context, code string) (string, error) {
	oauthToken, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errExchange, err)
	}
	profile, err := s.fetchProfile(ctx, oauthToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errProfile, err)
	}

	acct := accounts.Account{
		ID:         "google:" + profile.Sub,
		Email:      profile.Email,
		FullName:   profile.Name,
		PictureURL: profile.Picture,
		Provider:   accounts.ProviderGoogle,
	}
	if s.accounts != nil {
		if err := s.accounts.UpsertExternal(ctx, acct); err != nil {
			return "", fmt.Errorf("%w: %v", errSaveAccount, err)
		}
	}
	return sharedauth.SignJWT(sharedauth.Claims{
		Sub:     acct.ID,
		Email:   acct.Email,
		Name:    acct.FullName,
		Picture: acct.PictureURL,
	})
}

type googleProfile struct {
	Sub     string `json:"sub"`
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *GoogleService) fetchProfile(ctx context.Context, token *oauth2.Token) (googleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return googleProfile{}, err
	}
	resp, err := s.oauthConfig.Client(ctx, token).Do(req)
	if err != nil {
		return googleProfile{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return googleProfile{}, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var p googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return googleProfile{}, err
	}
	// v2 userinfo returns "id"; the OIDC endpoint returns "sub".
	if p.Sub == "" {
		p.Sub = p.ID
	}
	if p.Sub == "" {
		return googleProfile{}, errors.New("profile has no subject")
	}
	return p, nil
}

func appendToken(rawURL, token string) (string, error) {
	if rawURL == "" {
		return "", errors.New("redirect url required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
