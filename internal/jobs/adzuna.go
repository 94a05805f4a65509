package jobs

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	adzunaBaseURL        = "https://api.adzuna.com"
	adzunaDefaultCountry = "in"
)

// Adzuna queries the Adzuna search API with the skills as the "what" term.
// Without AppID or AppKey it returns no results and makes no request.
type Adzuna struct {
	AppID   string
	AppKey  string
	Country string
	opts    sourceOptions
	guard   *guard
}

// NewAdzuna constructs the Adzuna source. An empty country defaults to "in".
func NewAdzuna(appID, appKey, country string, opts ...Option) *Adzuna {
	if strings.TrimSpace(country) == "" {
		country = adzunaDefaultCountry
	}
	o := buildOptions(adzunaBaseURL, opts)
	return &Adzuna{
		AppID:   strings.TrimSpace(appID),
		AppKey:  strings.TrimSpace(appKey),
		Country: strings.ToLower(strings.TrimSpace(country)),
		opts:    o,
		guard:   newGuard("adzuna", o.timeout),
	}
}

func (a *Adzuna) Name() string { return "adzuna" }

func (a *Adzuna) Fetch(ctx context.Context, skills []string, location string) []Job {
	if len(skills) == 0 {
		return []Job{}
	}
	if a.AppID == "" || a.AppKey == "" {
		return a.guard.skip(ErrMissingCredentials.Error())
	}
	return a.guard.run(ctx, func(ctx context.Context) ([]Job, error) {
		return a.search(ctx, skills, location)
	})
}

type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
	Count   int            `json:"count"`
}

type adzunaResult struct {
	ID          flexString `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Company     Company    `json:"company"`
	Location    Location   `json:"location"`
	SalaryMin   flexFloat  `json:"salary_min"`
	SalaryMax   flexFloat  `json:"salary_max"`
	RedirectURL string     `json:"redirect_url"`
	Created     string     `json:"created"`
}

func (a *Adzuna) search(ctx context.Context, skills []string, location string) ([]Job, error) {
	endpoint := fmt.Sprintf("%s/v1/api/jobs/%s/search/1", strings.TrimRight(a.opts.baseURL, "/"), url.PathEscape(a.Country))

	params := url.Values{}
	params.Set("app_id", a.AppID)
	params.Set("app_key", a.AppKey)
	params.Set("what", strings.Join(querySkills(skills), " "))
	if loc := strings.TrimSpace(location); loc != "" && !strings.EqualFold(loc, a.Country) {
		params.Set("where", loc)
	}
	params.Set("results_per_page", strconv.Itoa(maxResults))
	params.Set("content-type", "application/json")

	var resp adzunaResponse
	if err := getJSON(ctx, a.opts.client, endpoint+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("adzuna: %w", err)
	}

	out := make([]Job, 0, min(len(resp.Results), maxResults))
	for _, r := range resp.Results {
		if len(out) >= maxResults {
			break
		}
		out = append(out, Job{
			ID:          string(r.ID),
			Title:       r.Title,
			Company:     r.Company,
			Location:    r.Location,
			Description: r.Description,
			Created:     r.Created,
			SalaryMin:   r.SalaryMin.ptr(),
			SalaryMax:   r.SalaryMax.ptr(),
			RedirectURL: r.RedirectURL,
			Source:      a.Name(),
		})
	}
	return out, nil
}
