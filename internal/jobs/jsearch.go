package jobs

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

const (
	jsearchBaseURL = "https://jsearch.p.rapidapi.com"
	jsearchHost    = "jsearch.p.rapidapi.com"
)

// JSearch queries the RapidAPI JSearch endpoint with a free-text
// "<skills> jobs in <location>" query.
type JSearch struct {
	APIKey string
	opts   sourceOptions
	guard  *guard
}

func NewJSearch(apiKey string, opts ...Option) *JSearch {
	o := buildOptions(jsearchBaseURL, opts)
	return &JSearch{
		APIKey: strings.TrimSpace(apiKey),
		opts:   o,
		guard:  newGuard("jsearch", o.timeout),
	}
}

func (j *JSearch) Name() string { return "jsearch" }

func (j *JSearch) Fetch(ctx context.Context, skills []string, location string) []Job {
	if len(skills) == 0 {
		return []Job{}
	}
	if j.APIKey == "" {
		return j.guard.skip(ErrMissingCredentials.Error())
	}
	return j.guard.run(ctx, func(ctx context.Context) ([]Job, error) {
		return j.search(ctx, skills, location)
	})
}

type jsearchResponse struct {
	Status string       `json:"status"`
	Data   []jsearchJob `json:"data"`
}

type jsearchJob struct {
	ID          flexString `json:"job_id"`
	Title       string     `json:"job_title"`
	Employer    string     `json:"employer_name"`
	City        string     `json:"job_city"`
	Country     string     `json:"job_country"`
	Description string     `json:"job_description"`
	PostedAt    string     `json:"job_posted_at_datetime_utc"`
	MinSalary   flexFloat  `json:"job_min_salary"`
	MaxSalary   flexFloat  `json:"job_max_salary"`
	ApplyLink   string     `json:"job_apply_link"`
}

func (j *JSearch) search(ctx context.Context, skills []string, location string) ([]Job, error) {
	query := strings.Join(querySkills(skills), " ") + " jobs"
	if loc := strings.TrimSpace(location); loc != "" {
		query += " in " + loc
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")
	params.Set("num_pages", "1")

	endpoint := strings.TrimRight(j.opts.baseURL, "/") + "/search?" + params.Encode()
	headers := map[string]string{
		"X-RapidAPI-Key":  j.APIKey,
		"X-RapidAPI-Host": jsearchHost,
	}

	var resp jsearchResponse
	if err := getJSON(ctx, j.opts.client, endpoint, headers, &resp); err != nil {
		return nil, fmt.Errorf("jsearch: %w", err)
	}

	out := make([]Job, 0, min(len(resp.Data), maxResults))
	for _, r := range resp.Data {
		if len(out) >= maxResults {
			break
		}
		employer := strings.TrimSpace(r.Employer)
		if employer == "" {
			employer = "Unknown"
		}
		out = append(out, Job{
			ID:          string(r.ID),
			Title:       r.Title,
			Company:     Company{DisplayName: employer},
			Location:    Location{DisplayName: joinNonEmpty(", ", r.City, r.Country)},
			Description: r.Description,
			Created:     r.PostedAt,
			SalaryMin:   r.MinSalary.ptr(),
			SalaryMax:   r.MaxSalary.ptr(),
			RedirectURL: r.ApplyLink,
			Source:      j.Name(),
		})
	}
	return out, nil
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
