package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	remoteOKBaseURL   = "https://remoteok.com"
	remoteOKUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	// The feed has no skill filter, so only this many entries are scanned for matches.
	remoteOKScanWindow   = 20
	remoteOKMaxDescRunes = 500
)

// RemoteOK reads the public RemoteOK feed and keeps entries whose tags or
// description mention one of the requested skills. It needs no credentials.
type RemoteOK struct {
	opts  sourceOptions
	guard *guard
}

func NewRemoteOK(opts ...Option) *RemoteOK {
	o := buildOptions(remoteOKBaseURL, opts)
	return &RemoteOK{opts: o, guard: newGuard("remoteok", o.timeout)}
}

func (r *RemoteOK) Name() string { return "remoteok" }

// Fetch ignores location; every RemoteOK listing is remote.
func (r *RemoteOK) Fetch(ctx context.Context, skills []string, location string) []Job {
	if len(skills) == 0 {
		return []Job{}
	}
	return r.guard.run(ctx, func(ctx context.Context) ([]Job, error) {
		return r.search(ctx, skills)
	})
}

type remoteOKJob struct {
	ID          flexString `json:"id"`
	Position    string     `json:"position"`
	Company     string     `json:"company"`
	Description string     `json:"description"`
	Date        string     `json:"date"`
	Tags        []string   `json:"tags"`
	SalaryMin   flexFloat  `json:"salary_min"`
	SalaryMax   flexFloat  `json:"salary_max"`
	URL         string     `json:"url"`
}

func (r *RemoteOK) search(ctx context.Context, skills []string) ([]Job, error) {
	endpoint := strings.TrimRight(r.opts.baseURL, "/") + "/api"
	headers := map[string]string{"User-Agent": remoteOKUserAgent}

	var feed []json.RawMessage
	if err := getJSON(ctx, r.opts.client, endpoint, headers, &feed); err != nil {
		return nil, fmt.Errorf("remoteok: %w", err)
	}
	// The first element is feed metadata, not a listing.
	if len(feed) > 0 {
		feed = feed[1:]
	}
	if len(feed) > remoteOKScanWindow {
		feed = feed[:remoteOKScanWindow]
	}

	wanted := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			wanted = append(wanted, s)
		}
	}

	out := make([]Job, 0, maxResults)
	for _, raw := range feed {
		var item remoteOKJob
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}
		if !remoteOKMatches(item, wanted) {
			continue
		}
		company := strings.TrimSpace(item.Company)
		if company == "" {
			company = "Unknown"
		}
		out = append(out, Job{
			ID:          string(item.ID),
			Title:       item.Position,
			Company:     Company{DisplayName: company},
			Location:    Location{DisplayName: "Remote"},
			Description: truncate(item.Description, remoteOKMaxDescRunes),
			Created:     item.Date,
			SalaryMin:   item.SalaryMin.ptr(),
			SalaryMax:   item.SalaryMax.ptr(),
			RedirectURL: item.URL,
			Source:      r.Name(),
		})
		if len(out) >= maxResults {
			break
		}
	}
	return out, nil
}

// remoteOKMatches reports whether any skill equals a tag or appears in the description.
func remoteOKMatches(item remoteOKJob, skills []string) bool {
	desc := strings.ToLower(item.Description)
	for _, skill := range skills {
		for _, tag := range item.Tags {
			if strings.ToLower(tag) == skill {
				return true
			}
		}
		if strings.Contains(desc, skill) {
			return true
		}
	}
	return false
}
