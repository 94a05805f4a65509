package jobs

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Job is a listing normalized from any source. The nested company/location
// objects follow the Adzuna response shape that clients already render.
type Job struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Company     Company  `json:"company"`
	Location    Location `json:"location"`
	Description string   `json:"description"`
	Created     string   `json:"created"`
	SalaryMin   *float64 `json:"salary_min"`
	SalaryMax   *float64 `json:"salary_max"`
	RedirectURL string   `json:"redirect_url"`
	Source      string   `json:"source"`
}

type Company struct {
	DisplayName string `json:"display_name"`
}

type Location struct {
	DisplayName string `json:"display_name"`
}

// DedupeKey identifies a listing across sources: case-insensitive title and company.
func (j Job) DedupeKey() string {
	return strings.ToLower(j.Title) + "\x00" + strings.ToLower(j.Company.DisplayName)
}

// flexString accepts either a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexFloat accepts a JSON number, a numeric string, or null. Anything else is
// treated as absent rather than failing the whole payload.
type flexFloat struct {
	v *float64
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	f.v = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		data = []byte(strings.TrimSpace(s))
		if len(data) == 0 {
			return nil
		}
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return nil
	}
	f.v = &n
	return nil
}

func (f flexFloat) ptr() *float64 {
	return f.v
}
