package applications

import (
	"errors"
	"time"
)

// Application statuses.
const (
	StatusSubmitted    = "submitted"
	StatusScreened     = "screened"
	StatusScreenFailed = "screen_failed"
)

var (
	ErrNotFound      = errors.New("application not found")
	ErrMissingFields = errors.New("missing required application fields")
)

// Application is a candidate's submission for a job listing. ATSScore is set
// once the attached résumé has been screened.
type Application struct {
	ID             string
	UserID         string
	JobID          string
	JobTitle       string
	Company        string
	FullName       string
	Email          string
	Phone          string
	CoverLetter    string
	LinkedIn       string
	Portfolio      string
	ResumeKey      string
	ResumeFileName string
	ResumeMime     string
	Status         string
	ATSScore       *int
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ScreenedAt     *time.Time
}
