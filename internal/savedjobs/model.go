package savedjobs

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("saved job not found")
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidAction is returned for actions other than save and unsave.
	ErrInvalidAction = errors.New("invalid action")
	ErrMissingJobID  = errors.New("job id is required")
)

// Action values accepted by Service.Apply.
const (
	ActionSave   = "save"
	ActionUnsave = "unsave"
)

// SavedJob is a job snapshot bookmarked by a user. (UserID, JobID) is unique.
type SavedJob struct {
	ID          string
	UserID      string
	JobID       string
	Title       string
	Company     string
	Location    string
	Description string
	RedirectURL string
	Salary      string
	PostedDate  string
	SavedAt     time.Time
}
