package profiles

import (
	"time"

	"jobportal/internal/ats"
)

// Profile is the latest résumé analysis for one user.
type Profile struct {
	ID             string
	UserID         string
	IsGuest        bool
	ResumeKey      string
	ResumeFileName string
	Skills         []string
	ATSScore       int
	Breakdown      ats.Breakdown
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
