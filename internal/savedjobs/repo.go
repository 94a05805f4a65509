package savedjobs

import "context"

// Repo persists saved jobs.
type Repo interface {
	// Save inserts job unless (UserID, JobID) already exists; created reports
	// whether a new row was written.
	Save(ctx context.Context, job SavedJob) (created bool, err error)
	Delete(ctx context.Context, userID, jobID string) (deleted bool, err error)
	// ListByUser returns the user's saved jobs, newest first.
	ListByUser(ctx context.Context, userID string) ([]SavedJob, error)
}
