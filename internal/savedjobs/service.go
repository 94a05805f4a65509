package savedjobs

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Messages returned to clients after a save or unsave.
const (
	MsgSaved        = "Job saved successfully"
	MsgAlreadySaved = "Job already saved"
	MsgRemoved      = "Job removed from saved list"
)

type Service struct {
	Repo Repo
	Now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// Result reports the bookmark state after Apply.
type Result struct {
	Saved   bool
	Message string
}

// Apply saves or unsaves job for userID. Saving is idempotent and unsaving a
// job that was never saved succeeds.
func (s *Service) Apply(ctx context.Context, userID, action string, job SavedJob) (Result, error) {
	if userID == "" {
		return Result{}, ErrInvalidInput
	}
	job.JobID = strings.TrimSpace(job.JobID)
	if job.JobID == "" {
		return Result{}, ErrMissingJobID
	}

	switch strings.ToLower(strings.TrimSpace(action)) {
	case ActionSave:
		job.ID = uuid.NewString()
		job.UserID = userID
		job.SavedAt = s.Now().UTC()
		created, err := s.Repo.Save(ctx, job)
		if err != nil {
			return Result{}, err
		}
		if !created {
			return Result{Saved: true, Message: MsgAlreadySaved}, nil
		}
		return Result{Saved: true, Message: MsgSaved}, nil
	case ActionUnsave:
		if _, err := s.Repo.Delete(ctx, userID, job.JobID); err != nil {
			return Result{}, err
		}
		return Result{Saved: false, Message: MsgRemoved}, nil
	default:
		return Result{}, ErrInvalidAction
	}
}

// List returns the user's saved jobs, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]SavedJob, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID)
}
