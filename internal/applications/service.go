package applications

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobportal/internal/ats"
	"jobportal/internal/extract"
	"jobportal/internal/queue"
	"jobportal/internal/shared/metrics"
	"jobportal/internal/shared/storage/object"
	"jobportal/internal/shared/telemetry"
	"jobportal/internal/skills"
)

// Application events counted in metrics.
const (
	eventSubmitted     = "submitted"
	eventEnqueued      = "enqueued"
	eventEnqueueFailed = "enqueue_failed"
	eventScreened      = "screened"
	eventScreenFailed  = "screen_failed"
)

// Service accepts job applications and screens their résumés. Without a
// queue, screening runs in the background of the submitting process.
type Service struct {
	Store object.Store
	Repo  Repo
	Queue queue.Client
	Now   func() time.Time
}

func NewService(store object.Store, repo Repo, q queue.Client) *Service {
	return &Service{Store: store, Repo: repo, Queue: q, Now: time.Now}
}

// SubmitInput carries the form fields of an application.
type SubmitInput struct {
	UserID      string
	JobID       string
	JobTitle    string
	Company     string
	FullName    string
	Email       string
	Phone       string
	CoverLetter string
	LinkedIn    string
	Portfolio   string
	FileName    string
}

func (in SubmitInput) valid() bool {
	for _, v := range []string{in.UserID, in.FullName, in.Email, in.Phone, in.CoverLetter, in.FileName} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// Submit stores the résumé, records the application and schedules screening.
func (s *Service) Submit(ctx context.Context, in SubmitInput, resume io.Reader) (Application, error) {
	if resume == nil || !in.valid() {
		return Application{}, ErrMissingFields
	}

	data, err := io.ReadAll(resume)
	if err != nil {
		return Application{}, fmt.Errorf("read resume: %w", err)
	}
	if len(data) == 0 {
		return Application{}, ErrMissingFields
	}

	obj, err := s.Store.Save(ctx, object.FolderApplications, in.UserID, in.FileName, bytes.NewReader(data))
	if err != nil {
		return Application{}, fmt.Errorf("store resume: %w", err)
	}

	now := s.Now().UTC()
	app := Application{
		ID:             uuid.NewString(),
		UserID:         in.UserID,
		JobID:          strings.TrimSpace(in.JobID),
		JobTitle:       strings.TrimSpace(in.JobTitle),
		Company:        strings.TrimSpace(in.Company),
		FullName:       strings.TrimSpace(in.FullName),
		Email:          strings.TrimSpace(in.Email),
		Phone:          strings.TrimSpace(in.Phone),
		CoverLetter:    strings.TrimSpace(in.CoverLetter),
		LinkedIn:       strings.TrimSpace(in.LinkedIn),
		Portfolio:      strings.TrimSpace(in.Portfolio),
		ResumeKey:      obj.Key,
		ResumeFileName: in.FileName,
		ResumeMime:     obj.MimeType,
		Status:         StatusSubmitted,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Create(ctx, app); err != nil {
		if delErr := s.Store.Delete(ctx, obj.Key); delErr != nil {
			telemetry.Warn("applications.cleanup_failed", map[string]any{"key": obj.Key, "error": delErr})
		}
		return Application{}, fmt.Errorf("save application: %w", err)
	}
	metrics.IncApplication(eventSubmitted)
	telemetry.Info("applications.submitted", map[string]any{
		"request_id":     requestIDFromContext(ctx),
		"application_id": app.ID,
		"user_id":        app.UserID,
		"job_id":         app.JobID,
	})

	s.schedule(ctx, app.ID)
	return app, nil
}

func (s *Service) schedule(ctx context.Context, applicationID string) {
	if s.Queue == nil {
		go s.screenAsync(backgroundWithRequestID(ctx), applicationID)
		return
	}
	err := s.Queue.Send(ctx, queue.NewScreeningRequest(applicationID, requestIDFromContext(ctx), s.Now()))
	if err != nil {
		// The application stays "submitted" and can be re-screened later.
		metrics.IncApplication(eventEnqueueFailed)
		telemetry.Error("applications.enqueue_failed", map[string]any{
			"request_id":     requestIDFromContext(ctx),
			"application_id": applicationID,
			"error":          err,
		})
		return
	}
	metrics.IncApplication(eventEnqueued)
}

func (s *Service) screenAsync(ctx context.Context, applicationID string) {
	defer func() {
		if r := recover(); r != nil {
			telemetry.Error("applications.screen_panic", map[string]any{
				"application_id": applicationID,
				"error":          fmt.Sprint(r),
			})
		}
	}()
	_ = s.ScreenApplication(ctx, applicationID)
}

// ScreenApplication extracts the attached résumé, scores it and stores the
// result. An unreadable document marks the application screen_failed and is
// not retried.
func (s *Service) ScreenApplication(ctx context.Context, applicationID string) error {
	app, err := s.Repo.GetByID(ctx, applicationID)
	if err != nil {
		return fmt.Errorf("load application: %w", err)
	}
	if app.Status == StatusScreened {
		return nil
	}

	now := s.Now().UTC()
	text, err := extract.FromObject(ctx, s.Store, app.ResumeKey, app.ResumeMime)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupported) || errors.Is(err, extract.ErrEmpty) || errors.Is(err, extract.ErrMalformed) {
			metrics.IncApplication(eventScreenFailed)
			telemetry.Warn("applications.screen_failed", map[string]any{
				"request_id":        requestIDFromContext(ctx),
				"application_id":    app.ID,
				"status_transition": app.Status + "->" + StatusScreenFailed,
				"error":             err,
			})
			return s.Repo.UpdateScreening(ctx, app.ID, StatusScreenFailed, nil, now)
		}
		return fmt.Errorf("extract resume: %w", err)
	}

	result := ats.Score(text, skills.Extract(text))
	score := result.Score
	if err := s.Repo.UpdateScreening(ctx, app.ID, StatusScreened, &score, now); err != nil {
		return fmt.Errorf("save screening: %w", err)
	}
	metrics.IncApplication(eventScreened)
	metrics.ObserveResumeScore(score)
	telemetry.Info("applications.screened", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"application_id":    app.ID,
		"status_transition": app.Status + "->" + StatusScreened,
		"ats_score":         score,
	})
	return nil
}

// List returns the user's applications newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Application, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrMissingFields
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Get returns one of the user's applications.
func (s *Service) Get(ctx context.Context, userID, id string) (Application, error) {
	app, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if app.UserID != userID {
		return Application{}, ErrNotFound
	}
	return app, nil
}
