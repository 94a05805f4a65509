package profiles

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobportal/internal/ats"
	"jobportal/internal/extract"
	"jobportal/internal/shared/metrics"
	"jobportal/internal/shared/storage/object"
	"jobportal/internal/shared/telemetry"
	"jobportal/internal/skills"
)

// Service analyzes uploaded résumés and keeps the latest result per user.
type Service struct {
	Store object.Store
	Repo  Repo
	Now   func() time.Time
}

func NewService(store object.Store, repo Repo) *Service {
	return &Service{Store: store, Repo: repo, Now: time.Now}
}

// Analyze stores the résumé, scores its text and saves the result as the
// user's profile. Unreadable documents are scored as empty text.
func (s *Service) Analyze(ctx context.Context, userID string, guest bool, fileName string, r io.Reader) (Profile, error) {
	if userID == "" || strings.TrimSpace(fileName) == "" {
		return Profile{}, ErrInvalidInput
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Profile{}, fmt.Errorf("read upload: %w", err)
	}

	obj, err := s.Store.Save(ctx, object.FolderResumes, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return Profile{}, fmt.Errorf("store resume: %w", err)
	}

	text := extract.Text(ctx, data, obj.MimeType, fileName)
	found := skills.Extract(text)
	result := ats.Score(text, found)
	metrics.ObserveResumeScore(result.Score)

	previous, prevErr := s.Repo.GetByUser(ctx, userID)

	now := s.Now().UTC()
	saved, err := s.Repo.Upsert(ctx, Profile{
		ID:             uuid.NewString(),
		UserID:         userID,
		IsGuest:        guest,
		ResumeKey:      obj.Key,
		ResumeFileName: fileName,
		Skills:         found,
		ATSScore:       result.Score,
		Breakdown:      result.Breakdown,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return Profile{}, fmt.Errorf("save profile: %w", err)
	}

	if prevErr == nil && previous.ResumeKey != "" && previous.ResumeKey != obj.Key {
		s.deleteFile(ctx, previous.ResumeKey)
	}

	telemetry.Info("profiles.analyzed", map[string]any{
		"user_id":   userID,
		"is_guest":  guest,
		"skills":    len(found),
		"ats_score": result.Score,
		"words":     len(strings.Fields(text)),
	})
	return saved, nil
}

// Get returns the stored profile for a user.
func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	if userID == "" {
		return Profile{}, ErrInvalidInput
	}
	return s.Repo.GetByUser(ctx, userID)
}

// SkillsFor returns the skills from the user's last analysis.
func (s *Service) SkillsFor(ctx context.Context, userID string) ([]string, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return p.Skills, nil
}

// PurgeGuests removes guest profiles idle for longer than retention along
// with their stored résumés.
func (s *Service) PurgeGuests(ctx context.Context, retention time.Duration) (int, error) {
	cutoff := s.Now().UTC().Add(-retention)
	removed, err := s.Repo.DeleteGuestsBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete guest profiles: %w", err)
	}
	for _, p := range removed {
		if p.ResumeKey != "" {
			s.deleteFile(ctx, p.ResumeKey)
		}
	}
	return len(removed), nil
}

func (s *Service) deleteFile(ctx context.Context, key string) {
	if err := s.Store.Delete(ctx, key); err != nil {
		telemetry.Warn("profiles.resume_delete_failed", map[string]any{
			"key":   key,
			"error": err,
		})
	}
}
