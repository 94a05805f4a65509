package profiles

import (
	"context"
	"time"
)

// Repo persists one profile per user.
type Repo interface {
	// Upsert replaces the analysis for p.UserID, keeping the original ID and
	// CreatedAt when a profile already exists.
	Upsert(ctx context.Context, p Profile) (Profile, error)
	GetByUser(ctx context.Context, userID string) (Profile, error)
	// DeleteGuestsBefore removes guest profiles not updated since cutoff and
	// returns what was removed.
	DeleteGuestsBefore(ctx context.Context, cutoff time.Time) ([]Profile, error)
}
