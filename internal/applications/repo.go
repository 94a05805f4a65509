package applications

import (
	"context"
	"time"
)

type Repo interface {
	Create(ctx context.Context, app Application) error
	GetByID(ctx context.Context, id string) (Application, error)
	// ListByUser returns the user's applications newest first.
	ListByUser(ctx context.Context, userID string) ([]Application, error)
	// UpdateScreening records the outcome of screening. score is nil when
	// screening failed.
	UpdateScreening(ctx context.Context, id, status string, score *int, at time.Time) error
}
