package profiles

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"jobportal/internal/shared/telemetry"
)

const janitorRunTimeout = 5 * time.Minute

// Janitor periodically purges stale guest profiles.
type Janitor struct {
	svc       *Service
	retention time.Duration
	spec      string
	cron      *cron.Cron
}

// NewJanitor validates the cron spec (e.g. "@every 6h") up front.
func NewJanitor(svc *Service, retention time.Duration, spec string) (*Janitor, error) {
	if retention <= 0 {
		return nil, fmt.Errorf("guest retention must be positive, got %s", retention)
	}
	j := &Janitor{
		svc:       svc,
		retention: retention,
		spec:      spec,
		cron:      cron.New(),
	}
	if _, err := j.cron.AddFunc(spec, func() { j.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("cron.AddFunc(%q): %w", spec, err)
	}
	return j, nil
}

func (j *Janitor) Start() {
	j.cron.Start()
	telemetry.Info("profiles.janitor.started", map[string]any{
		"schedule":  j.spec,
		"retention": j.retention.String(),
	})
}

// Stop halts scheduling and waits for a running purge to finish or ctx to end.
func (j *Janitor) Stop(ctx context.Context) {
	done := j.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// RunOnce performs a single purge and returns the number of removed profiles.
func (j *Janitor) RunOnce(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, janitorRunTimeout)
	defer cancel()

	n, err := j.svc.PurgeGuests(ctx, j.retention)
	if err != nil {
		telemetry.Error("profiles.janitor.failed", map[string]any{"error": err})
		return 0
	}
	telemetry.Info("profiles.janitor.purged", map[string]any{"count": n})
	return n
}
