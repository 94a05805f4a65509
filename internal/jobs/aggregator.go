package jobs

import (
	"context"
	"fmt"
	"sync"

	"jobportal/internal/shared/metrics"
	"jobportal/internal/shared/telemetry"
)

// Aggregator fans out to every source and merges the results.
type Aggregator struct {
	Sources []Source
}

// NewAggregator keeps sources in the given order; that order decides which
// duplicate survives.
func NewAggregator(sources ...Source) *Aggregator {
	return &Aggregator{Sources: sources}
}

// Source returns the configured source with the given name.
func (a *Aggregator) Source(name string) (Source, bool) {
	for _, s := range a.Sources {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// Aggregate calls all sources concurrently, concatenates their results in
// source order and drops later duplicates by (title, company). A failing or
// panicking source contributes nothing.
func (a *Aggregator) Aggregate(ctx context.Context, skills []string, location string) []Job {
	if len(skills) == 0 || len(a.Sources) == 0 {
		return []Job{}
	}

	results := make([][]Job, len(a.Sources))
	var wg sync.WaitGroup
	for i, src := range a.Sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			results[i] = safeFetch(ctx, src, skills, location)
		}(i, src)
	}
	wg.Wait()

	var all []Job
	counts := make(map[string]any, len(a.Sources)+1)
	for i, batch := range results {
		counts[a.Sources[i].Name()] = len(batch)
		all = append(all, batch...)
	}

	unique := Dedupe(all)
	counts["unique"] = len(unique)
	telemetry.Info("jobs.aggregate", counts)
	metrics.ObserveAggregated(len(unique))
	return unique
}

// Dedupe keeps the first job for each DedupeKey, preserving order.
func Dedupe(in []Job) []Job {
	out := make([]Job, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, job := range in {
		key := job.DedupeKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, job)
	}
	return out
}

func safeFetch(ctx context.Context, src Source, skills []string, location string) (jobs []Job) {
	defer func() {
		if rec := recover(); rec != nil {
			telemetry.Error("jobs.source.panic", map[string]any{
				"source": src.Name(),
				"error":  fmt.Sprint(rec),
			})
			jobs = nil
		}
	}()
	return src.Fetch(ctx, skills, location)
}
