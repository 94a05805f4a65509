package translate

import (
	"context"
	"strings"
	"time"

	"jobportal/internal/shared/metrics"
	"jobportal/internal/shared/telemetry"
)

const (
	DefaultTarget = "hi"
	// Inputs shorter than this (after trimming) are returned as-is.
	minTranslateLen = 10
	maxChunkLen     = 4500
	sentenceSep     = ". "
	cacheOpTimeout  = 500 * time.Millisecond
)

// Provider performs one machine-translation call.
type Provider interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// Cache stores finished translations. Misses return ok=false.
type Cache interface {
	Get(ctx context.Context, text, target string) (string, bool)
	Set(ctx context.Context, text, target, translated string)
}

// Service translates text best-effort. It never fails: any provider error
// yields the original text.
type Service struct {
	Provider Provider
	Cache    Cache
}

func NewService(provider Provider, cache Cache) *Service {
	return &Service{Provider: provider, Cache: cache}
}

// Translate returns text in the target language, or text unchanged when it is
// too short, already English, or translation fails.
func (s *Service) Translate(ctx context.Context, text, target string) string {
	if text == "" || len(strings.TrimSpace(text)) < minTranslateLen || target == "en" {
		return text
	}
	if s == nil || s.Provider == nil {
		metrics.IncTranslation(metrics.OutcomeSkipped)
		return text
	}

	if s.Cache != nil {
		cctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
		cached, ok := s.Cache.Get(cctx, text, target)
		cancel()
		if ok {
			metrics.IncTranslation("cache_hit")
			return cached
		}
	}

	translated, err := s.translate(ctx, text, target)
	if err != nil {
		metrics.IncTranslation(metrics.OutcomeError)
		telemetry.Warn("translate.failed", map[string]any{
			"target": target,
			"chars":  len(text),
			"error":  err,
		})
		return text
	}
	metrics.IncTranslation(metrics.OutcomeOK)

	if s.Cache != nil {
		cctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
		s.Cache.Set(cctx, text, target, translated)
		cancel()
	}
	return translated
}

func (s *Service) translate(ctx context.Context, text, target string) (string, error) {
	if len(text) <= maxChunkLen {
		return s.Provider.Translate(ctx, text, target)
	}
	chunks := Chunk(text)
	out := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		t, err := s.Provider.Translate(ctx, chunk, target)
		if err != nil {
			return "", err
		}
		out = append(out, t)
	}
	return strings.Join(out, " "), nil
}

// Chunk splits long text on ". " into pieces below maxChunkLen bytes. Each
// sentence keeps a trailing ". ". A single sentence longer than the limit
// becomes its own chunk.
func Chunk(text string) []string {
	var chunks []string
	var cur strings.Builder
	for _, sentence := range strings.Split(text, sentenceSep) {
		if cur.Len()+len(sentence) >= maxChunkLen && cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
		cur.WriteString(sentence)
		cur.WriteString(sentenceSep)
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}
