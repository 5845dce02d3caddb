// Package catalog supplies candidate job postings for a skill query, either
// by deterministic synthesis or from a static catalog file, with a
// time-bounded cache in front of the synthetic generator.
package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/akorchagin/career-matcher/internal/job"
)

// Provider produces a bounded list of candidate jobs for a skill query.
type Provider interface {
	GetJobs(ctx context.Context, skillsText, location string, maxResults int) (*job.Jobs, error)
}

// SyntheticProvider generates postings on demand and memoizes them per
// (skills, location) key for the freshness window.
type SyntheticProvider struct {
	gen    *Generator
	cache  CacheStore
	logger *zap.Logger
}

// NewSyntheticProvider wires a generator to an optional cache. A nil cache
// disables memoization entirely.
func NewSyntheticProvider(gen *Generator, cache CacheStore, logger *zap.Logger) *SyntheticProvider {
	return &SyntheticProvider{gen: gen, cache: cache, logger: logger}
}

// GetJobs returns cached postings when a fresh entry exists for the query,
// otherwise generates a new batch and stores it. Cached postings are returned
// exactly as stored, including their prior skills_match values.
func (p *SyntheticProvider) GetJobs(ctx context.Context, skillsText, location string, maxResults int) (*job.Jobs, error) {
	key := CacheKey(skillsText, location)

	if p.cache != nil {
		if jobs, ok := p.cache.Lookup(ctx, key); ok {
			p.logger.Debug("job cache hit", zap.String("key", key), zap.Int("count", len(jobs)))
			return &job.Jobs{Items: jobs}, nil
		}
	}

	jobs := p.gen.Generate(skillsText, location, maxResults)

	if p.cache != nil {
		// A failed cache write only costs a regeneration next time.
		if err := p.cache.Store(ctx, key, jobs); err != nil {
			p.logger.Warn("storing jobs in cache failed", zap.String("key", key), zap.Error(err))
		}
	}

	return &job.Jobs{Items: jobs}, nil
}
