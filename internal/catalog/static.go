package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/akorchagin/career-matcher/internal/job"
	"github.com/akorchagin/career-matcher/internal/matching"
)

// Score bounds for catalog listings. The floor keeps demo results looking
// relevant, the ceiling avoids a misleading 100% read.
const (
	minCatalogScore = 60
	maxCatalogScore = 99
	scoreJitter     = 5
)

type catalogListing struct {
	job.Job
	SalaryRange string `json:"salary_range,omitempty"`
}

// StaticProvider serves jobs from a fixed catalog document loaded once at
// construction. Each query rescores the listings against the requested
// skills with a small random jitter.
type StaticProvider struct {
	jobs   []*job.Job
	rand   *rand.Rand
	logger *zap.Logger
}

// NewStaticProvider loads the catalog at path. A missing or unreadable
// catalog is a warning, not an error: the provider then serves empty result
// sets. The rand source is injectable so tests can pin the jitter.
func NewStaticProvider(path string, src rand.Source, logger *zap.Logger) *StaticProvider {
	p := &StaticProvider{
		rand:   rand.New(src),
		logger: logger,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("job catalog is not readable, serving empty results",
			zap.String("path", path), zap.Error(err))
		return p
	}

	var raw struct {
		JobListings []map[string]any `json:"job_listings"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn("job catalog is not parseable, serving empty results",
			zap.String("path", path), zap.Error(err))
		return p
	}

	// Catalogs are hand-authored, so be lenient about types: a numeric
	// salary or a scalar skill still decodes.
	var listings []*catalogListing
	cfg := &mapstructure.DecoderConfig{
		Result:           &listings,
		TagName:          "json",
		Squash:           true,
		WeaklyTypedInput: true,
	}
	decoder, _ := mapstructure.NewDecoder(cfg)
	if err := decoder.Decode(raw.JobListings); err != nil {
		logger.Warn("job catalog is not decodable, serving empty results",
			zap.String("path", path), zap.Error(err))
		return p
	}

	for i, listing := range listings {
		j := listing.Job
		if j.Salary == "" {
			j.Salary = listing.SalaryRange
		}
		if j.ID == "" {
			j.ID = fmt.Sprintf("catalog_%d", i)
		}
		p.jobs = append(p.jobs, &j)
	}

	logger.Debug("loaded job catalog", zap.String("path", path), zap.Int("listings", len(p.jobs)))
	return p
}

// GetJobs scores every listing against the query skills and returns the top
// maxResults by descending score. Location is not applied here; it is a
// downstream filter.
func (p *StaticProvider) GetJobs(_ context.Context, skillsText, _ string, maxResults int) (*job.Jobs, error) {
	if maxResults <= 0 || maxResults > maxGeneratedJobs {
		maxResults = maxGeneratedJobs
	}

	reference := matching.Split(skillsText)
	if len(matching.Normalize(reference)) == 0 {
		return &job.Jobs{}, nil
	}

	scored := make([]*job.Job, 0, len(p.jobs))
	for _, listing := range p.jobs {
		base := matching.Percentage(reference, listing.Skills(), matching.Lenient)
		jittered := base + p.rand.Intn(2*scoreJitter+1) - scoreJitter

		copied := *listing
		copied.SkillsMatch = clampScore(jittered)
		scored = append(scored, &copied)
	}

	jobs := &job.Jobs{Items: scored}
	jobs.SortByMatch()
	if jobs.Len() > maxResults {
		jobs.Items = jobs.Items[:maxResults]
	}

	return jobs, nil
}

func clampScore(score int) int {
	if score < minCatalogScore {
		return minCatalogScore
	}
	if score > maxCatalogScore {
		return maxCatalogScore
	}
	return score
}
