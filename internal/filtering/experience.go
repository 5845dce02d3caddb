package filtering

import (
	"strings"

	"github.com/akorchagin/career-matcher/internal/job"
)

// AllLevels is the wildcard value for the experience filter.
const AllLevels = "All Levels"

// Level buckets are matched against free-text experience ranges like
// "5-7 years" by substring, not by parsing the numbers.
var levelMarkers = map[string][]string{
	"entry level":  {"0-", "1-"},
	"mid level":    {"3-", "4-"},
	"senior level": {"5-", "6-", "7-"},
}

type experienceFilter struct {
	level string
}

// NewExperience creates a filter that keeps jobs whose experience range
// falls into the given level bucket. An empty value or AllLevels passes
// everything; an unknown level disables the filter.
func NewExperience(level string) Filter {
	return &experienceFilter{level: strings.TrimSpace(level)}
}

func (f *experienceFilter) Name() string { return "experience" }

func (f *experienceFilter) Disable(string) {}

func (f *experienceFilter) IsEnabled() bool { return true }

func (f *experienceFilter) Apply(jobs *job.Jobs) (*job.Jobs, Step, error) {
	if f.level == "" || strings.EqualFold(f.level, AllLevels) {
		return jobs, Step{Initial: jobs.Len(), Left: jobs.Len()}, nil
	}

	markers, ok := levelMarkers[strings.ToLower(f.level)]
	if !ok {
		return jobs, Step{Initial: jobs.Len(), Left: jobs.Len()}, nil
	}

	next, step := keep(jobs, func(j *job.Job) bool {
		experience := strings.ToLower(j.Experience)
		for _, marker := range markers {
			if strings.Contains(experience, marker) {
				return true
			}
		}
		return false
	})
	return next, step, nil
}

func (f *experienceFilter) Status() Status {
	details := map[string]string{}
	if f.level != "" {
		details["level"] = f.level
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
