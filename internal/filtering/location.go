package filtering

import (
	"strings"

	"github.com/akorchagin/career-matcher/internal/job"
)

type locationFilter struct {
	location string
}

// NewLocation creates a filter that keeps jobs whose location contains the
// query, case-insensitively. An empty query passes everything.
func NewLocation(location string) Filter {
	return &locationFilter{location: strings.TrimSpace(location)}
}

func (f *locationFilter) Name() string { return "location" }

func (f *locationFilter) Disable(string) {}

func (f *locationFilter) IsEnabled() bool { return true }

func (f *locationFilter) Apply(jobs *job.Jobs) (*job.Jobs, Step, error) {
	if f.location == "" {
		return jobs, Step{Initial: jobs.Len(), Left: jobs.Len()}, nil
	}

	want := strings.ToLower(f.location)
	next, step := keep(jobs, func(j *job.Job) bool {
		return strings.Contains(strings.ToLower(j.Location), want)
	})
	return next, step, nil
}

func (f *locationFilter) Status() Status {
	details := map[string]string{}
	if f.location != "" {
		details["location"] = f.location
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
