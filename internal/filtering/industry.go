package filtering

import (
	"strings"

	"github.com/akorchagin/career-matcher/internal/job"
)

// AllIndustries is the wildcard value for the industry filter.
const AllIndustries = "All Industries"

type industryFilter struct {
	industry string
}

// NewIndustry creates a filter that keeps jobs in exactly the given industry.
// An empty value or AllIndustries passes everything.
func NewIndustry(industry string) Filter {
	return &industryFilter{industry: strings.TrimSpace(industry)}
}

func (f *industryFilter) Name() string { return "industry" }

func (f *industryFilter) Disable(string) {}

func (f *industryFilter) IsEnabled() bool { return true }

func (f *industryFilter) Apply(jobs *job.Jobs) (*job.Jobs, Step, error) {
	if f.industry == "" || strings.EqualFold(f.industry, AllIndustries) {
		return jobs, Step{Initial: jobs.Len(), Left: jobs.Len()}, nil
	}

	next, step := keep(jobs, func(j *job.Job) bool {
		return strings.EqualFold(j.Industry, f.industry)
	})
	return next, step, nil
}

func (f *industryFilter) Status() Status {
	details := map[string]string{}
	if f.industry != "" {
		details["industry"] = f.industry
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
