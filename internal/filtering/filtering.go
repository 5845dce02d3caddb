// Package filtering narrows a job list down to the postings that satisfy the
// search predicates and rescores what is left. Filters run sequentially; the
// result is sorted by skills_match descending.
package filtering

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/akorchagin/career-matcher/internal/job"
)

// Filter represents a single filtering step applied to jobs.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Apply(jobs *job.Jobs) (*job.Jobs, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// Filtering executes an ordered list of filters.
type Filtering struct {
	steps  []Filter
	logger *zap.Logger
}

func New(steps []Filter, logger *zap.Logger) *Filtering {
	return &Filtering{steps: steps, logger: logger}
}

// Run applies every enabled filter in order and returns the surviving jobs
// sorted by skills_match descending. Ties keep their input order.
func (f *Filtering) Run(jobs *job.Jobs) (*job.Jobs, error) {
	for _, step := range f.steps {
		if !step.IsEnabled() {
			f.logger.Info("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(jobs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		f.logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		jobs = next
	}

	jobs.SortByMatch()
	return jobs, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

// keep rebuilds the job list with only the items pred approves, preserving
// order, and reports the step accounting.
func keep(jobs *job.Jobs, pred func(*job.Job) bool) (*job.Jobs, Step) {
	initial := jobs.Len()
	kept := make([]*job.Job, 0, initial)
	for _, item := range jobs.Items {
		if pred(item) {
			kept = append(kept, item)
		}
	}

	next := &job.Jobs{Items: kept}
	return next, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}
}
