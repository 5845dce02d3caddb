package filtering

import (
	"strconv"
	"strings"

	"github.com/akorchagin/career-matcher/internal/job"
	"github.com/akorchagin/career-matcher/internal/matching"
)

// SkillFitConfig configures the scoring step of the pipeline.
type SkillFitConfig struct {
	// Reference is the candidate's skill list every job is scored against.
	Reference []string
	// MinMatch drops jobs scoring below it, 0 keeps everything.
	MinMatch int
	Mode     matching.Mode
	// Rescore recomputes skills_match from the job's own skill list. When
	// false the provider's score is trusted, which is how catalog listings
	// keep their jittered score.
	Rescore bool
}

type skillFitFilter struct {
	cfg SkillFitConfig
}

// NewSkillFit creates the scoring filter of the pipeline.
func NewSkillFit(cfg SkillFitConfig) Filter {
	return &skillFitFilter{cfg: cfg}
}

func (f *skillFitFilter) Name() string { return "skill_fit" }

func (f *skillFitFilter) Disable(string) {}

func (f *skillFitFilter) IsEnabled() bool { return true }

func (f *skillFitFilter) Apply(jobs *job.Jobs) (*job.Jobs, Step, error) {
	next, step := keep(jobs, func(j *job.Job) bool {
		if f.cfg.Rescore {
			// Scored as the share of the candidate's skills the job asks for.
			j.SkillsMatch = matching.Percentage(j.Skills(), f.cfg.Reference, f.cfg.Mode)
		}
		return j.SkillsMatch >= f.cfg.MinMatch
	})
	return next, step, nil
}

func (f *skillFitFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: true,
		Details: map[string]string{
			"reference": strings.Join(f.cfg.Reference, ","),
			"min_match": strconv.Itoa(f.cfg.MinMatch),
			"rescore":   strconv.FormatBool(f.cfg.Rescore),
		},
	}
}
