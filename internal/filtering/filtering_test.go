package filtering

import (
	"testing"

	"go.uber.org/zap"

	"github.com/akorchagin/career-matcher/internal/job"
	"github.com/akorchagin/career-matcher/internal/matching"
)

func TestLocationFilterSubstring(t *testing.T) {
	jobs := &job.Jobs{Items: []*job.Job{
		{ID: "1", Location: "Remote"},
		{ID: "2", Location: "New York, NY"},
		{ID: "3", Location: "Remote (US)"},
		{ID: "4", Location: "Austin, TX"},
		{ID: "5", Location: "remote"},
		{ID: "6", Location: "Seattle, WA"},
		{ID: "7", Location: "San Francisco, CA"},
		{ID: "8", Location: "Boston, MA"},
		{ID: "9", Location: "Chicago, IL"},
		{ID: "10", Location: "Denver, CO"},
	}}

	filtered, _, err := NewLocation("Remote").Apply(jobs)
	if err != nil {
		t.Fatal(err)
	}
	if filtered.Len() != 3 {
		t.Fatalf("expected exactly 3 remote jobs, got %d", filtered.Len())
	}
	for _, j := range filtered.Items {
		if j.ID != "1" && j.ID != "3" && j.ID != "5" {
			t.Fatalf("unexpected survivor: %s", j.ID)
		}
	}
}

func TestLocationFilterEmptyPassesAll(t *testing.T) {
	jobs := &job.Jobs{Items: []*job.Job{{ID: "1"}, {ID: "2"}}}

	filtered, step, err := NewLocation("").Apply(jobs)
	if err != nil {
		t.Fatal(err)
	}
	if filtered.Len() != 2 || step.Dropped != 0 {
		t.Fatalf("empty location must pass all, left %d", filtered.Len())
	}
}

func TestIndustryFilter(t *testing.T) {
	jobs := &job.Jobs{Items: []*job.Job{
		{ID: "1", Industry: "Technology"},
		{ID: "2", Industry: "Finance"},
		{ID: "3", Industry: "technology"},
	}}

	filtered, _, err := NewIndustry("Technology").Apply(jobs)
	if err != nil {
		t.Fatal(err)
	}
	if filtered.Len() != 2 {
		t.Fatalf("expected 2 technology jobs, got %d", filtered.Len())
	}

	all, _, err := NewIndustry(AllIndustries).Apply(jobs)
	if err != nil {
		t.Fatal(err)
	}
	if all.Len() != 3 {
		t.Fatalf("wildcard must pass all, got %d", all.Len())
	}
}

func TestExperienceFilterSeniorLevel(t *testing.T) {
	jobs := &job.Jobs{Items: []*job.Job{
		{ID: "1", Experience: "5-7 years"},
		{ID: "2", Experience: "1-3 years"},
		{ID: "3", Experience: "entry"},
	}}

	filtered, _, err := NewExperience("Senior Level").Apply(jobs)
	if err != nil {
		t.Fatal(err)
	}
	if filtered.Len() != 1 || filtered.Items[0].ID != "1" {
		t.Fatalf("expected only the 5-7 years job, got %d survivors", filtered.Len())
	}
}

func TestExperienceFilterBuckets(t *testing.T) {
	jobs := &job.Jobs{Items: []*job.Job{
		{ID: "entry", Experience: "0-2 years"},
		{ID: "mid", Experience: "3-5 years"},
		{ID: "senior", Experience: "6-8 years"},
	}}

	cases := map[string]string{
		"Entry Level":  "entry",
		"Mid Level":    "mid",
		"Senior Level": "senior",
	}

	for level, wantID := range cases {
		filtered, _, err := NewExperience(level).Apply(jobs)
		if err != nil {
			t.Fatal(err)
		}
		if filtered.Len() != 1 || filtered.Items[0].ID != wantID {
			t.Fatalf("%s: expected only %q, got %d survivors", level, wantID, filtered.Len())
		}
	}

	all, _, err := NewExperience(AllLevels).Apply(jobs)
	if err != nil {
		t.Fatal(err)
	}
	if all.Len() != 3 {
		t.Fatalf("wildcard must pass all, got %d", all.Len())
	}
}

func TestSkillFitRescoreAndThreshold(t *testing.T) {
	jobs := &job.Jobs{Items: []*job.Job{
		{ID: "good", SkillsRequired: []string{"python", "sql"}},
		{ID: "poor", SkillsRequired: []string{"cobol"}},
	}}

	filtered, step, err := NewSkillFit(SkillFitConfig{
		Reference: []string{"python", "sql"},
		MinMatch:  50,
		Mode:      matching.Lenient,
		Rescore:   true,
	}).Apply(jobs)
	if err != nil {
		t.Fatal(err)
	}

	if filtered.Len() != 1 || filtered.Items[0].ID != "good" {
		t.Fatalf("expected only the matching job, got %d survivors", filtered.Len())
	}
	if filtered.Items[0].SkillsMatch != 100 {
		t.Fatalf("expected rescored 100, got %d", filtered.Items[0].SkillsMatch)
	}
	if step.Dropped != 1 {
		t.Fatalf("expected 1 dropped, got %d", step.Dropped)
	}
}

func TestSkillFitTrustsProviderScores(t *testing.T) {
	jobs := &job.Jobs{Items: []*job.Job{
		{ID: "1", SkillsMatch: 72, SkillsRequired: []string{"cobol"}},
		{ID: "2", SkillsMatch: 65, SkillsRequired: []string{"cobol"}},
	}}

	filtered, _, err := NewSkillFit(SkillFitConfig{
		Reference: []string{"python"},
		MinMatch:  70,
		Rescore:   false,
	}).Apply(jobs)
	if err != nil {
		t.Fatal(err)
	}

	// The provider score decides, so the 72 stays and the 65 goes.
	if filtered.Len() != 1 || filtered.Items[0].ID != "1" {
		t.Fatalf("expected only the 72%% job, got %d survivors", filtered.Len())
	}
	if filtered.Items[0].SkillsMatch != 72 {
		t.Fatalf("provider score was overwritten: %d", filtered.Items[0].SkillsMatch)
	}
}

func TestRunAppliesAllFiltersConjunctively(t *testing.T) {
	jobs := &job.Jobs{Items: []*job.Job{
		{ID: "1", Location: "Remote", Industry: "Technology", Experience: "5-7 years", SkillsRequired: []string{"python"}},
		{ID: "2", Location: "Remote", Industry: "Finance", Experience: "5-7 years", SkillsRequired: []string{"python"}},
		{ID: "3", Location: "Austin, TX", Industry: "Technology", Experience: "5-7 years", SkillsRequired: []string{"python"}},
		{ID: "4", Location: "Remote", Industry: "Technology", Experience: "1-3 years", SkillsRequired: []string{"python"}},
		{ID: "5", Location: "Remote", Industry: "Technology", Experience: "6-8 years", SkillsRequired: []string{"cobol"}},
	}}

	filters := []Filter{
		NewLocation("Remote"),
		NewIndustry("Technology"),
		NewExperience("Senior Level"),
		NewSkillFit(SkillFitConfig{
			Reference: []string{"python"},
			MinMatch:  50,
			Mode:      matching.Lenient,
			Rescore:   true,
		}),
	}

	result, err := New(filters, zap.NewNop()).Run(jobs)
	if err != nil {
		t.Fatal(err)
	}

	if result.Len() != 1 || result.Items[0].ID != "1" {
		t.Fatalf("expected only job 1 to satisfy every predicate, got %d survivors", result.Len())
	}
}

func TestRunSortsByMatchDescendingStable(t *testing.T) {
	jobs := &job.Jobs{Items: []*job.Job{
		{ID: "half-a", SkillsRequired: []string{"python"}},
		{ID: "full", SkillsRequired: []string{"python", "sql"}},
		{ID: "half-b", SkillsRequired: []string{"sql"}},
	}}

	filters := []Filter{
		NewSkillFit(SkillFitConfig{
			Reference: []string{"python", "sql"},
			Mode:      matching.Lenient,
			Rescore:   true,
		}),
	}

	result, err := New(filters, zap.NewNop()).Run(jobs)
	if err != nil {
		t.Fatal(err)
	}

	wantOrder := []string{"full", "half-a", "half-b"}
	for i, want := range wantOrder {
		if result.Items[i].ID != want {
			t.Fatalf("position %d: got %s, want %s", i, result.Items[i].ID, want)
		}
	}
}

func TestRunOutputIsSubsetOfInput(t *testing.T) {
	input := &job.Jobs{Items: []*job.Job{
		{ID: "1", Location: "Remote"},
		{ID: "2", Location: "Berlin"},
	}}
	seen := map[string]bool{"1": true, "2": true}

	result, err := New([]Filter{NewLocation("remote")}, zap.NewNop()).Run(input)
	if err != nil {
		t.Fatal(err)
	}

	for _, j := range result.Items {
		if !seen[j.ID] {
			t.Fatalf("filter invented job %s", j.ID)
		}
	}
}

func TestDescribe(t *testing.T) {
	statuses := Describe([]Filter{NewLocation("Remote"), NewIndustry("")})

	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	if statuses[0].Name != "location" || statuses[0].Details["location"] != "Remote" {
		t.Fatalf("unexpected location status: %+v", statuses[0])
	}
}
