package job

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

const (
	JobIDField       = "ID"
	JobCompanyField  = "Company"
	JobLocationField = "Location"
)

// skillPattern extracts the skill name from requirement lines like
// "- Proficiency in Python" or "- Experience with SQL".
var skillPattern = regexp.MustCompile(`(?i)(?:proficiency|experience|knowledge)\s+(?:in|with)\s+([^,.\n]+)`)

type Jobs struct {
	Items []*Job
}

// Job is a single job posting. Transient records produced by a provider live
// only for the duration of a search; only explicitly saved jobs are persisted.
type Job struct {
	ID             string   `json:"id,omitempty"`
	Title          string   `json:"title,omitempty"`
	Company        string   `json:"company,omitempty"`
	Location       string   `json:"location,omitempty"`
	Salary         string   `json:"salary,omitempty"`
	Description    string   `json:"description,omitempty"`
	Requirements   string   `json:"requirements,omitempty"`
	SkillsRequired []string `json:"skills_required,omitempty"`
	Industry       string   `json:"industry,omitempty"`
	Experience     string   `json:"experience,omitempty"`
	DatePosted     string   `json:"date_posted,omitempty"`
	URL            string   `json:"url,omitempty"`
	// SkillsMatch is recomputed per query and never treated as ground truth.
	SkillsMatch int `json:"skills_match"`
}

// Skills returns the declared skill list of the job. When the posting carries
// no structured skills_required, the list is recovered from the free-text
// requirements block, one candidate skill per dashed line.
func (j *Job) Skills() []string {
	if len(j.SkillsRequired) > 0 {
		return j.SkillsRequired
	}

	var skills []string
	for _, line := range strings.Split(j.Requirements, "\n") {
		idx := strings.Index(line, "-")
		if idx < 0 {
			continue
		}
		part := strings.TrimSpace(line[idx+1:])
		if part == "" {
			continue
		}
		if m := skillPattern.FindStringSubmatch(strings.ToLower(part)); m != nil {
			skills = append(skills, strings.TrimSpace(m[1]))
			continue
		}
		skills = append(skills, part)
	}
	return skills
}

func (j *Job) GetStringField(name string) string {
	switch name {
	case JobIDField:
		return j.ID
	case JobCompanyField:
		return j.Company
	case JobLocationField:
		return j.Location
	default:
		return ""
	}
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) FindByID(id string) *Job {
	for _, item := range j.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// Exclude removes jobs whose field value is in targets. Preserves order.
func (j *Jobs) Exclude(name string, targets []string) []string {
	drop := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		drop[t] = struct{}{}
	}

	var excluded []string
	kept := j.Items[:0]
	for _, item := range j.Items {
		if _, ok := drop[item.GetStringField(name)]; ok {
			excluded = append(excluded, item.ID)
			continue
		}
		kept = append(kept, item)
	}
	j.Items = kept
	return excluded
}

// SortByMatch orders jobs by skills_match descending. The sort is stable so
// ties keep their original order.
func (j *Jobs) SortByMatch() {
	sort.SliceStable(j.Items, func(a, b int) bool {
		return j.Items[a].SkillsMatch > j.Items[b].SkillsMatch
	})
}

// ReportByCompany groups jobs by company for the interactive report action.
func (j *Jobs) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, item := range j.Items {
		report[item.Company] = append(report[item.Company], map[string]string{
			"title":    item.Title,
			"location": item.Location,
			"salary":   item.Salary,
			"match":    fmt.Sprintf("%d%%", item.SkillsMatch),
			"posted":   item.DatePosted,
			"url":      item.URL,
		})
	}
	return report
}

func (j *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j); err != nil {
		return "", err
	}
	return file.Name(), nil
}
