package catalog

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/akorchagin/career-matcher/internal/job"
	"github.com/akorchagin/career-matcher/internal/matching"
)

// maxGeneratedJobs caps a single synthetic batch.
const maxGeneratedJobs = 10

var (
	titleTemplates = []string{
		"%s Developer",
		"Senior %s Engineer",
		"%s Analyst",
		"%s Consultant",
		"Lead %s Specialist",
		"%s Project Manager",
		"%s Architect",
		"Junior %s Developer",
		"%s Designer",
		"%s Support Specialist",
	}

	companies = []string{
		"TechCorp Inc.", "Innovative Solutions", "Global Systems",
		"NextGen Tech", "Future Software", "CodeMasters",
		"Digital Dynamics", "Tech Ventures", "ByteWorks", "DataSphere",
	}

	fallbackLocations = []string{
		"Remote", "New York, NY", "San Francisco, CA", "Austin, TX", "Seattle, WA",
	}

	salaries = []string{
		"$70,000 - $90,000", "$90,000 - $120,000", "$120,000 - $150,000",
		"$80,000 - $100,000", "$100,000 - $130,000", "Competitive",
		"$85,000 - $115,000", "$75,000 - $95,000", "$110,000 - $140,000", "DOE",
	}
)

// Generator synthesizes job postings for a skill query by cycling through
// fixed pools of titles, companies, locations and salary bands.
type Generator struct {
	now func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// Generate produces up to count postings seeded by the primary skill of the
// query. Every posting fully matches the query by construction, so its
// skills_match is the self-match score.
func (g *Generator) Generate(skillsText, location string, count int) []*job.Job {
	if count <= 0 || count > maxGeneratedJobs {
		count = maxGeneratedJobs
	}

	skills := matching.Split(skillsText)
	primary := matching.Primary(skillsText)
	if len(skills) == 0 {
		skills = []string{primary}
	}
	title := cases.Title(language.English)

	locations := make([]string, 0, 10)
	for i := 0; i < 5; i++ {
		locations = append(locations, location)
	}
	locations = append(locations, fallbackLocations...)

	now := g.now()
	jobs := make([]*job.Job, 0, count)

	for i := 0; i < count; i++ {
		jobTitle := fmt.Sprintf(titleTemplates[i%len(titleTemplates)], title.String(primary))

		var req strings.Builder
		fmt.Fprintf(&req, "- Proficiency in %s\n", primary)
		for _, skill := range skills[1:] {
			fmt.Fprintf(&req, "- Experience with %s\n", skill)
		}
		fmt.Fprintf(&req, "- %d years of software development experience\n", 3+i)
		req.WriteString("- Bachelor's degree in Computer Science or related field\n")
		req.WriteString("- Strong communication skills\n")

		jobs = append(jobs, &job.Job{
			ID:       fmt.Sprintf("job_%d_%d", now.Unix(), i),
			Title:    jobTitle,
			Company:  companies[i%len(companies)],
			Location: locations[i%len(locations)],
			Salary:   salaries[i%len(salaries)],
			Description: fmt.Sprintf(
				"We are seeking a talented %s to join our team. "+
					"You will be working on cutting-edge projects using %s. "+
					"This is an exciting opportunity to grow your career in a dynamic environment.",
				jobTitle, strings.Join(skills, ", "),
			),
			Requirements: req.String(),
			DatePosted:   now.AddDate(0, 0, -(i % 14)).Format("2006-01-02"),
			URL:          fmt.Sprintf("https://example.com/jobs/%d_%s", i, strings.ReplaceAll(strings.ToLower(primary), " ", "_")),
			SkillsMatch:  matching.Percentage(skills, skills, matching.Lenient),
		})
	}

	return jobs
}
