// Package matching implements the skill overlap scoring used across the
// providers and the filter pipeline. All functions are pure.
package matching

import (
	"math"
	"strings"
)

// Mode selects how a candidate skill is compared against a reference skill.
type Mode int

const (
	// Lenient counts a skill as matched when either token contains the
	// other, so "python" matches "proficiency in python". This is the
	// default across the program.
	Lenient Mode = iota
	// Strict requires exact case-insensitive equality.
	Strict
)

// Normalize lower-cases and trims every skill and drops empty tokens.
func Normalize(skills []string) []string {
	cleaned := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		cleaned = append(cleaned, s)
	}
	return cleaned
}

// Split breaks a comma-separated skill query into raw tokens.
func Split(text string) []string {
	var skills []string
	for _, tok := range strings.Split(text, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		skills = append(skills, tok)
	}
	return skills
}

// Primary returns the first non-empty token of a skill query. It seeds
// synthetic job titles and descriptions, hence the generic fallback.
func Primary(text string) string {
	if skills := Split(text); len(skills) > 0 {
		return skills[0]
	}
	return "general"
}

// Percentage scores how much of the candidate skill list is covered by the
// reference list, 0 to 100. An empty list on either side scores 0, and a
// list always fully matches itself.
func Percentage(reference, candidate []string, mode Mode) int {
	ref := Normalize(reference)
	cand := Normalize(candidate)

	if len(ref) == 0 || len(cand) == 0 {
		return 0
	}

	matched := 0
	for _, skill := range cand {
		if matchesAny(skill, ref, mode) {
			matched++
		}
	}

	pct := int(math.Round(float64(matched) / float64(len(cand)) * 100))
	if pct > 100 {
		pct = 100
	}
	return pct
}

func matchesAny(skill string, reference []string, mode Mode) bool {
	for _, ref := range reference {
		switch mode {
		case Strict:
			if skill == ref {
				return true
			}
		default:
			if strings.Contains(skill, ref) || strings.Contains(ref, skill) {
				return true
			}
		}
	}
	return false
}
