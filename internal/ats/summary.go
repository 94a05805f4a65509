package ats

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	maxSummarySkills = 5
	summaryClosing   = "Seeking opportunities to leverage technical expertise and drive innovative solutions in a dynamic environment"
)

var yearsPattern = regexp.MustCompile(`(\d+)\s*\+?\s*years?`)

var summaryRoles = []string{
	"developer", "engineer", "designer", "manager", "analyst",
	"scientist", "architect", "consultant", "specialist", "administrator",
}

type focusArea struct {
	triggers []string
	label    string
}

var focusAreas = []focusArea{
	{triggers: []string{"project", "projects"}, label: "project delivery"},
	{triggers: []string{"team", "collaboration"}, label: "team collaboration"},
	{triggers: []string{"client", "customer"}, label: "client satisfaction"},
}

// YearsOfExperience returns the largest "<n> years" figure mentioned in text,
// or 0. Figures too large for an int count as math.MaxInt.
func YearsOfExperience(text string) int {
	best := 0
	for _, m := range yearsPattern.FindAllStringSubmatch(strings.ToLower(text), -1) {
		n, err := strconv.Atoi(m[1])
		if errors.Is(err, strconv.ErrRange) {
			n = math.MaxInt
		} else if err != nil {
			continue
		}
		if n > best {
			best = n
		}
	}
	return best
}

// ExperienceLevel maps years of experience to a seniority label.
func ExperienceLevel(years int) string {
	switch {
	case years >= 7:
		return "Senior"
	case years >= 3:
		return "Mid-level"
	case years >= 1:
		return "Junior"
	default:
		return "Entry-level"
	}
}

// GenerateSummary writes a one-paragraph professional summary from the résumé
// text and its skills. Output is deterministic for the same inputs.
func GenerateSummary(text string, skills []string) string {
	lower := strings.ToLower(text)
	years := YearsOfExperience(lower)
	level := ExperienceLevel(years)

	role := "Professional"
	for _, candidate := range summaryRoles {
		if strings.Contains(lower, candidate) {
			role = Title(candidate)
			break
		}
	}

	parts := make([]string, 0, 4)
	if years > 0 {
		parts = append(parts, fmt.Sprintf("%s %s with %d+ years of experience", level, role, years))
	} else {
		parts = append(parts, fmt.Sprintf("%s %s", level, role))
	}

	if len(skills) > 0 {
		parts = append(parts, "specializing in "+joinWithAnd(skills, maxSummarySkills))
	}

	var focus []string
	for _, area := range focusAreas {
		for _, trigger := range area.triggers {
			if strings.Contains(lower, trigger) {
				focus = append(focus, area.label)
				break
			}
		}
	}
	if len(focus) > 0 {
		parts = append(parts, "with a proven track record in "+strings.Join(focus, " and "))
	}

	parts = append(parts, summaryClosing)
	return strings.Join(parts, ". ") + "."
}

func joinWithAnd(items []string, limit int) string {
	if len(items) > limit {
		items = items[:limit]
	}
	if len(items) == 1 {
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}
