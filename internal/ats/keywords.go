package ats

import "strings"

const (
	maxRoleKeywords = 10
	maxKeywords     = 15
)

type roleKeywords struct {
	role     string
	keywords []string
}

// Checked in order; the first role found in the text wins.
var roleTable = []roleKeywords{
	{role: "developer", keywords: []string{"python", "javascript", "react", "node.js", "api", "git", "docker", "aws", "ci/cd", "testing"}},
	{role: "engineer", keywords: []string{"system design", "architecture", "scalability", "microservices", "kubernetes", "devops"}},
	{role: "data", keywords: []string{"sql", "python", "machine learning", "pandas", "visualization", "statistics", "big data"}},
	{role: "manager", keywords: []string{"leadership", "stakeholder management", "agile", "scrum", "roadmap", "kpis", "budgeting"}},
	{role: "designer", keywords: []string{"ui/ux", "figma", "adobe", "wireframing", "prototyping", "user research", "design systems"}},
	{role: "analyst", keywords: []string{"excel", "sql", "data analysis", "reporting", "dashboards", "business intelligence"}},
	{role: "marketing", keywords: []string{"seo", "sem", "content marketing", "analytics", "campaign management", "social media"}},
}

type keywordCategory struct {
	name     string
	keywords []string
}

var generalKeywords = []keywordCategory{
	{name: "technical", keywords: []string{"agile", "scrum", "ci/cd", "devops", "cloud", "api", "testing", "debugging", "version control", "git", "collaboration", "problem-solving"}},
	{name: "soft_skills", keywords: []string{"leadership", "communication", "teamwork", "analytical", "creative", "detail-oriented", "time management", "adaptable", "strategic thinking"}},
	{name: "achievements", keywords: []string{"improved", "increased", "reduced", "developed", "implemented", "designed", "optimized", "achieved", "led", "managed", "delivered"}},
}

var defaultKeywords = []string{
	"Leadership", "Communication", "Problem-Solving", "Teamwork",
	"Project Management", "Analytical", "Strategic Thinking", "Innovation",
}

// DetectRole returns the first known role mentioned in the lower-cased text, or "".
func DetectRole(lower string) string {
	for _, entry := range roleTable {
		if strings.Contains(lower, entry.role) {
			return entry.role
		}
	}
	return ""
}

// MissingKeywords suggests title-cased keywords absent from the text. The
// result holds between 1 and 15 entries.
func MissingKeywords(text string) []string {
	lower := strings.ToLower(text)
	out := make([]string, 0, maxKeywords)

	if role := DetectRole(lower); role != "" {
		for _, entry := range roleTable {
			if entry.role != role {
				continue
			}
			for _, kw := range entry.keywords {
				if len(out) >= maxRoleKeywords {
					break
				}
				if !strings.Contains(lower, kw) {
					out = append(out, Title(kw))
				}
			}
		}
	}

	seen := make(map[string]struct{}, maxKeywords)
	for _, kw := range out {
		seen[kw] = struct{}{}
	}
	for _, category := range generalKeywords {
		for _, kw := range category.keywords {
			if len(out) >= maxKeywords {
				break
			}
			if strings.Contains(lower, kw) {
				continue
			}
			titled := Title(kw)
			if _, dup := seen[titled]; dup {
				continue
			}
			seen[titled] = struct{}{}
			out = append(out, titled)
		}
	}

	if len(out) == 0 {
		out = append(out, defaultKeywords...)
	}
	if len(out) > maxKeywords {
		out = out[:maxKeywords]
	}
	return out
}
