package skills

import "strings"

// Vocabulary is the fixed set of recognized skills, matched as lowercase substrings.
var Vocabulary = []string{
	"python", "java", "javascript", "c++", "c#", "php", "ruby", "go", "swift", "kotlin",
	"html", "css", "sql", "mysql", "postgresql", "mongodb", "aws", "azure", "docker",
	"kubernetes", "git", "react", "angular", "vue", "django", "flask", "spring", "node.js",
	"machine learning", "data science", "artificial intelligence", "deep learning",
	"communication", "leadership", "problem solving", "agile", "scrum", "project management",
}

// Extract returns every vocabulary term contained in text, in vocabulary order.
// Matching is plain substring containment, so "go" also matches "good".
func Extract(text string) []string {
	found := make([]string, 0, 8)
	if text == "" {
		return found
	}
	lower := strings.ToLower(text)
	for _, term := range Vocabulary {
		if strings.Contains(lower, term) {
			found = append(found, term)
		}
	}
	return found
}

// Normalize lowercases, trims and de-duplicates a caller-supplied skill list,
// dropping empty entries. Order of first occurrence is kept.
func Normalize(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Split parses a comma separated skill list such as a query parameter.
func Split(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	return Normalize(strings.Split(raw, ","))
}
