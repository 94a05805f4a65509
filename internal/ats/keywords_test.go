package ats

import (
	"reflect"
	"testing"
)

func TestTitle(t *testing.T) {
	cases := map[string]string{
		"ci/cd":           "Ci/Cd",
		"node.js":         "Node.Js",
		"problem-solving": "Problem-Solving",
		"version control": "Version Control",
		"ui/ux":           "Ui/Ux",
		"SQL":             "Sql",
		"":                "",
	}
	for in, want := range cases {
		if got := Title(in); got != want {
			t.Fatalf("Title(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDetectRoleUsesFixedOrder(t *testing.T) {
	// "engineer" appears first in the text but "developer" is checked first.
	if got := DetectRole("engineer and developer"); got != "developer" {
		t.Fatalf("expected developer, got %q", got)
	}
	if got := DetectRole("marketing lead"); got != "marketing" {
		t.Fatalf("expected marketing, got %q", got)
	}
	if got := DetectRole("nothing here"); got != "" {
		t.Fatalf("expected no role, got %q", got)
	}
}

func TestMissingKeywordsForDeveloper(t *testing.T) {
	got := MissingKeywords("Senior developer skilled in python and react")
	want := []string{
		"Javascript", "Node.Js", "Api", "Git", "Docker", "Aws", "Ci/Cd", "Testing",
		"Agile", "Scrum", "Devops", "Cloud", "Debugging", "Version Control", "Collaboration",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v\nwant %v", got, want)
	}
}

func TestMissingKeywordsHasNoDuplicates(t *testing.T) {
	got := MissingKeywords("data person")
	seen := map[string]bool{}
	for _, kw := range got {
		if seen[kw] {
			t.Fatalf("duplicate keyword %q in %v", kw, got)
		}
		seen[kw] = true
	}
	if len(got) > 15 {
		t.Fatalf("expected at most 15, got %d", len(got))
	}
}

func TestMissingKeywordsFallsBackToDefaults(t *testing.T) {
	text := "agile scrum ci/cd devops cloud api testing debugging version control git collaboration problem-solving " +
		"leadership communication teamwork analytical creative detail-oriented time management adaptable strategic thinking " +
		"improved increased reduced developed implemented designed optimized achieved led managed delivered"
	got := MissingKeywords(text)
	if !reflect.DeepEqual(got, defaultKeywords) {
		t.Fatalf("expected defaults, got %v", got)
	}
}
