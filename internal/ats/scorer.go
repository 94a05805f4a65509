package ats

import (
	"fmt"
	"strings"
	"unicode"
)

var keySections = []string{"experience", "education", "skills", "summary", "projects"}

type scoreInput struct {
	text   string
	lower  string
	skills []string
}

type partial struct {
	points     float64
	strengths  []string
	weaknesses []string
}

// Score computes the heuristic ATS score for a résumé and its extracted skills.
// It is pure and safe for concurrent use.
func Score(text string, skills []string) Result {
	in := scoreInput{text: text, lower: strings.ToLower(text), skills: skills}
	checks := []func(scoreInput) partial{
		scoreLength,
		scoreContact,
		scoreSections,
		scoreSkills,
	}

	breakdown := Breakdown{
		Strengths:  make([]string, 0, 6),
		Weaknesses: make([]string, 0, 6),
	}
	total := 0.0
	for _, check := range checks {
		p := check(in)
		total += p.points
		breakdown.Strengths = append(breakdown.Strengths, p.strengths...)
		breakdown.Weaknesses = append(breakdown.Weaknesses, p.weaknesses...)
	}

	breakdown.MissingKeywords = MissingKeywords(text)
	breakdown.ProfessionalSummary = GenerateSummary(text, skills)

	return Result{
		Score:     clamp(int(total)),
		Breakdown: breakdown,
	}
}

func scoreLength(in scoreInput) partial {
	words := len(strings.Fields(in.text))
	if words >= minWords && words <= maxWords {
		return partial{points: lengthPoints, strengths: []string{"Optimal resume length"}}
	}
	return partial{weaknesses: []string{fmt.Sprintf("Resume length is outside optimal range (%d-%d words)", minWords, maxWords)}}
}

func scoreContact(in scoreInput) partial {
	var p partial
	if strings.Contains(in.text, "@") {
		p.points += emailPoints
		p.strengths = append(p.strengths, "Email address detected")
	} else {
		p.weaknesses = append(p.weaknesses, "Missing email address")
	}

	if countDigits(in.text) > phoneDigitThreshold {
		p.points += phonePoints
		p.strengths = append(p.strengths, "Phone number detected")
	} else {
		p.weaknesses = append(p.weaknesses, "Missing phone number")
	}
	return p
}

func scoreSections(in scoreInput) partial {
	missing := make([]string, 0, len(keySections))
	for _, section := range keySections {
		if !strings.Contains(in.lower, section) {
			missing = append(missing, Title(section))
		}
	}
	found := len(keySections) - len(missing)
	p := partial{points: float64(found) / float64(len(keySections)) * sectionPoints}
	if len(missing) == 0 {
		p.strengths = []string{"All key sections detected"}
	} else {
		p.weaknesses = []string{"Missing sections: " + strings.Join(missing, ", ")}
	}
	return p
}

func scoreSkills(in scoreInput) partial {
	n := len(in.skills)
	switch {
	case n >= skillBaseline:
		return partial{points: skillPoints, strengths: []string{fmt.Sprintf("Strong skill presence (%d skills detected)", n)}}
	case n > 0:
		return partial{
			points:     float64(n) / skillBaseline * skillPoints,
			weaknesses: []string{"Could add more relevant technical skills"},
		}
	default:
		return partial{weaknesses: []string{"No technical skills detected"}}
	}
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func clamp(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
