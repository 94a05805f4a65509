package ats

// Breakdown explains how a score was reached.
type Breakdown struct {
	Strengths           []string `json:"strengths"`
	Weaknesses          []string `json:"weaknesses"`
	MissingKeywords     []string `json:"missing_keywords"`
	ProfessionalSummary string   `json:"professional_summary"`
}

// Result is the outcome of scoring one résumé.
type Result struct {
	Score     int       `json:"ats_score"`
	Breakdown Breakdown `json:"ats_breakdown"`
}

const (
	MinScore = 0
	MaxScore = 100

	minWords = 200
	maxWords = 2000

	lengthPoints  = 10.0
	emailPoints   = 10.0
	phonePoints   = 10.0
	sectionPoints = 30.0
	skillPoints   = 40.0

	// Number of detected skills that earns the full skill points.
	skillBaseline = 5
	// More than this many digits counts as a phone number.
	phoneDigitThreshold = 9
)
