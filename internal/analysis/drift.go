package analysis

import (
	"fmt"
	"strings"
)

// Severity grades how badly notes have drifted from the topic.
type Severity string

const (
	SeverityNone   Severity = "none"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// DriftResult is the outcome of topic drift detection.
type DriftResult struct {
	Detected bool     `json:"detected"`
	Details  string   `json:"details"`
	Severity Severity `json:"severity"`
}

// subjectArea pairs a subject name with the keywords that indicate it.
// Order matters: ties in hit counts resolve to the earlier entry.
type subjectArea struct {
	name     string
	keywords []string
}

var subjectAreas = []subjectArea{
	{"math", []string{"equation", "formula", "calculate", "solve", "proof", "theorem",
		"derivative", "integral", "function", "variable", "graph"}},
	{"programming", []string{"code", "function", "class", "variable", "loop", "algorithm",
		"debug", "compile", "syntax", "api", "method", "object"}},
	{"science", []string{"experiment", "hypothesis", "theory", "data", "observation",
		"molecule", "reaction", "cell", "energy", "force"}},
	{"history", []string{"century", "war", "civilization", "period", "revolution",
		"empire", "dynasty", "treaty", "movement", "era"}},
	{"language", []string{"grammar", "vocabulary", "sentence", "verb", "noun",
		"pronunciation", "conjugation", "tense", "phrase"}},
}

var vagueIndicators = []string{
	"stuff", "things", "something", "whatever", "etc",
	"and more", "basically", "pretty much", "kind of",
}

// DetectDrift flags sessions whose notes do not match the stated topic.
// The relevance score comes from the basic analyzer.
func DetectDrift(topic string, notes []string, relevanceScore float64) DriftResult {
	if len(notes) == 0 {
		return DriftResult{
			Detected: true,
			Details:  "No notes taken. Cannot verify topic engagement.",
			Severity: SeverityHigh,
		}
	}

	blob := notesBlob(notes)
	topicLower := strings.ToLower(topic)

	switch {
	case relevanceScore < 40:
		details := fmt.Sprintf("Your notes show low relevance (%.0f%%) to '%s'. ", relevanceScore, topic)
		if subject, ok := dominantSubject(blob, topicLower); ok {
			details += fmt.Sprintf("Notes seem more related to %s. ", subject)
		}
		details += "Did you switch topics during the session?"
		return DriftResult{Detected: true, Details: details, Severity: SeverityHigh}

	case relevanceScore < 60:
		details := fmt.Sprintf("Partial topic drift detected. Your notes partially cover '%s' ", topic) +
			"but may be missing key concepts or wandering into tangents."
		return DriftResult{Detected: true, Details: details, Severity: SeverityMedium}

	case keywordHits(blob, vagueIndicators) >= 2:
		details := "Notes are vague. Try to include specific terms and concepts " +
			fmt.Sprintf("related to '%s' for better retention.", topic)
		return DriftResult{Detected: true, Details: details, Severity: SeverityLow}
	}

	return DriftResult{Severity: SeverityNone}
}

// dominantSubject returns the subject area with the most keyword hits,
// provided at least one area has two or more hits and the topic itself
// does not already name a detected area. Ties go to the area declared
// first.
func dominantSubject(blob, topicLower string) (string, bool) {
	type match struct {
		name string
		hits int
	}
	var matches []match
	for _, area := range subjectAreas {
		if hits := keywordHits(blob, area.keywords); hits >= 2 {
			matches = append(matches, match{area.name, hits})
		}
	}
	if len(matches) == 0 {
		return "", false
	}
	for _, m := range matches {
		if strings.Contains(m.name, topicLower) {
			return "", false
		}
	}
	best := matches[0]
	for _, m := range matches[1:] {
		if m.hits > best.hits {
			best = m
		}
	}
	return best.name, true
}
