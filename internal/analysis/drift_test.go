package analysis

import (
	"strings"
	"testing"
)

func TestDetectDrift_RelevantNotes(t *testing.T) {
	notes := []string{
		"Binary search requires a sorted array",
		"Time complexity is O(log n)",
		"Implemented both iterative and recursive versions",
	}

	got := DetectDrift("Binary Search", notes, 85)

	if got.Detected {
		t.Errorf("relevant notes should not trigger drift: %+v", got)
	}
	if got.Severity != SeverityNone {
		t.Errorf("expected severity none, got %s", got.Severity)
	}
	if got.Details != "" {
		t.Errorf("expected empty details, got %q", got.Details)
	}
}

func TestDetectDrift_LowRelevance(t *testing.T) {
	notes := []string{"Watched a video about cooking", "Learned some recipes", "Made dinner"}

	got := DetectDrift("Machine Learning", notes, 25)

	if !got.Detected || got.Severity != SeverityHigh {
		t.Fatalf("expected high severity drift, got %+v", got)
	}
	if !strings.Contains(strings.ToLower(got.Details), "low relevance") {
		t.Errorf("details should cite low relevance: %q", got.Details)
	}
	if !strings.Contains(got.Details, "25%") {
		t.Errorf("details should include the relevance percentage: %q", got.Details)
	}
	if !strings.Contains(got.Details, "'Machine Learning'") {
		t.Errorf("details should name the topic: %q", got.Details)
	}
}

func TestDetectDrift_MediumRelevance(t *testing.T) {
	notes := []string{"Something about arrays", "Also looked at some code"}

	got := DetectDrift("Data Structures", notes, 55)

	if !got.Detected || got.Severity != SeverityMedium {
		t.Errorf("expected medium severity drift, got %+v", got)
	}
}

func TestDetectDrift_VagueNotes(t *testing.T) {
	notes := []string{
		"Learned some stuff about algorithms",
		"It was basically about things and whatever",
		"Pretty much understood etc",
	}

	got := DetectDrift("Algorithms", notes, 70)

	if !got.Detected || got.Severity != SeverityLow {
		t.Fatalf("expected low severity drift, got %+v", got)
	}
	if !strings.Contains(strings.ToLower(got.Details), "vague") {
		t.Errorf("details should mention vagueness: %q", got.Details)
	}
}

func TestDetectDrift_EmptyNotes(t *testing.T) {
	got := DetectDrift("Python", nil, 50)

	if !got.Detected || got.Severity != SeverityHigh {
		t.Fatalf("expected high severity drift for empty notes, got %+v", got)
	}
	if !strings.Contains(strings.ToLower(got.Details), "no notes") {
		t.Errorf("details should mention missing notes: %q", got.Details)
	}
}

func TestDetectDrift_SubjectAreaHint(t *testing.T) {
	notes := []string{
		"Wrote a function to calculate fibonacci",
		"Used a loop and variable to store results",
		"Debugging the algorithm",
	}

	got := DetectDrift("History of Rome", notes, 30)

	if !got.Detected || got.Severity != SeverityHigh {
		t.Fatalf("expected high severity drift, got %+v", got)
	}
	if !strings.Contains(got.Details, "more related to programming") {
		t.Errorf("details should name the detected subject: %q", got.Details)
	}
}

func TestDetectDrift_SubjectTieBreak(t *testing.T) {
	// Two hits each for math (equation, theorem) and programming
	// (code, debug): the first-declared subject wins the tie.
	notes := []string{"An equation and a theorem", "Some code to debug"}

	got := DetectDrift("Cooking", notes, 20)

	if !strings.Contains(got.Details, "more related to math") {
		t.Errorf("tie should resolve to the first-declared subject: %q", got.Details)
	}
}

func TestDetectDrift_NoHintWhenTopicNamesSubject(t *testing.T) {
	notes := []string{"equation stuff", "formula things"}

	got := DetectDrift("math", notes, 30)

	if strings.Contains(got.Details, "more related to") {
		t.Errorf("no subject hint expected when the topic names the subject: %q", got.Details)
	}
}

func TestDetectDrift_DecisionOrder(t *testing.T) {
	// Vague notes but low relevance: the relevance rule fires first.
	notes := []string{"stuff and things", "basically whatever"}

	got := DetectDrift("Chemistry", notes, 30)

	if got.Severity != SeverityHigh {
		t.Errorf("low relevance should win over vagueness, got severity %s", got.Severity)
	}
}
