package analysis

import (
	"context"
	"reflect"
	"testing"

	"github.com/amescasi/studyloop/internal/models"
)

func TestEngine_Pure(t *testing.T) {
	engine := NewLocalEngine()
	in := Input{
		Topic:          "Binary Search",
		Notes:          []string{"Binary search requires a sorted array", "Time complexity is O(log n)"},
		PlannedMinutes: 25,
		ActualMinutes:  25,
	}
	history := []models.StudySession{{Topic: "Binary Search"}}

	first := engine.Analyze(context.Background(), in, history)
	second := engine.Analyze(context.Background(), in, history)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different results:\n%+v\n%+v", first, second)
	}
}

func TestEngine_GoodSession(t *testing.T) {
	engine := NewLocalEngine()
	in := Input{
		Topic:          "Binary Search",
		Notes:          []string{"Binary search requires a sorted array", "Time complexity is O(log n)"},
		PlannedMinutes: 25,
		ActualMinutes:  25,
	}

	got := engine.Analyze(context.Background(), in, nil)

	if got.TopicRelevance != 100 {
		t.Errorf("expected relevance 100, got %v", got.TopicRelevance)
	}
	if got.Drift.Detected || got.Drift.Severity != SeverityNone {
		t.Errorf("no drift expected: %+v", got.Drift)
	}
	if len(got.RevisionTasks) < 1 || len(got.RevisionTasks) > 4 {
		t.Errorf("expected 1-4 revision tasks, got %d", len(got.RevisionTasks))
	}
	if got.NextSessionPlan == "" {
		t.Error("next session plan should never be empty")
	}
}

func TestEngine_OffTopicSession(t *testing.T) {
	engine := NewLocalEngine()
	in := Input{
		Topic:          "Quantum Physics",
		Notes:          []string{"Made a sandwich for lunch"},
		PlannedMinutes: 25,
		ActualMinutes:  25,
	}

	got := engine.Analyze(context.Background(), in, nil)

	if got.TopicRelevance >= 50 {
		t.Errorf("off-topic notes should score below 50, got %v", got.TopicRelevance)
	}
	if !got.Drift.Detected || got.Drift.Severity != SeverityHigh {
		t.Errorf("expected high severity drift: %+v", got.Drift)
	}
}

func TestEngine_EmptyNotes(t *testing.T) {
	engine := NewLocalEngine()
	in := Input{Topic: "Anything", PlannedMinutes: 30, ActualMinutes: 30}

	got := engine.Analyze(context.Background(), in, nil)

	if !got.Drift.Detected || got.Drift.Severity != SeverityHigh {
		t.Errorf("empty notes should be high-severity drift: %+v", got.Drift)
	}
	if !got.Overconfidence.Detected || got.Overconfidence.ConfidenceGap != 1.0 {
		t.Errorf("empty notes should be maximal overconfidence: %+v", got.Overconfidence)
	}
	if got.Summary != "No notes recorded." {
		t.Errorf("unexpected summary: %q", got.Summary)
	}
}

// stubAnalyzer lets tests drive the detectors with a fixed relevance.
type stubAnalyzer struct {
	result BasicAnalysis
}

func (s stubAnalyzer) Analyze(context.Context, Input) BasicAnalysis { return s.result }

func TestEngine_RelevanceFlowsToDetectors(t *testing.T) {
	engine := NewEngine(stubAnalyzer{BasicAnalysis{Summary: "s", TopicRelevance: 30, FocusFeedback: "f"}}, LocalTaskGenerator{})
	in := Input{
		Topic:          "Topic",
		Notes:          []string{"a note with enough words to avoid other rules entirely"},
		PlannedMinutes: 10,
		ActualMinutes:  10,
	}

	got := engine.Analyze(context.Background(), in, nil)

	if got.Drift.Severity != SeverityHigh {
		t.Errorf("relevance 30 from the analyzer should drive high drift, got %s", got.Drift.Severity)
	}
	if got.NextSessionPlan == "" || got.Summary != "s" {
		t.Errorf("analyzer output should flow through: %+v", got)
	}
}
